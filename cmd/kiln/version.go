package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kiln/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show kiln build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return fmt.Errorf("failed to get full flag: %w", err)
		}

		info := collectVersionInfo()
		switch strings.ToLower(format) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), info, full)
		case "pretty":
			color.NoColor = !useColor(os.Stdout)
			return renderVersionPretty(cmd.OutOrStdout(), info, full)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("full", false, "include commit hash and build date")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, full bool) error {
	if _, err := fmt.Fprintf(out, "kiln %s\n", version.Colored()); err != nil {
		return err
	}
	if !full {
		return nil
	}
	_, err := fmt.Fprintf(out, "commit: %s\nbuilt:  %s\n", valueOrUnknown(info.GitCommit), valueOrUnknown(info.BuildDate))
	return err
}

func renderVersionJSON(out io.Writer, info versionInfo, full bool) error {
	payload := versionPayload{Tool: "kiln", Version: info.Version}
	if full {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
