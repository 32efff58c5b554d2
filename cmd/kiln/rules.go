package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"kiln/internal/fold"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags]",
	Short: "List the operator type rules used for folding",
	Long: `Rules prints every declared operator/operand-type combination and its
result type. Combinations that are not listed are unavailable`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().Bool("legacy-bool-default", false, "list rules under the legacy bool fallback policy")
	rulesCmd.Flags().String("format", "table", "output format (table|json)")
}

type ruleRow struct {
	Kind   string `json:"kind"`
	Op     string `json:"op"`
	Left   string `json:"left,omitempty"`
	Right  string `json:"right"`
	Result string `json:"result"`
}

type rulesPayload struct {
	Policy string    `json:"policy"`
	Rules  []ruleRow `json:"rules"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	legacy, err := cmd.Flags().GetBool("legacy-bool-default")
	if err != nil {
		return fmt.Errorf("failed to get legacy-bool-default flag: %w", err)
	}
	policy := fold.PolicyUnsupported
	if legacy || (!cmd.Flags().Changed("legacy-bool-default") && settings.Fold.LegacyBoolDefault) {
		policy = fold.PolicyLegacyBool
	}

	payload := collectRules(fold.NewRules(policy))
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "table":
		return renderRulesTable(cmd.OutOrStdout(), payload, useColor(os.Stdout))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func collectRules(rules *fold.Rules) rulesPayload {
	out := rulesPayload{Policy: rules.Policy().String()}
	for _, r := range rules.PreUnaryRules() {
		out.Rules = append(out.Rules, ruleRow{
			Kind:   "prefix",
			Op:     r.Key.Op.String(),
			Right:  r.Key.Operand.String(),
			Result: r.Result.String(),
		})
	}
	for _, r := range rules.BinaryRules() {
		out.Rules = append(out.Rules, ruleRow{
			Kind:   "binary",
			Op:     r.Key.Op.String(),
			Left:   r.Key.Left.String(),
			Right:  r.Key.Right.String(),
			Result: r.Result.String(),
		})
	}
	return out
}

// renderRulesTable prints one aligned row per rule. Widths are measured with
// runewidth so the arrow column stays aligned whatever the terminal font.
func renderRulesTable(w io.Writer, payload rulesPayload, colored bool) error {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	style := func(s lipgloss.Style, text string) string {
		if !colored {
			return text
		}
		return s.Render(text)
	}

	cols := [4][]string{{"left"}, {"op"}, {"right"}, {"result"}}
	for _, r := range payload.Rules {
		cols[0] = append(cols[0], r.Left)
		cols[1] = append(cols[1], r.Op)
		cols[2] = append(cols[2], r.Right)
		cols[3] = append(cols[3], r.Result)
	}
	var widths [4]int
	for i, col := range cols {
		for _, cell := range col {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	sb.WriteString(style(header, "policy: "+payload.Policy) + "\n")
	for row := range cols[0] {
		line := fmt.Sprintf("%s  %s  %s  %s  %s",
			runewidth.FillRight(cols[0][row], widths[0]),
			runewidth.FillRight(cols[1][row], widths[1]),
			runewidth.FillRight(cols[2][row], widths[2]),
			"->",
			cols[3][row],
		)
		if row == 0 {
			line = style(header, line)
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	sb.WriteString(style(dim, fmt.Sprintf("%d rules; unlisted combinations are unavailable", len(payload.Rules))) + "\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
