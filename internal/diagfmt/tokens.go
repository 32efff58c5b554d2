package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"kiln/internal/source"
	"kiln/internal/token"
)

type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.Newline {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at %d:%d\n", tok.Pos.Line, tok.Pos.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, tokenOutput(tok))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func tokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{Kind: tok.Kind.String(), Line: tok.Pos.Line, Col: tok.Pos.Col}
	if tok.Kind != token.Newline {
		out.Text = tok.Text
	}
	return out
}

func formatPos(pos source.Pos) string {
	if !pos.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
}
