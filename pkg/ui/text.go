package ui

import (
	"fmt"
	"io"
)

// textRenderer provides plain text output without colors or styling
type textRenderer struct {
	output io.Writer
}

func newTextRenderer(output io.Writer) *textRenderer {
	return &textRenderer{output: output}
}

func (r *textRenderer) RenderResult(result interface{}) error {
	report, ok := result.(*Report)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	p := report.Project
	if _, err := fmt.Fprintf(r.output, "%s (%s, %s)\n  path: %s\n  arguments: %s\n", p.Name, kind(p), state(p), p.Path, p.Arguments); err != nil {
		return err
	}
	if p.Source != "" {
		if _, err := fmt.Fprintf(r.output, "  source: %s\n", p.Source); err != nil {
			return err
		}
	}
	if len(report.Clones) == 0 {
		_, err := fmt.Fprintln(r.output, "no clones")
		return err
	}
	for i, c := range report.Clones {
		if _, err := fmt.Fprintf(r.output, "%d. %s [%s] %s (arguments: %s)\n", i+1, c.Name, state(c), c.Path, c.Arguments); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
