package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders reports as markdown through glamour
type markdownRenderer struct {
	output io.Writer
	// Style is a glamour style name or path; "auto" detects the terminal
	Style string
	// Width wraps output; 0 keeps glamour's default
	Width int
}

func newMarkdownRenderer(output io.Writer) *markdownRenderer {
	return &markdownRenderer{output: output, Style: "auto"}
}

// render converts markdown to terminal output, falling back to the raw
// markdown when glamour cannot render it
func (r *markdownRenderer) render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *markdownRenderer) RenderResult(result interface{}) error {
	content := fmt.Sprintf("```\n%+v\n```\n", result)
	if report, ok := result.(*Report); ok {
		content = report.Markdown()
	}
	_, err := io.WriteString(r.output, r.render(content))
	return err
}

func (r *markdownRenderer) RenderError(err error) error {
	_, werr := io.WriteString(r.output, r.render(fmt.Sprintf("> **Error:** %v\n", err)))
	return werr
}

func (r *markdownRenderer) RenderMessage(msg string) error {
	_, err := io.WriteString(r.output, r.render(msg+"\n"))
	return err
}
