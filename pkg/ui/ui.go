// Package ui renders projclone output and drives interactive prompts.
// It supports terminal (rich), text (plain), JSON, YAML and markdown
// output, a progress bar for clone copies and confirmation prompts.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/projclone/pkg/errors"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a *Report or any other serializable value
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return newTerminalRenderer(output), nil
	case FormatText:
		return newTextRenderer(output), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	case FormatYAML:
		return newYAMLRenderer(output), nil
	case FormatMarkdown:
		return newMarkdownRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
