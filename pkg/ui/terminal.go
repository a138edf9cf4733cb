package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/projclone/pkg/clones"
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// terminalRenderer provides rich terminal output with lipgloss styles
type terminalRenderer struct {
	output io.Writer
}

func newTerminalRenderer(output io.Writer) *terminalRenderer {
	return &terminalRenderer{output: output}
}

func (r *terminalRenderer) RenderResult(result interface{}) error {
	report, ok := result.(*Report)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	_, err := fmt.Fprintln(r.output, RenderReport(report))
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	msg := GetStyle("Error").Render(err.Error())
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s %s", pterm.Error.MessageStyle.Sprint(string(code)), msg)
	}
	_, werr := fmt.Fprintf(r.output, "%s %s\n", pterm.Error.Prefix.Text, msg)
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// RenderReport lays out a report with lipgloss
func RenderReport(report *Report) string {
	var lines []string
	lines = append(lines, GetStyle("Header").Render(report.Project.Name+" "+badge(report.Project)+" "+openState(report.Project)))
	lines = append(lines, projectLine(report.Project))
	if report.Project.Source != "" {
		lines = append(lines, GetStyle("Muted").Render("cloned from ")+GetStyle("Path").Render(report.Project.Source))
	}

	if len(report.Clones) == 0 {
		lines = append(lines, "", GetStyle("Muted").Render("No clones yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, "")
	for i, c := range report.Clones {
		entry := fmt.Sprintf("%d. %s %s", i+1, GetStyle("Name").Render(c.Name), openState(c))
		lines = append(lines, GetStyle("Item").Render(entry))
		lines = append(lines, GetStyle("Item").Render("   "+projectLine(c)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func badge(s clones.Status) string {
	if s.IsClone {
		return GetStyle("Clone").Render("clone")
	}
	return GetStyle("Original").Render("original")
}

func openState(s clones.Status) string {
	if s.Open {
		return GetStyle("Open").Render("● open")
	}
	return GetStyle("Closed").Render("○ closed")
}

func projectLine(s clones.Status) string {
	parts := []string{GetStyle("Path").Render(s.Path)}
	if s.Arguments != "" {
		parts = append(parts, GetStyle("Arguments").Render("args: "+s.Arguments))
	}
	return strings.Join(parts, "  ")
}
