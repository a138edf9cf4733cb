package ui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/projclone/pkg/clones"
)

// Report is the status of a project and its clones
type Report struct {
	Project clones.Status   `json:"project" yaml:"project"`
	Clones  []clones.Status `json:"clones" yaml:"clones"`
}

// kind labels a status for display
func kind(s clones.Status) string {
	if s.IsClone {
		return "clone"
	}
	return "original"
}

// state labels the open flag for display
func state(s clones.Status) string {
	if s.Open {
		return "open"
	}
	return "closed"
}

// Markdown renders the report as a markdown document
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Project.Name)
	fmt.Fprintf(&b, "- **Path:** `%s`\n", r.Project.Path)
	fmt.Fprintf(&b, "- **Kind:** %s\n", kind(r.Project))
	if r.Project.Source != "" {
		fmt.Fprintf(&b, "- **Source:** `%s`\n", r.Project.Source)
	}
	fmt.Fprintf(&b, "- **Arguments:** `%s`\n", r.Project.Arguments)
	fmt.Fprintf(&b, "- **State:** %s\n\n", state(r.Project))

	b.WriteString("## Clones\n\n")
	if len(r.Clones) == 0 {
		b.WriteString("_No clones._\n")
		return b.String()
	}
	b.WriteString("| # | Name | State | Arguments | Path |\n")
	b.WriteString("|---|------|-------|-----------|------|\n")
	for i, c := range r.Clones {
		fmt.Fprintf(&b, "| %d | %s | %s | `%s` | `%s` |\n", i+1, c.Name, state(c), c.Arguments, c.Path)
	}
	return b.String()
}
