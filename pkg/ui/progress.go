package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/pterm/pterm"
)

// progressSteps is the resolution of the progress bar
const progressSteps = 1000

// ProgressReporter shows a spinner while a copy is sized and a progress
// bar while it runs. It implements materializer.Reporter.
type ProgressReporter struct {
	out     io.Writer
	spinner *pterm.SpinnerPrinter
	bar     *pterm.ProgressbarPrinter
	shown   int
}

// NewProgressReporter draws on out, usually stderr
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{out: out}
}

func (r *ProgressReporter) Scanning(label, path string) {
	spinner, err := pterm.DefaultSpinner.WithWriter(r.out).Start(fmt.Sprintf("Sizing %s...", label))
	if err == nil {
		r.spinner = spinner
	}
}

func (r *ProgressReporter) Start(label string, totalBytes int64) {
	if r.spinner != nil {
		r.spinner.Success(fmt.Sprintf("%s: %s to copy", label, FormatBytes(totalBytes)))
		r.spinner = nil
	}
	bar, err := pterm.DefaultProgressbar.
		WithTotal(progressSteps).
		WithTitle("Copying " + label).
		WithWriter(r.out).
		Start()
	if err != nil {
		return
	}
	r.bar = bar
	r.shown = 0
}

func (r *ProgressReporter) Progress(p materializer.Progress) {
	if r.bar == nil {
		return
	}
	target := int(p.Fraction() * progressSteps)
	if target > r.shown {
		r.bar.Add(target - r.shown)
		r.shown = target
	}
}

func (r *ProgressReporter) Finish(result *materializer.CopyResult) {
	if r.spinner != nil {
		_ = r.spinner.Stop()
		r.spinner = nil
	}
	if r.bar != nil {
		_, _ = r.bar.Stop()
		r.bar = nil
	}
	switch {
	case result.Cancelled:
		pterm.Warning.WithWriter(r.out).Printfln("%s: copy cancelled after %s", result.Label, FormatBytes(result.CopiedBytes))
	case len(result.Failed) > 0:
		pterm.Warning.WithWriter(r.out).Printfln("%s: %d file(s) could not be copied", result.Label, len(result.Failed))
	}
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
