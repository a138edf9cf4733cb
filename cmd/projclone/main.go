package main

import (
	"os"

	"github.com/arthur-debert/projclone/internal/cli"
	"github.com/arthur-debert/projclone/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if renderer, rerr := ui.NewRenderer(ui.FormatAuto, os.Stderr); rerr == nil {
			_ = renderer.RenderError(err)
		}
		os.Exit(1)
	}
}
