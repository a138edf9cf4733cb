package cli

import (
	"io"
	"os"

	"github.com/arthur-debert/projclone/internal/version"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/platform"
	"github.com/arthur-debert/projclone/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Deps are the process boundaries the commands use. Zero fields get the
// real implementations.
type Deps struct {
	Platform platform.Platform
	Prompter ui.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
}

func (d *Deps) fill() {
	if d.Prompter == nil {
		d.Prompter = ui.InteractivePrompter{}
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
}

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	project   string
}

const usageTemplate = `{{boldUpper "Usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// NewRootCmd creates the root command with the real process boundaries
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(Deps{})
}

// NewRootCmdWith creates the root command using deps
func NewRootCmdWith(deps Deps) *cobra.Command {
	deps.fill()
	opts := &globalOptions{}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "projclone",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.project, "project", "C", "", MsgFlagProject)

	rootCmd.AddCommand(newStatusCmd(&deps, opts))
	rootCmd.AddCommand(newListCmd(&deps, opts))
	rootCmd.AddCommand(newCreateCmd(&deps, opts))
	rootCmd.AddCommand(newRegisterCmd(&deps, opts))
	rootCmd.AddCommand(newOpenCmd(&deps, opts))
	rootCmd.AddCommand(newRevealCmd(&deps, opts))
	rootCmd.AddCommand(newDeleteCmd(&deps, opts))
	rootCmd.AddCommand(newArgsCmd(&deps, opts))
	rootCmd.AddCommand(newWatchCmd(&deps, opts))
	rootCmd.AddCommand(newGenConfigCmd(&deps))
	rootCmd.AddCommand(newVersionCmd(&deps))

	return rootCmd
}
