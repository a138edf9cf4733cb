package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/arthur-debert/projclone/internal/version"
	"github.com/arthur-debert/projclone/pkg/clones"
	"github.com/arthur-debert/projclone/pkg/config"
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/arthur-debert/projclone/pkg/materializer"
	"github.com/arthur-debert/projclone/pkg/paths"
	"github.com/arthur-debert/projclone/pkg/ui"
	"github.com/arthur-debert/projclone/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// watchDebounce is how long lock directory activity settles before the
// open state is re-checked
const watchDebounce = 250 * time.Millisecond

// interruptible returns a context cancelled on Ctrl+C
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func newStatusCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	var format string
	var markdown bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			if markdown {
				f = ui.FormatMarkdown
			}

			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}

			renderer, err := ui.NewRenderer(f, deps.Stdout)
			if err != nil {
				return err
			}
			return renderer.RenderResult(a.report())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	cmd.Flags().BoolVar(&markdown, "markdown", false, MsgFlagMarkdown)
	return cmd
}

func newListCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			statuses := a.mgr.Statuses(a.current)

			if f == ui.FormatJSON || f == ui.FormatYAML {
				renderer, err := ui.NewRenderer(f, deps.Stdout)
				if err != nil {
					return err
				}
				return renderer.RenderResult(statuses)
			}

			if len(statuses) == 0 {
				fmt.Fprintln(deps.Stdout, MsgNoClones)
				return nil
			}
			for _, s := range statuses {
				fmt.Fprintln(deps.Stdout, s.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagFormat)
	return cmd
}

func newCreateCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "create [DEST]",
		Short: MsgCreateShort,
		Long:  MsgCreateLong,
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Create a clone next to the project, asking for its name
  projclone create

  # Create a clone at an explicit location
  projclone create ../Game_Clone2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, func(cfg *config.Config) materializer.Reporter {
				return progressReporter(deps, cfg)
			})
			if err != nil {
				return err
			}

			dest := a.mgr.SuggestClonePath(a.current)
			switch {
			case len(args) > 0:
				dest = args[0]
			case !yes:
				dest, err = deps.Prompter.AskPath(MsgAskDestination, dest)
				if err != nil {
					return err
				}
			}

			ctx, stop := interruptible(cmd)
			defer stop()

			log.Info().Str("source", a.current.Path).Str("destination", dest).Msg("Creating clone")
			result, err := a.mgr.CreateClone(ctx, a.current, dest)
			if err != nil {
				return err
			}
			if result == nil {
				fmt.Fprintln(deps.Stdout, MsgCloneAborted)
				return nil
			}

			printCloneResult(deps, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

// progressReporter shows a progress bar only when stderr is a terminal
func progressReporter(deps *Deps, cfg *config.Config) materializer.Reporter {
	if !cfg.UI.Progress {
		return nil
	}
	f, ok := deps.Stderr.(*os.File)
	if !ok || !ui.IsTerminal(f) {
		return nil
	}
	return ui.NewProgressReporter(deps.Stderr)
}

func printCloneResult(deps *Deps, result *clones.CloneResult) {
	fmt.Fprintf(deps.Stdout, MsgCloneCreated+"\n", result.Project.Path)
	for _, name := range result.Linked {
		fmt.Fprintf(deps.Stdout, MsgLinked+"\n", name)
	}
	failedFiles := 0
	for _, c := range result.Copied {
		fmt.Fprintf(deps.Stdout, MsgCopied+"\n", c.Label, ui.FormatBytes(c.CopiedBytes))
		failedFiles += len(c.Failed)
	}
	if !result.Complete() {
		fmt.Fprintf(deps.Stderr, MsgCloneIncomplete+"\n", len(result.LinkFailed), failedFiles)
	}
}

func newRegisterCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register MARKER",
		Short: MsgRegisterShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			record, err := a.mgr.RegisterExisting(cmd.Context(), a.current, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, MsgRegistered+"\n", record.Path)
			return nil
		},
	}
}

func newOpenCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open [PATH]",
		Short: MsgOpenShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			target, err := a.target(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, MsgOpening+"\n", target)
			return a.mgr.OpenProject(target)
		},
	}
}

func newRevealCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal [PATH]",
		Short: MsgRevealShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			target, err := a.target(args)
			if err != nil {
				return err
			}
			return a.mgr.Reveal(target)
		},
	}
}

func newDeleteCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PATH",
		Short: MsgDeleteShort,
		Long:  MsgDeleteLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			target, err := paths.ProjectRoot(args[0])
			if err != nil {
				return err
			}
			if a.mgr.DetectOpen(target) {
				return errors.Newf(errors.ErrProjectOpen, "%s is open in the host application", target).
					WithDetail("path", target)
			}

			if !yes {
				ok, err := deps.Prompter.Confirm(fmt.Sprintf(MsgConfirmDelete, target), false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(deps.Stdout, MsgDeleteCancelled)
					return nil
				}
			}

			ctx, stop := interruptible(cmd)
			defer stop()

			if err := a.mgr.DeleteClone(ctx, target); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, MsgDeleted+"\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newArgsCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "args [PATH]",
		Short: MsgArgsShort,
		Long:  MsgArgsLong,
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Show the arguments of the current project
  projclone args

  # Launch a clone as a server
  projclone args ../Game_Clone1 --set "server --port 7777"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}
			target, err := a.target(args)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("set") {
				if _, err := a.mgr.SetArguments(cmd.Context(), target, value); err != nil {
					return err
				}
				fmt.Fprintf(deps.Stdout, MsgArgumentsSet+"\n", target, value)
				return nil
			}

			record, err := a.mgr.Store().Load(target)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, MsgArguments+"\n", record.Path, record.Arguments)
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "set", "", MsgFlagSet)
	return cmd
}

func newWatchCmd(deps *Deps, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: MsgWatchShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(deps, opts, nil)
			if err != nil {
				return err
			}

			w, err := watch.New(watchDebounce, a.mgr, func(ev watch.Event) {
				msg := MsgWatchEventClosed
				if ev.Open {
					msg = MsgWatchEventOpen
				}
				fmt.Fprintf(deps.Stdout, msg+"\n", ev.Project)
			})
			if err != nil {
				return err
			}

			projects := []string{a.current.Path}
			for _, c := range a.current.Clones {
				projects = append(projects, c.Path)
			}
			for _, p := range projects {
				if err := w.Add(p); err != nil {
					log.Warn().Err(err).Str("project", p).Msg("Cannot watch project")
				}
			}

			ctx, stop := interruptible(cmd)
			defer stop()

			w.Start()
			defer w.Stop()
			fmt.Fprintf(deps.Stdout, MsgWatching+"\n", len(w.Projects()))

			<-ctx.Done()
			return nil
		},
	}
}

func newGenConfigCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(deps.Stdout, config.DefaultContent())
		},
	}
}

func newVersionCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(deps.Stdout, "projclone version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(deps.Stdout, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(deps.Stdout, "Built:  %s\n", version.Date)
			}
			fmt.Fprintf(deps.Stdout, "Log:    %s\n", logging.LogFilePath())
		},
	}
}
