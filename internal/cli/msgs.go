package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Manage linked clones of a project directory"
	MsgStatusShort    = "Show the project and its clones"
	MsgListShort      = "List the clones of the project"
	MsgCreateShort    = "Create a new clone of the project"
	MsgRegisterShort  = "Register an existing clone by its marker file"
	MsgOpenShort      = "Open a project in the host application"
	MsgRevealShort    = "Show a project in the file manager"
	MsgDeleteShort    = "Delete a clone"
	MsgArgsShort      = "Show or set a project's launch arguments"
	MsgWatchShort     = "Report projects being opened and closed"
	MsgGenConfigShort = "Print the default configuration"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgCloneAborted     = "No destination chosen, nothing was created."
	MsgCloneCreated     = "Created clone %s"
	MsgCloneIncomplete  = "The clone is incomplete: %d link(s) failed, %d file(s) not copied"
	MsgLinked           = "  linked  %s"
	MsgCopied           = "  copied  %s (%s)"
	MsgRegistered       = "Registered %s"
	MsgOpening          = "Opening %s"
	MsgDeleted          = "Deleted %s"
	MsgDeleteCancelled  = "Nothing was deleted."
	MsgArguments        = "%s: %s"
	MsgArgumentsSet     = "Arguments of %s set to %q"
	MsgNoClones         = "No clones."
	MsgWatching         = "Watching %d project(s), press Ctrl+C to stop"
	MsgWatchEventOpen   = "%s opened"
	MsgWatchEventClosed = "%s closed"

	// Prompts
	MsgAskDestination = "Clone destination"
	MsgConfirmDelete  = "Delete %s and everything in it? Linked source folders are kept."

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProject  = "Project directory (defaults to the working directory)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml, markdown"
	MsgFlagMarkdown = "Render the status as a markdown report"
	MsgFlagYes      = "Do not prompt; accept defaults"
	MsgFlagSet      = "Replace the launch arguments with this value"
)

// Long descriptions
const (
	MsgRootLong = `projclone creates sibling copies ("clones") of a large project so several
instances of it can be open at the same time. Cache-like top-level folders
are copied into each clone; everything else is linked back to the source, so
clones are fast to create and cheap on disk.

Each project root carries a small marker file recording its clones.`

	MsgCreateLong = `Create a clone of the project next to it (or at DEST).

Top-level folders listed in clone.copy_dirs are copied with a progress bar;
every other top-level folder is linked. The new clone is registered in the
project's marker file.`

	MsgDeleteLong = `Delete a clone directory.

Links inside the clone are removed first so the shared folders of the source
project are never touched. Originals are refused, as are projects that are
currently open.`

	MsgArgsLong = `Show the launch arguments of a project, or set them when a value is given.
The arguments are passed to the host application after -projectPath.`
)
