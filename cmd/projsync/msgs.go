package projsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Declarative, idempotent project configuration"
	MsgRunShort        = "Apply a task to a project"
	MsgListShort       = "List available tasks"
	MsgListLong        = "List shows the built-in tasks and any task defined in the project's .projsync/tasks directory."
	MsgConfigShort     = "Print the effective configuration for a task"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Generate man pages for every command into a directory."

	// Status messages
	MsgVersionFormat = "projsync version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Man pages written to %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgWarnNoManifest   = "No package.json found, using the working directory as project"
	MsgErrRunFailures   = "task %s finished with %d failure(s)"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProject     = "Project directory to configure"
	MsgFlagOpt         = "Set a task option (key=value, repeatable)"
	MsgFlagDryRun      = "Report what would change without writing or installing"
	MsgFlagSkipInstall = "Apply configuration changes but do not install packages"
	MsgFlagJSON        = "Print machine-readable JSON"
	MsgFlagManDir      = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
