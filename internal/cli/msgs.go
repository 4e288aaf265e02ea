package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep projects in sync with the template they were generated from"
	MsgVersionShort    = "Print version information"
	MsgRollupShort     = "Apply a rendered template to a project"
	MsgApplyShort      = "Merge one file with a strategy and print the result"
	MsgStrategiesShort = "List the available merge strategies"
	MsgConfigShort     = "Print the effective settings"

	// Summary
	MsgDryRunNotice   = "DRY RUN - no files were written"
	MsgSummaryFormat  = "%d created, %d updated, %d unchanged"
	MsgNothingChanged = "Project is up to date."

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Show a diff of what would change without writing"
	MsgFlagJobs      = "Number of files processed concurrently (default from settings)"
	MsgFlagTemplate  = "Template version of the file"
	MsgFlagTarget    = "Current version of the file in the project; omit when it does not exist"
	MsgFlagCommitURL = "Template commit URL written into provenance comments"
	MsgFlagDirty     = "Treat the template working tree as having uncommitted changes"
	MsgFlagSet       = "Strategy config as key=value, repeatable"
)

const MsgRootLong = `scaraplate rolls a cookiecutter-style template out to projects that were
generated from it. Each file of the rendered template is merged into the
project by the strategy that scaraplate.yaml assigns to it, so project
specific changes survive template updates.`

const MsgRollupLong = `Rollup reads TEMPLATE_DIR/scaraplate.yaml and the rendered project tree
next to it, merges every file into TARGET_DIR with its strategy and
prints a summary. Template metadata (commit URL and dirty state) is read
from the git repository holding TEMPLATE_DIR.`

const MsgApplyLong = `Apply runs a single strategy on one template file and, optionally, the
current project file, writing the merged content to stdout.`
