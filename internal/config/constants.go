package config

const (
	// DefaultReportDir is the directory report files are written to,
	// relative to the working directory.
	DefaultReportDir = "reports"

	// ContentReportFile is the report filename for the content read comparison.
	ContentReportFile = "content_comparison.json"
	// CommitsReportFile is the report filename for commit creation and polling.
	CommitsReportFile = "commit_consistency.json"
	// BranchesReportFile is the report filename for branch creation and polling.
	BranchesReportFile = "branch_consistency.json"
	// SwitchoverReportFile is the report filename for the branch-switch workaround.
	SwitchoverReportFile = "branch_switchover.json"
	// WorkflowReportFile is the report filename for the end-to-end workflow.
	WorkflowReportFile = "workflow.json"

	// BranchPrefix is the name prefix for transient branches. Names are
	// suffixed with a nanosecond timestamp so concurrent runs cannot collide.
	BranchPrefix = "propbench"

	// FileDir is the repository directory transient files are committed under.
	FileDir = "propbench"
)
