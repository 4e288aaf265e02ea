package rollup

import "github.com/samber/lo"

// Action is what a rollup did to one target file.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// Result describes one processed file.
type Result struct {
	// Path is slash-separated and relative to the project root.
	Path     string
	Strategy string
	Action   Action
}

// Report collects the results of a rollup, sorted by path.
type Report struct {
	Results []Result
	DryRun  bool
}

// Count returns how many files ended with action a.
func (r *Report) Count(a Action) int {
	return lo.CountBy(r.Results, func(res Result) bool { return res.Action == a })
}

// Changed lists the results that created or updated a file.
func (r *Report) Changed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Action != ActionUnchanged })
}
