package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/scaraplate/pkg/rollup"
)

var palette = map[string]lipgloss.AdaptiveColor{
	"success": {Light: "#2E7D32", Dark: "#81C784"},
	"warning": {Light: "#E65100", Dark: "#FFB74D"},
	"muted":   {Light: "#757575", Dark: "#9E9E9E"},
	"error":   {Light: "#C62828", Dark: "#E57373"},
}

// styles are bound to one output so colour is only used when that output
// is a terminal.
type styles struct {
	action map[rollup.Action]lipgloss.Style
	muted  lipgloss.Style
	notice lipgloss.Style
	bold   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Width(10)
	return styles{
		action: map[rollup.Action]lipgloss.Style{
			rollup.ActionCreated:   label.Foreground(palette["success"]).Bold(true),
			rollup.ActionUpdated:   label.Foreground(palette["warning"]).Bold(true),
			rollup.ActionUnchanged: label.Foreground(palette["muted"]),
		},
		muted:  r.NewStyle().Foreground(palette["muted"]),
		notice: r.NewStyle().Foreground(palette["warning"]).Italic(true),
		bold:   r.NewStyle().Bold(true),
		err:    r.NewStyle().Foreground(palette["error"]).Bold(true),
	}
}

// printReport writes the per-file lines for changed files followed by
// the totals.
func printReport(w io.Writer, report *rollup.Report) {
	st := newStyles(w)

	changed := report.Changed()
	for _, res := range changed {
		fmt.Fprintf(w, "  %s%s  %s\n",
			st.action[res.Action].Render(string(res.Action)),
			res.Path,
			st.muted.Render(res.Strategy))
	}
	if len(changed) > 0 {
		fmt.Fprintln(w)
	}

	if len(changed) == 0 {
		fmt.Fprintln(w, st.bold.Render(MsgNothingChanged))
	} else {
		fmt.Fprintln(w, st.bold.Render(fmt.Sprintf(MsgSummaryFormat,
			report.Count(rollup.ActionCreated),
			report.Count(rollup.ActionUpdated),
			report.Count(rollup.ActionUnchanged))))
	}
	if report.DryRun {
		fmt.Fprintln(w, st.notice.Render(MsgDryRunNotice))
	}
}

// PrintError renders err for the terminal.
func PrintError(w io.Writer, err error) {
	st := newStyles(w)
	fmt.Fprintln(w, st.err.Render(fmt.Sprintf("Error: %v", err)))
}
