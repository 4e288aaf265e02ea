package template

// Meta identifies the template revision a rollup is produced from. It is
// built once per run and is read-only to strategies.
type Meta struct {
	// ProjectURL is the browsable URL of the template repository.
	ProjectURL string
	CommitHash string
	// CommitURL points at CommitHash in the repository web UI. It is what
	// gets written into provenance comments.
	CommitURL string
	// IsDirty is set when the template working tree has uncommitted
	// changes, untracked files included.
	IsDirty bool
}
