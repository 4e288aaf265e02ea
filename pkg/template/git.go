package template

import (
	"github.com/go-git/go-git/v5"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/logging"
)

// MetaFromGit reads template metadata from the git repository containing
// path: the HEAD commit, the `origin` remote and the worktree status.
// remoteKind selects the hosting service; empty means auto-detect.
func MetaFromGit(path, remoteKind string) (Meta, error) {
	logger := logging.GetLogger("template")

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Meta{}, gitError(err, path, "open repository")
	}

	head, err := repo.Head()
	if err != nil {
		return Meta{}, gitError(err, path, "resolve HEAD")
	}
	commitHash := head.Hash().String()

	origin, err := repo.Remote("origin")
	if err != nil {
		return Meta{}, gitError(err, path, "read remote origin")
	}
	urls := origin.Config().URLs
	if len(urls) == 0 {
		return Meta{}, errors.Newf(errors.ErrGit, "remote origin of template %q has no URL", path).
			WithDetail("path", path)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return Meta{}, gitError(err, path, "open worktree")
	}
	status, err := worktree.Status()
	if err != nil {
		return Meta{}, gitError(err, path, "read worktree status")
	}

	remote, err := NewRemote(urls[0], remoteKind)
	if err != nil {
		return Meta{}, err
	}

	meta := Meta{
		ProjectURL: remote.ProjectURL(),
		CommitHash: commitHash,
		CommitURL:  remote.CommitURL(commitHash),
		IsDirty:    !status.IsClean(),
	}

	logger.Debug().
		Str("path", path).
		Str("commit", meta.CommitHash).
		Str("url", meta.CommitURL).
		Bool("dirty", meta.IsDirty).
		Msg("read template metadata")

	return meta, nil
}

func gitError(err error, path, step string) error {
	return errors.Wrapf(err, errors.ErrGit,
		"%s failed in the template %q; ensure that it is a valid git repo", step, path).
		WithDetail("path", path)
}
