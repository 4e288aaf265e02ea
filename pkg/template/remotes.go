package template

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/registry"
)

// Remote turns a git remote URL into browsable project and commit URLs.
type Remote interface {
	ProjectURL() string
	CommitURL(commitHash string) string
}

// RemoteFactory builds a Remote for a raw remote URL.
type RemoteFactory func(remoteURL string) Remote

var remotes = registry.New[RemoteFactory]("git remote", registry.WithNamespace("scaraplate.gitremotes"))

func init() {
	registry.MustRegister(remotes, "GitLab", func(u string) Remote { return hostedRemote{url: u, commitPath: "commit"} })
	registry.MustRegister(remotes, "GitHub", func(u string) Remote { return hostedRemote{url: u, commitPath: "commit"} })
	registry.MustRegister(remotes, "BitBucket", func(u string) Remote { return hostedRemote{url: u, commitPath: "commits"} })
}

// RemoteKinds lists the known remote kinds.
func RemoteKinds() []string {
	return remotes.List()
}

// NewRemote returns the Remote of the given kind for remoteURL. With an
// empty kind the hosting service is guessed from the URL.
func NewRemote(remoteURL, kind string) (Remote, error) {
	if kind == "" {
		kind = detectRemoteKind(remoteURL)
		if kind == "" {
			return nil, errors.Newf(errors.ErrTemplateInvalid,
				"unable to determine the git remote type of %q; set git_remote_type in scaraplate.yaml", remoteURL).
				WithDetail("remote", remoteURL)
		}
	}

	factory, err := remotes.Get(kind)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "unknown git_remote_type %q", kind)
	}
	return factory(remoteURL), nil
}

func detectRemoteKind(remoteURL string) string {
	lower := strings.ToLower(remoteURL)
	switch {
	case strings.Contains(lower, "gitlab"):
		return "GitLab"
	case strings.Contains(lower, "github"):
		return "GitHub"
	case strings.Contains(lower, "bitbucket"):
		return "BitBucket"
	}
	return ""
}

type hostedRemote struct {
	url        string
	commitPath string
}

func (r hostedRemote) ProjectURL() string {
	return remoteToHTTPS(r.url)
}

func (r hostedRemote) CommitURL(commitHash string) string {
	return strings.TrimRight(r.ProjectURL(), "/") + "/" + r.commitPath + "/" + commitHash
}

var (
	scpLikeRemote = regexp.MustCompile(`^[^@]*@([^:]+):`)
	dotGitSuffix  = regexp.MustCompile(`\.git$`)
)

// remoteToHTTPS rewrites `git@host:group/project.git` into
// `https://host/group/project`.
func remoteToHTTPS(remoteURL string) string {
	u := scpLikeRemote.ReplaceAllString(remoteURL, "https://$1/")
	return dotGitSuffix.ReplaceAllString(u, "")
}
