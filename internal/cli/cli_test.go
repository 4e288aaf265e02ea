package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/strategies"
	"github.com/arthur-debert/scaraplate/pkg/testutil"
)

// isolate keeps commands away from the user's settings and log file.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("SCARAPLATE_LOG_FILE", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolate(t)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scaraplate version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestStrategiesCmd(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(strategies.Names(), "\n")+"\n", out)
	assert.Contains(t, out, "SetupcfgMerge\n")
}

func TestConfigCmd(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "jobs = 4")

	t.Setenv("SCARAPLATE_ROLLUP_JOBS", "6")
	out, err = execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "jobs = 6")
}

func TestBadSettingsFail(t *testing.T) {
	t.Setenv("SCARAPLATE_ROLLUP_JOBS", "0")
	_, err := execute(t, "strategies")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestApplyCmd(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "gitignore.template")
	target := filepath.Join(dir, "gitignore.target")
	testutil.WriteFile(t, tmpl, "*.pyc\n/dist/\n", 0o644)
	testutil.WriteFile(t, target, "/.venv/\n*.pyc\n", 0o644)

	t.Run("merges with target", func(t *testing.T) {
		out, err := execute(t, "apply", "SortedUniqueLines", "--template", tmpl, "--target", target)
		require.NoError(t, err)
		assert.Equal(t, "*.pyc\n/.venv/\n/dist/\n", out)
	})

	t.Run("missing target is absent", func(t *testing.T) {
		out, err := execute(t, "apply", "IfMissing", "--template", tmpl, "--target", filepath.Join(dir, "nope"))
		require.NoError(t, err)
		assert.Equal(t, "*.pyc\n/dist/\n", out)
	})

	t.Run("strategy config from flags", func(t *testing.T) {
		out, err := execute(t, "apply", "scaraplate.strategies.TemplateHash",
			"--template", tmpl,
			"--commit-url", "https://example.com/t/commit/1",
			"--dirty",
			"--set", "line_comment_start=//")
		require.NoError(t, err)
		assert.Equal(t, "*.pyc\n/dist/\n\n// "+strategies.GeneratedBy+"\n// From (dirty) https://example.com/t/commit/1\n", out)
	})

	t.Run("malformed set", func(t *testing.T) {
		_, err := execute(t, "apply", "TemplateHash", "--template", tmpl, "--set", "oops")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := execute(t, "apply", "Nope", "--template", tmpl)
		assert.True(t, errors.IsErrorCode(err, errors.ErrStrategyNotFound))
	})

	t.Run("missing template", func(t *testing.T) {
		_, err := execute(t, "apply", "Overwrite", "--template", filepath.Join(dir, "nope"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
	})

	t.Run("parse error", func(t *testing.T) {
		bad := filepath.Join(dir, "setup.cfg")
		testutil.WriteFile(t, bad, "no section\n", 0o644)
		_, err := execute(t, "apply", "SetupcfgMerge", "--template", bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	})
}

// newTemplateRepo creates a committed template with a GitHub origin.
func newTemplateRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	testutil.WriteFile(t, filepath.Join(dir, "scaraplate.yaml"), `
default_strategy: Overwrite
strategies_mapping:
  .gitignore: SortedUniqueLines
  "*.py": PythonTemplateHash
`, 0o644)
	testutil.WriteFile(t, filepath.Join(dir, "project", ".gitignore"), "*.pyc\n", 0o644)
	testutil.WriteFile(t, filepath.Join(dir, "project", "pkg", "__init__.py"), "", 0o644)
	testutil.WriteFile(t, filepath.Join(dir, "project", "run.sh"), "#!/bin/sh\n", 0o755)

	repo := testutil.InitRepo(t, dir, "git@github.com:acme/python-template.git")
	return dir, testutil.CommitAll(t, repo, "template")
}

func TestRollupCmd(t *testing.T) {
	tmplDir, hash := newTemplateRepo(t)
	target := t.TempDir()
	testutil.WriteFile(t, filepath.Join(target, ".gitignore"), "/.venv/\n", 0o644)

	out, err := execute(t, "rollup", tmplDir, target, "-j", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "pkg/__init__.py")
	assert.Contains(t, out, "2 created, 1 updated, 0 unchanged")

	assert.Equal(t, "*.pyc\n/.venv/\n", testutil.ReadFile(t, filepath.Join(target, ".gitignore")))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(target, "pkg", "__init__.py")), "# From https://github.com/acme/python-template/commit/"+hash+"  # noqa\n")

	info, err := os.Stat(filepath.Join(target, "run.sh"))
	require.NoError(t, err)
	assert.EqualValues(t, 0o755, info.Mode().Perm())

	out, err = execute(t, "rollup", tmplDir, target)
	require.NoError(t, err)
	assert.Contains(t, out, MsgNothingChanged)
}

func TestRollupCmdDryRun(t *testing.T) {
	tmplDir, _ := newTemplateRepo(t)
	target := t.TempDir()

	out, err := execute(t, "rollup", "--dry-run", tmplDir, target)
	require.NoError(t, err)
	assert.Contains(t, out, "+++ b/run.sh")
	assert.Contains(t, out, MsgDryRunNotice)

	_, err = os.Stat(filepath.Join(target, "run.sh"))
	assert.True(t, os.IsNotExist(err))
}

func TestRollupCmdErrors(t *testing.T) {
	t.Run("not a template", func(t *testing.T) {
		_, err := execute(t, "rollup", t.TempDir(), t.TempDir())
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	})

	t.Run("not a git repository", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, filepath.Join(dir, "scaraplate.yaml"), "default_strategy: Overwrite\nstrategies_mapping: {}\n", 0o644)
		_, err := execute(t, "rollup", dir, t.TempDir())
		assert.True(t, errors.IsErrorCode(err, errors.ErrGit))
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, err := execute(t, "rollup", t.TempDir())
		assert.Error(t, err)
	})
}

func TestPrintError(t *testing.T) {
	var out bytes.Buffer
	PrintError(&out, errors.New(errors.ErrGit, "boom"))
	assert.Equal(t, "Error: [GIT] boom\n", out.String())
}
