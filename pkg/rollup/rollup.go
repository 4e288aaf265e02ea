package rollup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/scaraplate/pkg/config"
	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/filesystem"
	"github.com/arthur-debert/scaraplate/pkg/logging"
	"github.com/arthur-debert/scaraplate/pkg/strategies"
	"github.com/arthur-debert/scaraplate/pkg/template"
)

// Options tune a Rollup.
type Options struct {
	// Jobs bounds the number of files processed at once. Values below 1
	// mean one.
	Jobs int
	// DryRun computes results without touching the target.
	DryRun bool
	// DiffOut receives a unified diff of every changed file during a dry
	// run. It may be nil.
	DiffOut io.Writer
}

// Rollup applies rendered templates to target projects on a filesystem.
type Rollup struct {
	fs   afero.Fs
	opts Options
}

func New(fs afero.Fs, opts Options) *Rollup {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Rollup{fs: fs, opts: opts}
}

// Run applies the template rendered under templateDir to targetDir.
// templateDir holds scaraplate.yaml and the rendered project directory.
// The returned report lists every file that was processed, even when
// Run also returns an error for the files that failed.
func (r *Rollup) Run(ctx context.Context, templateDir, targetDir string, meta template.Meta) (*Report, error) {
	logger := logging.GetLogger("rollup")
	done := logging.LogOperationStart(logger, "rollup")
	defer done()

	cfg, err := config.LoadTemplate(r.fs, templateDir)
	if err != nil {
		return nil, err
	}

	projectDir := filepath.Join(templateDir, cfg.ProjectDir)
	if info, err := r.fs.Stat(projectDir); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrTemplateInvalid, "rendered project directory %s not found", projectDir).
			WithDetail("path", projectDir)
	}

	dirs, files, err := filesystem.Tree(r.fs, projectDir)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("template", templateDir).
		Str("target", targetDir).
		Int("files", len(files)).
		Bool("dry_run", r.opts.DryRun).
		Msg("applying template")

	if !r.opts.DryRun {
		if err := filesystem.MkdirAll(r.fs, targetDir); err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			if err := filesystem.MkdirAll(r.fs, filepath.Join(targetDir, filepath.FromSlash(dir))); err != nil {
				return nil, err
			}
		}
	}

	var (
		mu      sync.Mutex
		results []fileResult
		merr    *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.applyFile(cfg, projectDir, targetDir, rel, meta)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error().Err(err).Str("path", rel).Msg("file failed")
				merr = multierror.Append(merr, err)
				return nil
			}
			results = append(results, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "rollup interrupted")
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	report := &Report{DryRun: r.opts.DryRun}
	for _, res := range results {
		report.Results = append(report.Results, res.Result)
		if r.opts.DiffOut != nil && res.diff != "" {
			if _, err := io.WriteString(r.opts.DiffOut, res.diff); err != nil {
				return report, errors.Wrap(err, errors.ErrFileWrite, "cannot write diff")
			}
		}
	}

	logger.Info().
		Int("created", report.Count(ActionCreated)).
		Int("updated", report.Count(ActionUpdated)).
		Int("unchanged", report.Count(ActionUnchanged)).
		Msg("rollup finished")

	if merr != nil {
		sort.SliceStable(merr.Errors, func(i, j int) bool { return failedPath(merr.Errors[i]) < failedPath(merr.Errors[j]) })
		// The first failure in path order decides the code.
		code := errors.GetErrorCode(merr.Errors[0])
		return report, errors.Wrapf(merr, code, "%d file(s) failed", len(merr.Errors)).
			WithDetail("failed", len(merr.Errors))
	}
	return report, nil
}

// failedPath is the project path an applyFile error was reported for.
func failedPath(err error) string {
	if path, ok := errors.GetErrorDetails(err)["path"].(string); ok {
		return path
	}
	return err.Error()
}

type fileResult struct {
	Result
	diff string
}

func (r *Rollup) applyFile(cfg *config.Template, projectDir, targetDir, rel string, meta template.Meta) (fileResult, error) {
	templatePath := filepath.Join(projectDir, filepath.FromSlash(rel))
	targetPath := filepath.Join(targetDir, filepath.FromSlash(rel))
	binding := cfg.StrategyFor(rel)
	logger := logging.ForFile(logging.GetLogger("rollup"), rel, binding.Name)

	fail := func(err error, fallback errors.ErrorCode, step string) (fileResult, error) {
		return fileResult{}, errors.Annotatef(err, fallback, "%s: %s", rel, step).
			WithDetail("path", rel).
			WithDetail("strategy", binding.Name)
	}

	info, err := r.fs.Stat(templatePath)
	if err != nil {
		return fail(err, errors.ErrFileRead, "cannot stat template file")
	}
	templateData, _, err := filesystem.ReadIfExists(r.fs, templatePath)
	if err != nil {
		return fail(err, errors.ErrFileRead, "cannot read template file")
	}
	targetData, exists, err := filesystem.ReadIfExists(r.fs, targetPath)
	if err != nil {
		return fail(err, errors.ErrFileRead, "cannot read target file")
	}

	in := strategies.Input{
		Template: bytes.NewReader(templateData),
		Meta:     meta,
	}
	if exists {
		in.Target = bytes.NewReader(targetData)
	}
	out, err := binding.Strategy.Apply(in)
	if err != nil {
		return fail(err, errors.ErrInternal, "strategy "+binding.Name+" failed")
	}
	outData, err := io.ReadAll(out)
	if err != nil {
		return fail(err, errors.ErrFileRead, "cannot read output of strategy "+binding.Name)
	}

	res := fileResult{Result: Result{Path: rel, Strategy: binding.Name, Action: ActionUpdated}}
	switch {
	case !exists:
		res.Action = ActionCreated
	case bytes.Equal(outData, targetData):
		res.Action = ActionUnchanged
	}
	logger.Debug().Str("action", string(res.Action)).Msg("file processed")

	if r.opts.DryRun {
		if res.Action != ActionUnchanged {
			res.diff = unifiedDiff(rel, targetPath, string(targetData), string(outData), exists)
		}
		return res, nil
	}

	if res.Action == ActionUnchanged {
		err = filesystem.Chmod(r.fs, targetPath, info.Mode())
	} else {
		err = filesystem.WriteFile(r.fs, targetPath, outData, info.Mode().Perm())
	}
	if err != nil {
		return fail(err, errors.ErrFileWrite, "cannot write target file")
	}
	return res, nil
}

func unifiedDiff(rel, targetPath, before, after string, exists bool) string {
	from := path.Join("a", rel)
	if !exists {
		from = "/dev/null"
	}
	edits := myers.ComputeEdits(span.URIFromPath(targetPath), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(from, path.Join("b", rel), before, edits))
}
