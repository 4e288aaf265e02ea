package strategies

import (
	"bytes"
	"io"
	"regexp"

	"github.com/arthur-debert/scaraplate/pkg/inidoc"
	"github.com/arthur-debert/scaraplate/pkg/logging"
)

var setupcfgSectionRules = []sectionRule{
	// A non-standard section
	{pattern: regexp.MustCompile(`^freebsd$`)},
	{pattern: regexp.MustCompile(`^mypy-`)},
	{pattern: regexp.MustCompile(`^options\.data_files$`)},
	{pattern: regexp.MustCompile(`^options\.entry_points$`)},
	// develop is merged as a requirement list below
	{
		pattern:          regexp.MustCompile(`^options\.extras_require$`),
		keepTemplateKeys: regexp.MustCompile(`^develop$`),
	},
}

var setupcfgKeys = []keyRef{
	{section: "tool:pytest", key: "testpaths"},
	{section: "build", key: "executable"},
}

var setupcfgRequirementKeys = []keyRef{
	{section: "options.extras_require", key: "develop"},
	{section: "options", key: "install_requires"},
}

// SetupcfgMerge merges setup.cfg. The template is authoritative except
// for project-specific sections (entry points, data files, extras, mypy
// overrides), the pytest test paths and the build executable, which are
// taken from the target. install_requires and the develop extra are
// merged by package name with the target's specifiers winning.
type SetupcfgMerge struct{}

func (SetupcfgMerge) Apply(in Input) (io.Reader, error) {
	logger := logging.GetLogger("strategies.setupcfg")

	tmpl, err := parseInput(in.Template, "setup.cfg.template")
	if err != nil {
		return nil, err
	}

	var target *inidoc.Document
	if in.Target != nil {
		target, err = parseInput(in.Target, "setup.cfg.target")
		if err != nil {
			return nil, err
		}

		preserveSections(tmpl, target, setupcfgSectionRules)
		for _, ref := range setupcfgKeys {
			preserveKey(tmpl, target, ref)
		}
	}

	for _, ref := range setupcfgRequirementKeys {
		mergeRequirements(tmpl, target, ref)
	}

	logger.Trace().Strs("sections", tmpl.Sections()).Msg("merged setup.cfg")
	return bytes.NewReader(tmpl.Marshal()), nil
}
