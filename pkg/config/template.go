package config

import (
	"path/filepath"
	"regexp"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/logging"
	"github.com/arthur-debert/scaraplate/pkg/strategies"
)

// TemplateFile is the name of the template configuration file.
const TemplateFile = "scaraplate.yaml"

// DefaultProjectDir holds the rendered project inside a template.
const DefaultProjectDir = "project"

// StrategyNode names a strategy and its optional config. In YAML it is
// either a plain string or a mapping with `strategy` and `config` keys.
type StrategyNode struct {
	Strategy string
	Config   map[string]interface{}
}

func (n *StrategyNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Strategy = value.Value
		n.Config = nil
		return nil
	case yaml.MappingNode:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"line %d: strategy must be a name or a mapping", value.Line).WithDetail("line", value.Line)
	}

	var raw struct {
		Strategy string    `yaml:"strategy"`
		Config   yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Strategy == "" {
		return errors.Newf(errors.ErrConfigValid,
			"line %d: strategy mapping has no `strategy` key", value.Line).WithDetail("line", value.Line)
	}
	n.Strategy = raw.Strategy
	n.Config = nil

	switch raw.Config.Kind {
	case 0:
	case yaml.ScalarNode:
		if raw.Config.Tag != "!!null" {
			return errors.Newf(errors.ErrConfigValid,
				"line %d: config of %s must be a mapping", raw.Config.Line, raw.Strategy).
				WithDetail("line", raw.Config.Line)
		}
	case yaml.MappingNode:
		if err := raw.Config.Decode(&n.Config); err != nil {
			return err
		}
	default:
		return errors.Newf(errors.ErrConfigValid,
			"line %d: config of %s must be a mapping", raw.Config.Line, raw.Strategy).
			WithDetail("line", raw.Config.Line)
	}
	return nil
}

// Build instantiates the strategy the node names.
func (n StrategyNode) Build() (strategies.Strategy, error) {
	s, err := strategies.New(n.Strategy, n.Config)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid strategy %q", n.Strategy).
			WithDetail("strategy", n.Strategy)
	}
	return s, nil
}

type rawTemplate struct {
	DefaultStrategy   *StrategyNode           `yaml:"default_strategy"`
	StrategiesMapping map[string]StrategyNode `yaml:"strategies_mapping"`
	GitRemoteType     string                  `yaml:"git_remote_type"`
	ProjectDir        string                  `yaml:"project_dir"`
}

// Binding is a built strategy together with the name it was configured
// under.
type Binding struct {
	Name     string
	Strategy strategies.Strategy
}

// PatternBinding routes files matching Pattern to a strategy.
type PatternBinding struct {
	Binding
	Pattern string
	re      *regexp.Regexp
}

// Template is a loaded and validated scaraplate.yaml.
type Template struct {
	Default Binding
	// Mapping is sorted by pattern.
	Mapping       []PatternBinding
	GitRemoteType string
	ProjectDir    string
}

// LoadTemplate reads scaraplate.yaml from the template directory dir.
func LoadTemplate(fs afero.Fs, dir string) (*Template, error) {
	path := filepath.Join(dir, TemplateFile)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "cannot read %s", path).
			WithDetail("path", path)
	}
	return ParseTemplate(data, path)
}

// ParseTemplate decodes and validates template configuration. source
// names the file in errors.
func ParseTemplate(data []byte, source string) (*Template, error) {
	logger := logging.GetLogger("config.template")

	var raw rawTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Annotatef(err, errors.ErrConfigParse, "cannot parse %s", source).
			WithDetail("source", source)
	}

	if raw.DefaultStrategy == nil {
		return nil, errors.Newf(errors.ErrConfigValid, "%s: default_strategy is required", source).
			WithDetail("source", source)
	}
	if raw.StrategiesMapping == nil {
		return nil, errors.Newf(errors.ErrConfigValid, "%s: strategies_mapping is required", source).
			WithDetail("source", source)
	}

	t := &Template{
		GitRemoteType: raw.GitRemoteType,
		ProjectDir:    raw.ProjectDir,
	}
	if t.ProjectDir == "" {
		t.ProjectDir = DefaultProjectDir
	}

	s, err := raw.DefaultStrategy.Build()
	if err != nil {
		return nil, err
	}
	t.Default = Binding{Name: raw.DefaultStrategy.Strategy, Strategy: s}

	patterns := lo.Keys(raw.StrategiesMapping)
	sort.Strings(patterns)
	for _, pattern := range patterns {
		re, err := compilePattern(pattern)
		if err != nil {
			return nil, err
		}
		node := raw.StrategiesMapping[pattern]
		s, err := node.Build()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "strategies_mapping %q", pattern).
				WithDetail("pattern", pattern)
		}
		t.Mapping = append(t.Mapping, PatternBinding{
			Pattern: pattern,
			Binding: Binding{Name: node.Strategy, Strategy: s},
			re:      re,
		})
	}

	logger.Debug().
		Str("source", source).
		Str("default", t.Default.Name).
		Int("patterns", len(t.Mapping)).
		Msg("loaded template config")
	return t, nil
}

// StrategyFor selects the strategy for a file given its slash-separated
// path relative to the project root. Patterns are tried in sorted order
// and the first match wins; unmatched files get the default strategy.
func (t *Template) StrategyFor(path string) Binding {
	for _, pb := range t.Mapping {
		if pb.re.MatchString(path) {
			return pb.Binding
		}
	}
	return t.Default
}
