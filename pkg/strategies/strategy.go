package strategies

import (
	"io"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/registry"
	"github.com/arthur-debert/scaraplate/pkg/template"
)

// Input is what a strategy merges. Target is nil when the file does not
// exist in the target project yet.
type Input struct {
	Target   io.Reader
	Template io.Reader
	Meta     template.Meta
}

// Strategy decides the contents of one target file from its current
// contents and the template's version of it. Implementations hold no
// per-call state and may be shared between goroutines; the readers of an
// Input are consumed by a single Apply call.
type Strategy interface {
	Apply(in Input) (io.Reader, error)
}

// Factory builds a strategy from its `config` mapping in scaraplate.yaml.
type Factory func(config map[string]interface{}) (Strategy, error)

// Built-in strategy names.
const (
	NameOverwrite          = "Overwrite"
	NameIfMissing          = "IfMissing"
	NameSortedUniqueLines  = "SortedUniqueLines"
	NameTemplateHash       = "TemplateHash"
	NamePythonTemplateHash = "PythonTemplateHash"
	NameGroovyTemplateHash = "GroovyTemplateHash"
	NamePylintrcMerge      = "PylintrcMerge"
	NameSetupcfgMerge      = "SetupcfgMerge"
)

// Namespace may prefix strategy names, so configs written as
// `scaraplate.strategies.Overwrite` keep working.
const Namespace = "scaraplate.strategies"

var factories = registry.New[Factory]("strategy", registry.WithNamespace(Namespace))

func init() {
	registry.MustRegister(factories, NameOverwrite, noConfig(Overwrite{}))
	registry.MustRegister(factories, NameIfMissing, noConfig(IfMissing{}))
	registry.MustRegister(factories, NameSortedUniqueLines, noConfig(SortedUniqueLines{}))
	registry.MustRegister(factories, NamePylintrcMerge, noConfig(PylintrcMerge{}))
	registry.MustRegister(factories, NameSetupcfgMerge, noConfig(SetupcfgMerge{}))
	registry.MustRegister(factories, NameTemplateHash, templateHashFactory(DefaultHashOptions))
	registry.MustRegister(factories, NamePythonTemplateHash, templateHashFactory(PythonHashOptions))
	registry.MustRegister(factories, NameGroovyTemplateHash, templateHashFactory(GroovyHashOptions))
}

// New returns the named strategy configured with config, which may be nil.
func New(name string, config map[string]interface{}) (Strategy, error) {
	factory, err := factories.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStrategyNotFound, "unknown strategy %q", name).
			WithDetail("strategy", name)
	}
	return factory(config)
}

// Names lists the registered strategy names.
func Names() []string {
	return factories.List()
}

// Register adds a strategy factory under name.
func Register(name string, factory Factory) error {
	return factories.Register(name, factory)
}

func noConfig(s Strategy) Factory {
	return func(config map[string]interface{}) (Strategy, error) {
		if len(config) > 0 {
			return nil, errors.Newf(errors.ErrStrategyConfig, "strategy %T accepts no config, got %v", s, config)
		}
		return s, nil
	}
}

// decodeConfig fills out from a raw config mapping, rejecting unknown keys.
func decodeConfig(config map[string]interface{}, out interface{}) error {
	if len(config) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot build config decoder")
	}
	if err := decoder.Decode(config); err != nil {
		return errors.Wrap(err, errors.ErrStrategyConfig, "invalid strategy config")
	}
	return nil
}

func readAll(r io.Reader, what string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read %s contents", what)
	}
	return data, nil
}
