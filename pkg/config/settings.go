package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/logging"
)

// EnvPrefix prefixes environment variables that override settings.
const EnvPrefix = "SCARAPLATE_"

// Settings are the application settings of the scaraplate CLI.
type Settings struct {
	Rollup RollupSettings `koanf:"rollup" toml:"rollup"`
	Log    LogSettings    `koanf:"log" toml:"log"`
}

type RollupSettings struct {
	Jobs   int  `koanf:"jobs" toml:"jobs"`
	DryRun bool `koanf:"dry_run" toml:"dry_run"`
}

type LogSettings struct {
	File bool `koanf:"file" toml:"file"`
}

// UserSettingsPath is where the user's settings file is looked up.
func UserSettingsPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, logging.AppName, "config.toml")
}

// LoadSettings layers the embedded defaults, the user settings file and
// the environment.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(UserSettingsPath())
}

// LoadSettingsFrom is LoadSettings with an explicit user settings file.
// A missing file is skipped; an empty path skips the file layer.
func LoadSettingsFrom(userFile string) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	// 2. User file
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", userFile).
					WithDetail("path", userFile)
			}
			logger.Debug().Str("path", userFile).Msg("loaded user settings")
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// envKey maps SCARAPLATE_ROLLUP_DRY_RUN to rollup.dry_run: the first
// underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate checks settings for values the CLI cannot work with.
func (s *Settings) Validate() error {
	if s.Rollup.Jobs < 1 {
		return errors.Newf(errors.ErrConfigValid, "rollup.jobs must be at least 1, got %d", s.Rollup.Jobs).
			WithDetail("key", "rollup.jobs")
	}
	return nil
}

// ToTOML renders the settings in the format of the user settings file.
func (s *Settings) ToTOML() ([]byte, error) {
	data, err := gotoml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	return data, nil
}
