package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/logging"
	"github.com/arthur-debert/hostgen/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables overriding settings
const EnvPrefix = "HOSTGEN_"

// Settings are hostgen's application settings
type Settings struct {
	StoreDir        string `koanf:"store_dir"`
	Hostname        string `koanf:"hostname"`
	Shell           string `koanf:"shell"`
	UnlockCountdown int    `koanf:"unlock_countdown"`
}

// LoadSettings layers embedded defaults, <configDir>/settings.toml and
// HOSTGEN_* environment variables, in that order.
func LoadSettings(configDir string) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User settings file, if any
	settingsPath := filepath.Join(configDir, paths.SettingsFileName)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsPath).
				WithDetail("path", settingsPath)
		}
		logger.Debug().Str("path", settingsPath).Msg("Loaded user settings")
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", settingsPath).
			WithDetail("path", settingsPath)
	}

	// 3. Environment
	envK := koanf.New(".")
	err := envK.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}
	if err := k.Load(confmap.Provider(envK.All(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment settings")
	}

	// 4. Unmarshal
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

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ResolvedHostname returns the configured hostname or the system one.
func (s *Settings) ResolvedHostname() (string, error) {
	if s.Hostname != "" {
		return s.Hostname, nil
	}
	host, err := os.Hostname()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to determine hostname")
	}
	return host, nil
}

func (s *Settings) validate() error {
	if strings.TrimSpace(s.Shell) == "" {
		return errors.New(errors.ErrConfigValid, "shell must not be empty")
	}
	if s.UnlockCountdown < 0 {
		return errors.Newf(errors.ErrConfigValid, "unlock_countdown must not be negative, got %d", s.UnlockCountdown)
	}
	return nil
}
