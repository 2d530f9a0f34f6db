package options

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/projsync/pkg/errors"
	"github.com/arthur-debert/projsync/pkg/logging"
	"github.com/arthur-debert/projsync/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// ProjectConfigFile is read from the project root when present.
	ProjectConfigFile = ".projsync.toml"
	// EnvPrefix marks environment variables that feed configuration.
	EnvPrefix = "PROJSYNC_"
)

// LoadInput describes everything a load needs besides the environment.
type LoadInput struct {
	// FS reads the project config. Nil means the real filesystem.
	FS types.FS
	// ProjectDir is the target project root.
	ProjectDir string
	// TaskDefaults are option defaults declared by the task.
	TaskDefaults map[string]interface{}
	// UserConfigPath overrides the XDG user config location.
	UserConfigPath string
	// Overrides come from --opt flags and win over everything else.
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/projsync/config.toml.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "projsync", "config.toml")
}

// Load resolves the configuration layers into a Config.
func Load(in LoadInput) (*Config, error) {
	logger := logging.GetLogger("options.loader")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. Task option defaults
	if len(in.TaskDefaults) > 0 {
		if err := k.Load(confmap.Provider(map[string]interface{}{"options": in.TaskDefaults}, ""), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load task defaults")
		}
	}

	// 3. User config
	userPath := in.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userPath).
				WithPath(userPath)
		}
		logger.Debug().Str("path", userPath).Msg("Loaded user config")
	}

	// 4. Project config
	if in.ProjectDir != "" {
		if err := loadProjectConfig(k, in.FS, in.ProjectDir); err != nil {
			return nil, err
		}
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 6. Command line overrides
	if len(in.Overrides) > 0 {
		if err := k.Load(confmap.Provider(map[string]interface{}{"options": in.Overrides}, ""), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if cfg.Options == nil {
		cfg.Options = Options{}
	}

	logger.Debug().
		Bool("install", cfg.Install.Enabled).
		Str("manager", cfg.Install.Manager).
		Strs("options", cfg.Options.Names()).
		Msg("Configuration resolved")
	return &cfg, nil
}

func loadProjectConfig(k *koanf.Koanf, fsys types.FS, dir string) error {
	path := filepath.Join(dir, ProjectConfigFile)
	var (
		data []byte
		err  error
	)
	if fsys != nil {
		data, err = fsys.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).WithPath(path)
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).WithPath(path)
	}
	return nil
}

// envKey maps PROJSYNC_INSTALL_MANAGER to install.manager and
// PROJSYNC_OPTIONS_ESLINT_PRESET to options.eslint_preset. Only the first
// underscore separates the section so option names keep theirs.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// ParseOverrides turns key=value pairs into an override map. Values "true"
// and "false" become booleans.
func ParseOverrides(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "option %q must be key=value", pair)
		}
		switch value {
		case "true":
			out[key] = true
		case "false":
			out[key] = false
		default:
			out[key] = value
		}
	}
	return out, nil
}
