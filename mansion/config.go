package mansion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dchest/safefile"
	"github.com/gamescout/scout/comm"
	"github.com/gamescout/scout/database"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	DefaultAddress  = "http://localhost:5000"
	DefaultPageSize = 20

	EnvAddress = "SCOUT_ADDRESS"
	EnvToken   = "SCOUT_TOKEN"
)

// Config is what can be set in config.toml. Empty fields fall back
// to defaults.
type Config struct {
	Address  string `toml:"address,omitempty" mapstructure:"address"`
	PageSize int64  `toml:"page_size,omitempty" mapstructure:"page_size"`
	DBPath   string `toml:"db_path,omitempty" mapstructure:"db_path"`
}

// DefaultConfigPath is config.toml in scout's directory of the user
// config dir.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "scout", "config.toml")
}

// LoadConfig reads the config file at path. A missing file is an empty
// config. Unknown keys are warned about, not rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	var intermediate map[string]interface{}
	_, err := toml.DecodeFile(path, &intermediate)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = decoder.Decode(intermediate)
	if err != nil {
		warnOnly := false
		if mse, ok := err.(*mapstructure.Error); ok {
			warnOnly = true
			for _, e := range mse.Errors {
				if !strings.Contains(e, "has invalid keys") {
					warnOnly = false
					break
				}
			}
		}

		if !warnOnly {
			return nil, errors.Wrapf(err, "decoding %s", path)
		}
		comm.Warnf("In %s: %s", path, err.Error())
	}

	return cfg, nil
}

// SaveConfig replaces the config file at path. Readers never see a
// partially written file.
func SaveConfig(path string, cfg *Config) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return errors.WithStack(err)
	}

	f, err := safefile.Create(path, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	err = toml.NewEncoder(f).Encode(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	return errors.WithStack(f.Commit())
}

// Resolve fills settings that weren't given as flags, from the
// environment, then the config file, then defaults.
func (ctx *Context) Resolve() error {
	if ctx.ConfigPath == "" {
		ctx.ConfigPath = DefaultConfigPath()
	}

	cfg, err := LoadConfig(ctx.ConfigPath)
	if err != nil {
		return err
	}

	ctx.Address = firstNonEmpty(ctx.Address, os.Getenv(EnvAddress), cfg.Address, DefaultAddress)
	ctx.Token = firstNonEmpty(ctx.Token, os.Getenv(EnvToken))
	ctx.DBPath = firstNonEmpty(ctx.DBPath, cfg.DBPath)
	if ctx.DBPath == "" {
		appData, err := database.GetAppDataPath("scout")
		if err != nil {
			return errors.WithMessage(err, "finding default database path")
		}
		ctx.DBPath = filepath.Join(appData, "db", "scout.db")
	}

	if ctx.PageSize <= 0 {
		ctx.PageSize = cfg.PageSize
	}
	if ctx.PageSize <= 0 {
		ctx.PageSize = DefaultPageSize
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
