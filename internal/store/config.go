package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

const (
	envConfigDir   = "ALPHABETIZE_CONFIG_DIR"
	configFileName = "config"
	configFileType = "toml"
)

type Config struct {
	// Workspace names the default workspace under <config dir>/workspaces.
	Workspace string `mapstructure:"workspace" toml:"workspace,omitempty"`
	// Dir pins an explicit workspace directory and wins over Workspace.
	Dir string `mapstructure:"dir" toml:"dir,omitempty"`

	Log   LogConfig   `mapstructure:"log" toml:"log"`
	Panel PanelConfig `mapstructure:"panel" toml:"panel"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level,omitempty"`
	Format string `mapstructure:"format" toml:"format,omitempty"`
}

type PanelConfig struct {
	// Glyphs selects the tree glyph set ("unicode" or "ascii").
	Glyphs string `mapstructure:"glyphs" toml:"glyphs,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Workspace: "default",
		Log:       LogConfig{Level: "warn", Format: "console"},
		Panel:     PanelConfig{Glyphs: "unicode"},
	}
}

// ConfigDir is ~/.alphabetize unless ALPHABETIZE_CONFIG_DIR overrides it.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(envConfigDir)); v != "" {
		return filepath.Clean(v), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, workspaceDirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName+"."+configFileType), nil
}

// LoadConfig layers ALPHABETIZE_* env vars over the config file over defaults.
// A missing file is not an error.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("workspace", def.Workspace)
	v.SetDefault("dir", def.Dir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("panel.glyphs", def.Panel.Glyphs)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix("ALPHABETIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes(), 0o644)
}
