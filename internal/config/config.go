package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/git-worktree-cursor/internal/localfiles"
	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
	"github.com/shinji-kodama/git-worktree-cursor/internal/worktree"
)

const (
	// AppName names the global configuration directory.
	AppName = "git-worktree-cursor"

	// EnvPrefix prefixes environment overrides, e.g. GWC_EDITOR.
	EnvPrefix = "GWC"

	// LocalFileName is the repository-local override file.
	LocalFileName = ".worktree-cursor.jsonc"

	defaultConcurrency = 4
)

// Config holds the effective settings.
type Config struct {
	Editor       string   `mapstructure:"editor" json:"editor" yaml:"editor"`
	Patterns     []string `mapstructure:"patterns" json:"patterns" yaml:"patterns"`
	LaunchEditor bool     `mapstructure:"launch_editor" json:"launch_editor" yaml:"launch_editor"`
	Porcelain    bool     `mapstructure:"porcelain" json:"porcelain" yaml:"porcelain"`
	Concurrency  int      `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency"`

	// DeleteMode preselects the deletion mode; empty means ask.
	DeleteMode string `mapstructure:"delete_mode" json:"delete_mode" yaml:"delete_mode"`

	// GlobalFile and LocalFile record which files were read, if any.
	GlobalFile string `mapstructure:"-" json:"global_file,omitempty" yaml:"global_file,omitempty"`
	LocalFile  string `mapstructure:"-" json:"local_file,omitempty" yaml:"local_file,omitempty"`
}

// localOverrides mirrors the JSONC file. Pointers distinguish "absent"
// from a zero value.
type localOverrides struct {
	Editor       *string  `json:"editor"`
	Patterns     []string `json:"patterns"`
	LaunchEditor *bool    `json:"launch_editor"`
	Porcelain    *bool    `json:"porcelain"`
	Concurrency  *int     `json:"concurrency"`
	DeleteMode   *string  `json:"delete_mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor:       worktree.DefaultEditor,
		Patterns:     localfiles.Patterns(),
		LaunchEditor: true,
		Concurrency:  defaultConcurrency,
	}
}

// Load reads the global configuration and then the local override file in
// repoRoot. configFile, when non-empty, replaces the global file search
// and must exist. A missing global or local file is not an error.
func Load(repoRoot, configFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, AppName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("editor", cfg.Editor)
	v.SetDefault("patterns", cfg.Patterns)
	v.SetDefault("launch_editor", cfg.LaunchEditor)
	v.SetDefault("porcelain", cfg.Porcelain)
	v.SetDefault("concurrency", cfg.Concurrency)
	v.SetDefault("delete_mode", cfg.DeleteMode)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, model.WrapCLIError(model.ExitValidationError,
				fmt.Sprintf("failed to read config file %s", v.ConfigFileUsed()), err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitValidationError, "invalid configuration", err)
	}
	cfg.GlobalFile = v.ConfigFileUsed()

	if repoRoot != "" {
		if err := cfg.applyLocal(filepath.Join(repoRoot, LocalFileName)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyLocal overlays the JSONC file at path. Comments and trailing
// commas are stripped before decoding with encoding/json.
func (c *Config) applyLocal(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var o localOverrides
	if err := json.Unmarshal(jsonc.ToJSON(data), &o); err != nil {
		return model.WrapCLIError(model.ExitValidationError,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	if o.Editor != nil && *o.Editor != "" {
		c.Editor = *o.Editor
	}
	if len(o.Patterns) > 0 {
		c.Patterns = o.Patterns
	}
	if o.LaunchEditor != nil {
		c.LaunchEditor = *o.LaunchEditor
	}
	if o.Porcelain != nil {
		c.Porcelain = *o.Porcelain
	}
	if o.Concurrency != nil {
		c.Concurrency = *o.Concurrency
	}
	if o.DeleteMode != nil && *o.DeleteMode != "" {
		c.DeleteMode = *o.DeleteMode
	}
	c.LocalFile = path
	return nil
}

// Validate checks the settings that cannot be used as given.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.DeleteMode != "" {
		if _, err := model.ParseDeletionMode(c.DeleteMode); err != nil {
			return model.WrapCLIError(model.ExitValidationError, "invalid delete_mode", err)
		}
	}
	return nil
}

// Mode returns the preselected deletion mode, or false when the user
// should be asked.
func (c *Config) Mode() (model.DeletionMode, bool) {
	if c.DeleteMode == "" {
		return "", false
	}
	mode, err := model.ParseDeletionMode(c.DeleteMode)
	if err != nil {
		return "", false
	}
	return mode, true
}
