package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gorewood/pmdocs/internal/output"
)

// Config is the resolved pmdocs configuration. It is built once per command
// and handed to constructors by value.
type Config struct {
	Output  string        `mapstructure:"output"  yaml:"output"  json:"output"`
	Postman PostmanConfig `mapstructure:"postman" yaml:"postman" json:"postman"`
	Git     GitConfig     `mapstructure:"git"     yaml:"git"     json:"git"`
	Tracker TrackerConfig `mapstructure:"tracker" yaml:"tracker" json:"tracker"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"     json:"log"`
}

// PostmanConfig selects the workspace and collections to export.
type PostmanConfig struct {
	APIKey    string `mapstructure:"api_key"   yaml:"api_key"   json:"api_key"`
	BaseURL   string `mapstructure:"base_url"  yaml:"base_url"  json:"base_url"`
	Workspace string `mapstructure:"workspace" yaml:"workspace" json:"workspace"`
	// Collections holds collection uids or name globs. Empty means all.
	Collections []string `mapstructure:"collections" yaml:"collections" json:"collections"`
	// KeepRaw also writes workspace.json and collection.json snapshots.
	KeepRaw bool `mapstructure:"keep_raw" yaml:"keep_raw" json:"keep_raw"`
}

// GitConfig controls how rendered documents are committed.
type GitConfig struct {
	// Remote is pushed after committing. Empty disables push.
	Remote  string `mapstructure:"remote"  yaml:"remote"  json:"remote"`
	Branch  string `mapstructure:"branch"  yaml:"branch"  json:"branch"`
	Message string `mapstructure:"message" yaml:"message" json:"message"`
}

// TrackerConfig points at the GitLab project that holds the document issues.
type TrackerConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	Token   string `mapstructure:"token"    yaml:"token"    json:"token"`
	// Project is a numeric id or a "group/project" path.
	Project string `mapstructure:"project" yaml:"project" json:"project"`
	// Delay is slept before every tracker call.
	Delay   time.Duration `mapstructure:"delay"    yaml:"delay"    json:"delay"`
	PerPage int           `mapstructure:"per_page" yaml:"per_page" json:"per_page"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Options tells Load where to look besides the environment.
type Options struct {
	// File is an explicit config file (--config). Empty searches the defaults.
	File string
	// Flags are bound by name through flagKeys when present.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"output":     "output",
	"workspace":  "postman.workspace",
	"collection": "postman.collections",
	"keep-raw":   "postman.keep_raw",
	"remote":     "git.remote",
	"message":    "git.message",
	"project":    "tracker.project",
	"delay":      "tracker.delay",
	"log-level":  "log.level",
	"log-format": "log.format",
}

var defaults = map[string]any{
	"output":              "./docs",
	"postman.api_key":     "",
	"postman.base_url":    "https://api.getpostman.com",
	"postman.workspace":   "",
	"postman.collections": []string{},
	"postman.keep_raw":    false,
	"git.remote":          "origin",
	"git.branch":          "",
	"git.message":         "docs: sync API collections",
	"tracker.base_url":    "https://gitlab.com",
	"tracker.token":       "",
	"tracker.project":     "",
	"tracker.delay":       "1s",
	"tracker.per_page":    20,
	"log.level":           "info",
	"log.format":          "text",
}

// Load resolves the configuration. Precedence, highest first: flags,
// PMDOCS_* environment (including values loaded from .env files), the
// config file, defaults.
func Load(opts Options) (Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return Config{}, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("PMDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts.File); err != nil {
		return Config{}, err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, output.NewSystemErrorWithCause("binding flag --"+name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, output.NewUserError(fmt.Sprintf("invalid configuration: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readConfigFile reads file, or the first of .pmdocs.yaml and
// <Dir()>/config.yaml that exists.
func readConfigFile(v *viper.Viper, file string) error {
	if file == "" {
		candidates := []string{".pmdocs.yaml"}
		if dir := Dir(); dir != "" {
			candidates = append(candidates, filepath.Join(dir, "config.yaml"))
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				file = candidate
				break
			}
		}
	}
	if file == "" {
		return nil
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return output.NewUserError(fmt.Sprintf("reading config file %s: %v", file, err))
	}
	return nil
}

// LoadEnvFiles loads .env.local, .env and <Dir()>/env in that order.
// Variables already present in the environment, even empty ones, are never
// overwritten. Missing files are skipped; unreadable ones are user errors.
func LoadEnvFiles() error {
	paths := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	for _, path := range paths {
		if err := loadEnvFile(path); err != nil {
			return output.NewUserError(err.Error())
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("setting %s from %s: %w", name, path, err)
		}
	}
	return nil
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return output.NewUserError("output directory is required")
	}
	if c.Tracker.Delay < 0 {
		return output.NewUserError("tracker.delay must not be negative")
	}
	if c.Tracker.PerPage < 1 || c.Tracker.PerPage > 100 {
		return output.NewUserError(fmt.Sprintf("tracker.per_page must be between 1 and 100, got %d", c.Tracker.PerPage))
	}
	return nil
}

// ValidateForExport checks the settings needed to fetch collections.
func (c Config) ValidateForExport() error {
	if c.Postman.APIKey == "" {
		return output.NewUserError("postman.api_key is required (set PMDOCS_POSTMAN_API_KEY)")
	}
	if c.Postman.Workspace == "" {
		return output.NewUserError("postman.workspace is required (--workspace)")
	}
	return nil
}

// ValidateForSync checks the settings needed to talk to the tracker.
func (c Config) ValidateForSync() error {
	if c.Tracker.Token == "" {
		return output.NewUserError("tracker.token is required (set PMDOCS_TRACKER_TOKEN)")
	}
	if c.Tracker.Project == "" {
		return output.NewUserError("tracker.project is required (--project)")
	}
	return nil
}

// Redacted returns a copy with credentials masked, for display.
func (c Config) Redacted() Config {
	if c.Postman.APIKey != "" {
		c.Postman.APIKey = redacted
	}
	if c.Tracker.Token != "" {
		c.Tracker.Token = redacted
	}
	return c
}

const redacted = "********"
