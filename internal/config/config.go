package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"time"
	_ "time/tzdata"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	appName        = "payouts"
	configFileName = "payouts.yaml"
	tokenEnv       = "PAYOUTS_TOKEN"

	defaultAPIURL        = "https://api.dub.co"
	defaultTimeout       = 30 * time.Second
	defaultCacheTTL      = 5 * time.Minute
	defaultToastDuration = 3 * time.Second
)

// Flag names shared by every command.
const (
	FlagAPIURL    = "api-url"
	FlagWorkspace = "workspace"
	FlagProgram   = "program"
	FlagToken     = "token"
	FlagDebug     = "debug"
)

// Config holds the configuration options for the application.
type Config struct {
	APIURL        string        `yaml:"apiUrl,omitempty"`
	Token         string        `yaml:"token,omitempty"`
	WorkspaceID   string        `yaml:"workspaceId,omitempty"`
	ProgramID     string        `yaml:"programId,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	CacheTTL      time.Duration `yaml:"cacheTtl,omitempty"`
	ToastDuration time.Duration `yaml:"toastDuration,omitempty"`
	Timezone      string        `yaml:"timezone,omitempty"`
	CachePath     string        `yaml:"cachePath,omitempty"`
	Debug         bool          `yaml:"-"`

	location *time.Location
}

// Path returns the location of the configuration file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, configFileName)
}

// LogPath returns the file the application logs to.
func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// BindFlags registers the flags that override the configuration file.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagAPIURL, "", "base URL of the payouts API")
	fs.String(FlagWorkspace, "", "workspace id")
	fs.String(FlagProgram, "", "program id")
	fs.String(FlagToken, "", "API token (defaults to $"+tokenEnv+")")
	fs.Bool(FlagDebug, false, "enable debug logging")
}

// GetConfig reads the configuration file and returns a Config struct.
// A missing file means defaults; flags that were set on fs win over both.
func GetConfig(fs *pflag.FlagSet) (*Config, error) {
	defaults := DefaultConfig()

	var cfg Config

	b, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", Path(), err)
		}
	}

	conf := Config{
		APIURL:        zeroOr(cfg.APIURL, defaults.APIURL),
		Token:         zeroOr(cfg.Token, os.Getenv(tokenEnv)),
		WorkspaceID:   cfg.WorkspaceID,
		ProgramID:     cfg.ProgramID,
		Timeout:       zeroOr(cfg.Timeout, defaults.Timeout),
		CacheTTL:      zeroOr(cfg.CacheTTL, defaults.CacheTTL),
		ToastDuration: zeroOr(cfg.ToastDuration, defaults.ToastDuration),
		Timezone:      cfg.Timezone,
		CachePath:     zeroOr(cfg.CachePath, defaults.CachePath),
	}

	if err := conf.applyFlags(fs); err != nil {
		return nil, err
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func DefaultConfig() Config {
	return Config{
		APIURL:        defaultAPIURL,
		Timeout:       defaultTimeout,
		CacheTTL:      defaultCacheTTL,
		ToastDuration: defaultToastDuration,
		CachePath:     filepath.Join(xdg.CacheHome, appName, "cache.db"),
	}
}

// Location is the time zone dates are rendered in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}

	return c.location
}

// zeroOr returns def if v is the zero value for its type.
func zeroOr[T any](v, def T) T {
	if reflect.ValueOf(v).IsZero() {
		return def
	}

	return v
}

// applyFlags copies the flags the user actually set into the config.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	fields := map[string]*string{
		FlagAPIURL:    &c.APIURL,
		FlagWorkspace: &c.WorkspaceID,
		FlagProgram:   &c.ProgramID,
		FlagToken:     &c.Token,
	}

	for name, dst := range fields {
		if !fs.Changed(name) {
			continue
		}

		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(FlagDebug) {
		debug, err := fs.GetBool(FlagDebug)
		if err != nil {
			return err
		}
		c.Debug = debug
	}

	return nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: apiUrl %q", ErrInvalidConfig, c.APIURL)
	}

	if c.Timeout <= 0 || c.CacheTTL < 0 || c.ToastDuration <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidConfig)
	}

	if c.CachePath == "" {
		return fmt.Errorf("%w: cachePath is empty", ErrInvalidConfig)
	}

	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("%w: timezone %q", ErrInvalidConfig, c.Timezone)
		}
		c.location = loc
	}

	return nil
}
