package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultName = "site"
	EnvPrefix   = "STATICSITE"
)

type Config struct {
	ContentDir   string        `mapstructure:"content"`  // markdown sources
	StaticDir    string        `mapstructure:"static"`   // copied into the output as is
	TemplatePath string        `mapstructure:"template"` // page template with {{ Title }} and {{ Content }}
	OutputDir    string        `mapstructure:"output"`
	BasePath     string        `mapstructure:"basepath"` // replaces the leading "/" of root-relative links
	Exclude      []string      `mapstructure:"exclude"`  // doublestar globs relative to ContentDir
	LogPath      string        `mapstructure:"log"`
	Interval     time.Duration `mapstructure:"interval"` // poll interval of watch mode
}

// flag name -> config key
var flagKeys = map[string]string{
	"content":  "content",
	"static":   "static",
	"template": "template",
	"output":   "output",
	"basepath": "basepath",
	"exclude":  "exclude",
	"log":      "log",
	"interval": "interval",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content", "content")
	v.SetDefault("static", "static")
	v.SetDefault("template", "template.html")
	v.SetDefault("output", "docs")
	v.SetDefault("basepath", "/")
	v.SetDefault("exclude", []string{})
	v.SetDefault("log", "")
	v.SetDefault("interval", 500*time.Millisecond)
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		ContentDir:   "content",
		StaticDir:    "static",
		TemplatePath: "template.html",
		OutputDir:    "docs",
		BasePath:     "/",
		Exclude:      []string{},
		Interval:     500 * time.Millisecond,
	}
}

// Load reads configuration from defaults, an optional config file,
// STATICSITE_* environment variables and flags, in increasing priority.
// If path is empty, site.yaml (or .toml, .json) in the working directory is used when it exists.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and normalizes the base path
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"content":  c.ContentDir,
		"static":   c.StaticDir,
		"template": c.TemplatePath,
		"output":   c.OutputDir,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("config: %s must not be empty", name)
		}
	}
	if c.Exclude == nil {
		c.Exclude = []string{}
	}
	c.BasePath = NormalizeBasePath(c.BasePath)
	return nil
}

// NormalizeBasePath makes sure the base path ends with a slash, "" means "/"
func NormalizeBasePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
