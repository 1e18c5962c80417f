package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/models"
)

// Input names
const (
	InputURL   = "url"
	InputStyle = "style"
	InputToken = "token"
)

// Config is the fully resolved and validated configuration for one run
type Config struct {
	URL     string
	Style   models.Style
	Token   string
	EnvFile string
	Debug   bool
	// Warnings lists settings that were ignored because they could not be used.
	Warnings []string
}

// FileConfig represents the optional YAML configuration file
type FileConfig struct {
	URL     string `yaml:"url"`
	Style   string `yaml:"style"`
	Token   string `yaml:"token"`
	EnvFile string `yaml:"env_file"`
	Debug   bool   `yaml:"debug"`
}

// Runner holds the merged runner settings
type Runner struct {
	EnvFile string
	Debug   bool
}

// runnerEnv holds the raw values exported by the CI runner
type runnerEnv struct {
	EnvFile string `env:"GITHUB_ENV"`
	Debug   string `env:"RUNNER_DEBUG"`
}

// CLIOverrides holds command-line flag values. Empty strings mean "not set".
type CLIOverrides struct {
	ConfigFile string
	URL        string
	Style      string
	Token      string
	EnvFile    string
	Debug      bool
}

// Load resolves the configuration with precedence:
// CLI flags > environment > YAML config > defaults.
// environ replaces the process environment when non-nil.
func Load(overrides *CLIOverrides, environ map[string]string) (*Config, error) {
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	fileCfg := &FileConfig{}
	configPath := overrides.ConfigFile
	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		loaded, err := LoadFile(configPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load config file '%s'", configPath), err)
		}
		fileCfg = loaded
	}

	lookup := os.LookupEnv
	if environ != nil {
		lookup = func(key string) (string, bool) {
			v, ok := environ[key]
			return v, ok
		}
	}

	resolver := NewResolver(
		MapSource{InputURL: overrides.URL, InputStyle: overrides.Style, InputToken: overrides.Token},
		EnvSource{LookupEnv: lookup},
		MapSource{InputURL: fileCfg.URL, InputStyle: fileCfg.Style, InputToken: fileCfg.Token},
	)

	rawURL, err := resolver.Resolve(InputURL, Option{Required: true})
	if err != nil {
		return nil, err
	}
	validURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	rawStyle, err := resolver.Resolve(InputStyle, Option{Default: string(models.DefaultStyle)})
	if err != nil {
		return nil, err
	}
	style, err := models.ParseStyle(rawStyle)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("Invalid style '%s'. Allowed: snake, camel, dot", strings.ToLower(rawStyle)), errors.ErrInvalidStyle)
	}

	token, err := resolver.Resolve(InputToken, Option{})
	if err != nil {
		return nil, err
	}

	runner, warnings, err := loadRunner(overrides, environ, fileCfg)
	if err != nil {
		return nil, err
	}

	return &Config{
		URL:      validURL,
		Style:    style,
		Token:    token,
		EnvFile:  strings.TrimSpace(runner.EnvFile),
		Debug:    runner.Debug,
		Warnings: warnings,
	}, nil
}

// loadRunner merges the runner settings: flags first, then the runner environment,
// then the config file. mergo only fills fields that are still empty.
// A RUNNER_DEBUG that is not a boolean leaves debug off and is reported as a warning.
func loadRunner(overrides *CLIOverrides, environ map[string]string, fileCfg *FileConfig) (Runner, []string, error) {
	var raw runnerEnv
	var err error
	if environ != nil {
		err = env.ParseWithOptions(&raw, env.Options{Environment: environ})
	} else {
		err = env.Parse(&raw)
	}
	if err != nil {
		return Runner{}, nil, errors.NewConfigError("failed to read runner environment", err)
	}

	var warnings []string
	fromEnv := Runner{EnvFile: raw.EnvFile}
	if debug := strings.TrimSpace(raw.Debug); debug != "" {
		parsed, err := strconv.ParseBool(debug)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring RUNNER_DEBUG=%q: not a boolean", raw.Debug))
		}
		fromEnv.Debug = parsed
	}

	runner := Runner{EnvFile: overrides.EnvFile, Debug: overrides.Debug}
	layers := []Runner{fromEnv, {EnvFile: fileCfg.EnvFile, Debug: fileCfg.Debug}}
	for _, layer := range layers {
		if err := mergo.Merge(&runner, layer); err != nil {
			return Runner{}, nil, errors.NewConfigError("failed to merge runner settings", err)
		}
	}
	return runner, warnings, nil
}

// LoadFile loads configuration from a YAML file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".envflat.yml", ".envflat.yaml", "envflat.yml", "envflat.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ValidateURL checks that raw is an absolute http or https URL and returns it normalized.
// Like a browser, it accepts "http:host" and "http:/host" as "http://host/", and an
// empty path becomes "/".
func ValidateURL(raw string) (string, error) {
	invalid := errors.NewConfigError(fmt.Sprintf("Invalid URL: %s", raw), errors.ErrInvalidURL)

	u, err := url.Parse(raw)
	if err != nil {
		return "", invalid
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", invalid
	}
	if u.Host == "" {
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], `/\`)
		if u, err = url.Parse(scheme + "://" + rest); err != nil || u.Host == "" {
			return "", invalid
		}
	}
	u.Scheme = scheme
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Source provides raw input values by name
type Source interface {
	Lookup(name string) (string, bool)
}

// MapSource serves values from a map. Empty values count as missing.
type MapSource map[string]string

// Lookup implements Source
func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

// EnvSource reads inputs from environment variables, trying INPUT_<NAME> first,
// then the plain name, then its upper-case form. A variable that is set but empty
// still counts as found.
type EnvSource struct {
	LookupEnv func(key string) (string, bool)
}

// Keys returns the variable names consulted for name, in order.
func (s EnvSource) Keys(name string) []string {
	screaming := strcase.ToScreamingSnake(name)
	keys := []string{"INPUT_" + screaming, name}
	if screaming != name {
		keys = append(keys, screaming)
	}
	return keys
}

// Lookup implements Source
func (s EnvSource) Lookup(name string) (string, bool) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range s.Keys(name) {
		if v, ok := lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Option controls how a single input is resolved
type Option struct {
	Required bool
	Default  string
}

// Resolver resolves named inputs from an ordered list of sources
type Resolver struct {
	sources []Source
}

// NewResolver creates a Resolver consulting sources in order
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve returns the trimmed value of the first source that has name, falling back
// to opt.Default when that value is empty. A whitespace-only value is not empty: it
// trims to "" without taking the default. It fails with a config error when
// opt.Required is set and nothing non-empty remains.
func (r *Resolver) Resolve(name string, opt Option) (string, error) {
	var value string
	for _, source := range r.sources {
		if v, ok := source.Lookup(name); ok {
			value = v
			break
		}
	}

	if value == "" {
		value = opt.Default
	}
	value = strings.TrimSpace(value)
	if opt.Required && value == "" {
		return "", errors.NewConfigError(fmt.Sprintf("Missing required input: %s", name), errors.ErrMissingInput)
	}
	return value, nil
}
