package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "GHLL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// REPLConfig holds settings of the interactive line loop
type REPLConfig struct {
	Prompt          string `toml:"prompt" yaml:"prompt"`
	HistoryFile     string `toml:"history_file" yaml:"history_file"`
	TreeColor       string `toml:"tree_color" yaml:"tree_color"`
	ShowTokens      bool   `toml:"show_tokens" yaml:"show_tokens"`
	ShowDiagnostics bool   `toml:"show_diagnostics" yaml:"show_diagnostics"`
	MaxInputLength  int    `toml:"max_input_length" yaml:"max_input_length"`
}

// HistoryConfig holds settings of the parse journal
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// ServerConfig holds settings of the gRPC and HTTP servers
type ServerConfig struct {
	GRPCHost        string   `toml:"grpc_host" yaml:"grpc_host"`
	GRPCPort        int      `toml:"grpc_port" yaml:"grpc_port"`
	HTTPHost        string   `toml:"http_host" yaml:"http_host"`
	HTTPPort        int      `toml:"http_port" yaml:"http_port"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.History.Enabled = true
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.load").
			WithDetail("path", path)
	}

	cfg := Config{History: HistoryConfig{Enabled: true}}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.Decode(string(content), &cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, mdwerror.Newf("unsupported config format %q", ext).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPaths returns the locations searched when GHLL_CONFIG is unset
func DefaultPaths() []string {
	paths := []string{
		"./configs/ghll.toml",
		"./ghll.toml",
		"./ghll.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ghll", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads configuration from the GHLL_CONFIG environment variable
// or the first existing default path
func LoadFromEnv() (*Config, error) {
	path := locate()
	if path == "" {
		return nil, mdwerror.New("no config file found, set GHLL_CONFIG or create configs/ghll.toml").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.loadFromEnv")
	}

	return Load(path)
}

// Resolve loads path when given, otherwise the file LoadFromEnv would use.
// Without any file the defaults are returned. The returned path is the
// file that was loaded, empty for defaults.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		path = locate()
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// locate returns GHLL_CONFIG or the first existing default path
func locate() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "ghll"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = defaultDataDir()
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = ">"
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = filepath.Join(c.General.DataDir, "readline.history")
	}
	if c.REPL.TreeColor == "" {
		c.REPL.TreeColor = "8"
	}
	if c.REPL.MaxInputLength == 0 {
		c.REPL.MaxInputLength = 4096
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}

	// Server
	if c.Server.GRPCHost == "" {
		c.Server.GRPCHost = "127.0.0.1"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9470
	}
	if c.Server.HTTPHost == "" {
		c.Server.HTTPHost = "127.0.0.1"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 9471
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout = Duration{10 * time.Second}
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks value ranges that defaults cannot repair
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.Newf("invalid value for %s: %v", field, value).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.validate").
			WithDetail("field", field)
	}

	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return invalid("server.grpc_port", c.Server.GRPCPort)
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return invalid("server.http_port", c.Server.HTTPPort)
	}
	if c.REPL.MaxInputLength < 0 {
		return invalid("repl.max_input_length", c.REPL.MaxInputLength)
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return invalid("server.shutdown_timeout", c.Server.ShutdownTimeout)
	}
	return nil
}

// GRPCAddress returns the gRPC listen address
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.GRPCHost, c.Server.GRPCPort)
}

// HTTPAddress returns the HTTP listen address
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.HTTPHost, c.Server.HTTPPort)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ghll")
	}
	return "./data"
}
