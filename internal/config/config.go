package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	vterrors "github.com/vango-dev/vtree/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPort is the default server port.
	DefaultPort = 7070

	// DefaultWSPath is the default websocket endpoint.
	DefaultWSPath = "/ws"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultIDAttribute is the attribute that carries node IDs to clients.
	DefaultIDAttribute = "data-vid"

	// DefaultTimeout is the default server read and write timeout.
	DefaultTimeout = "10s"

	// DefaultRegion is the default publish region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Server contains live-sync server settings.
	Server ServerConfig `json:"server"`

	// Render contains materializer settings.
	Render RenderConfig `json:"render"`

	// Publish contains snapshot upload settings.
	Publish PublishConfig `json:"publish"`

	// Log contains logger settings.
	Log LogConfig `json:"log"`

	configPath string
}

// ServerConfig contains live-sync server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// WSPath is the websocket endpoint path.
	WSPath string `json:"wsPath,omitempty"`

	// MetricsPath is the Prometheus endpoint path. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty"`

	// ReadTimeout and WriteTimeout are Go durations (e.g. "10s").
	ReadTimeout  string `json:"readTimeout,omitempty"`
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// RenderConfig contains materializer settings.
type RenderConfig struct {
	// IDAttribute stamps each rendered element with its node ID.
	IDAttribute string `json:"idAttribute,omitempty"`

	// ConvertShadow attaches nested trees as declarative shadow roots.
	ConvertShadow bool `json:"convertShadow"`

	// FlattenShadowDescendants also renders every descendant of a nested
	// tree directly under its shadow root.
	FlattenShadowDescendants bool `json:"flattenShadowDescendants,omitempty"`
}

// PublishConfig contains snapshot upload settings.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Development selects the human-readable console encoder.
	Development bool `json:"development,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			WSPath:       DefaultWSPath,
			MetricsPath:  DefaultMetricsPath,
			ReadTimeout:  DefaultTimeout,
			WriteTimeout: DefaultTimeout,
		},
		Render: RenderConfig{
			IDAttribute:   DefaultIDAttribute,
			ConvertShadow: true,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads vtree.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the given file. Missing fields keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vterrors.New(vterrors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without a config to use defaults")
		}
		return nil, vterrors.New(vterrors.CodeConfigNotFound).Wrap(errors.Wrapf(err, "read %s", path))
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		verr := vterrors.New(vterrors.CodeConfigSyntax).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			line, col := position(data, syn.Offset)
			verr = verr.WithLocation(path, line, col)
		}
		return nil, verr
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	offset = min(offset, int64(len(data)))
	before := data[:offset]
	line = 1 + strings.Count(string(before), "\n")
	col = int(offset) - strings.LastIndexByte(string(before), '\n')
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return vterrors.Newf(vterrors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return vterrors.New(vterrors.CodeConfigInvalid).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return vterrors.New(vterrors.CodeConfigInvalid).Wrap(errors.Wrapf(err, "write %s", path))
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	def := New()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.WSPath == "" {
		c.Server.WSPath = def.Server.WSPath
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = def.Server.MetricsPath
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Publish.Region == "" {
		c.Publish.Region = def.Publish.Region
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks the configuration for values the server and publisher
// cannot use.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return vterrors.New(vterrors.CodeConfigInvalid).WithDetailf(format, args...)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	for name, p := range map[string]string{"server.wsPath": c.Server.WSPath, "server.metricsPath": c.Server.MetricsPath} {
		if p != "" && p != "-" && !strings.HasPrefix(p, "/") {
			return invalid("%s must start with '/', got %q", name, p)
		}
	}
	if _, err := c.ReadTimeout(); err != nil {
		return invalid("server.readTimeout: %v", err)
	}
	if _, err := c.WriteTimeout(); err != nil {
		return invalid("server.writeTimeout: %v", err)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return invalid("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Publish.Endpoint != "" && !strings.Contains(c.Publish.Endpoint, "://") {
		return invalid("publish.endpoint must be a URL, got %q", c.Publish.Endpoint)
	}
	return nil
}

// ServerAddress returns the host:port the server listens on.
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ServerURL returns the http URL of the server.
func (c *Config) ServerURL() string {
	return "http://" + c.ServerAddress()
}

// ReadTimeout parses server.readTimeout. Empty means no timeout.
func (c *Config) ReadTimeout() (time.Duration, error) {
	return parseDuration(c.Server.ReadTimeout)
}

// WriteTimeout parses server.writeTimeout. Empty means no timeout.
func (c *Config) WriteTimeout() (time.Duration, error) {
	return parseDuration(c.Server.WriteTimeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Errorf("negative duration %s", s)
	}
	return d, nil
}

// MetricsEnabled reports whether the Prometheus endpoint is served.
func (c *Config) MetricsEnabled() bool {
	return c.Server.MetricsPath != "" && c.Server.MetricsPath != "-"
}

// Exists checks if a config file exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the first directory holding
// vtree.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, "resolve start directory")
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", vterrors.New(vterrors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromDir loads the nearest vtree.json at or above dir.
func LoadFromDir(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// LoadFromWorkingDir loads the nearest vtree.json at or above the working
// directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "get working directory")
	}
	return LoadFromDir(wd)
}
