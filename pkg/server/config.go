package server

import (
	"net/http"
	"time"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/render"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address for ListenAndServe.
	Addr string

	// WSPath is the websocket endpoint. Default: "/ws".
	WSPath string

	// MetricsPath is the Prometheus endpoint. Empty disables it.
	MetricsPath string

	// Title is the page title.
	Title string

	// Render configures materialization. IDAttribute defaults to
	// "data-vid"; clients cannot locate nodes without it.
	Render render.Options

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// PingInterval is how often idle connections are pinged.
	PingInterval time.Duration

	// SendBuffer is the number of frames queued per client before the
	// client is dropped as too slow.
	SendBuffer int

	// CheckOrigin validates websocket origins. Default: same host.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with development defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            "localhost:7070",
		WSPath:          config.DefaultWSPath,
		MetricsPath:     config.DefaultMetricsPath,
		Title:           "vtree",
		Render:          render.Options{ConvertShadow: true, IDAttribute: config.DefaultIDAttribute},
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		PingInterval:    30 * time.Second,
		SendBuffer:      64,
	}
}

// ConfigFrom builds a Config from a loaded vtree.json.
func ConfigFrom(cfg *config.Config) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	c := DefaultConfig()
	c.Addr = cfg.ServerAddress()
	c.WSPath = cfg.Server.WSPath
	c.MetricsPath = ""
	if cfg.MetricsEnabled() {
		c.MetricsPath = cfg.Server.MetricsPath
	}
	c.Render = render.Options{
		ConvertShadow:            cfg.Render.ConvertShadow,
		IDAttribute:              cfg.Render.IDAttribute,
		FlattenShadowDescendants: cfg.Render.FlattenShadowDescendants,
	}
	// Validate already parsed both timeouts.
	c.ReadTimeout, _ = cfg.ReadTimeout()
	c.WriteTimeout, _ = cfg.WriteTimeout()
	return c.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WSPath == "" {
		c.WSPath = def.WSPath
	}
	if c.Render.IDAttribute == "" {
		c.Render.IDAttribute = def.Render.IDAttribute
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = def.PingInterval
	}
	if c.SendBuffer == 0 {
		c.SendBuffer = def.SendBuffer
	}
	return c
}
