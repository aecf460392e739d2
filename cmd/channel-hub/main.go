package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"zigbee-channels/internal/bus"
	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/device"
	"zigbee-channels/internal/store"
	"zigbee-channels/internal/transport"
	"zigbee-channels/internal/web"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

type Config struct {
	Transport struct {
		Type string `yaml:"type"` // "sim"
	} `yaml:"transport"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Web struct {
		Enabled        bool     `yaml:"enabled"`
		Listen         string   `yaml:"listen"`
		APIKey         string   `yaml:"api_key"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"web"`
	MQTT struct {
		Enabled     bool   `yaml:"enabled"`
		Broker      string `yaml:"broker"`
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		TopicPrefix string `yaml:"topic_prefix"`
	} `yaml:"mqtt"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	// UpdateInterval paces the periodic refresh of mains-powered devices.
	// Go duration string; "0" disables the pass.
	UpdateInterval string `yaml:"update_interval"`
	// Reporting overrides single cadences of the stock reporting policy,
	// keyed by cadence name.
	Reporting map[string]channel.Profile `yaml:"reporting"`
}

func (c *Config) validate() error {
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}
	if c.UpdateInterval != "" {
		if _, err := time.ParseDuration(c.UpdateInterval); err != nil {
			return fmt.Errorf("update_interval: %w", err)
		}
	}
	for name := range c.Reporting {
		if _, ok := cadenceByName[name]; !ok {
			return fmt.Errorf("reporting: unknown cadence %q", name)
		}
	}
	return nil
}

func main() {
	// Temporary logger for config loading errors.
	bootLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		bootLogger.Error("load config", "err", err)
		os.Exit(1)
	}

	if err := cfg.validate(); err != nil {
		bootLogger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	// Create configured logger.
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("channel-hub starting", "version", version)

	// Build the channel registry. A registration conflict is a programming
	// error, so it aborts startup.
	registry := channel.NewRegistry()
	if err := channel.RegisterGeneral(registry); err != nil {
		logger.Error("register channels", "err", err)
		os.Exit(1)
	}
	logger.Info("channel registry initialized",
		"server", len(registry.Clusters(channel.KindServer)),
		"client", len(registry.Clusters(channel.KindClient)))

	// Open store
	db, err := store.NewBoltStore(cfg.Store.Path)
	if err != nil {
		logger.Error("open store", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create transport backend based on config
	backend, err := createTransport(cfg, logger)
	if err != nil {
		logger.Error("create transport", "err", err)
		os.Exit(1)
	}

	policy := reportingPolicy(cfg)

	signals := bus.New(logger)
	events := bus.New(logger)
	mgr := device.NewManager(backend, db, registry, signals, events, policy, logger)

	// Start transport; joined devices flow into the manager from here on.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := backend.Start(ctx); err != nil {
		logger.Error("start transport", "err", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	// Start web server
	var webServer *web.Server
	var httpServer *http.Server
	if cfg.Web.Enabled {
		var webOpts []web.ServerOption
		if cfg.Web.APIKey != "" {
			webOpts = append(webOpts, web.WithAPIKey(cfg.Web.APIKey))
		}
		if len(cfg.Web.AllowedOrigins) > 0 {
			webOpts = append(webOpts, web.WithAllowedOrigins(cfg.Web.AllowedOrigins))
		}
		webOpts = append(webOpts, web.WithVersion(version))

		webServer = web.NewServer(mgr, registry, signals, events, logger, webOpts...)
		httpServer = &http.Server{
			Addr:         cfg.Web.Listen,
			Handler:      webServer,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			logger.Info("web server starting", "addr", cfg.Web.Listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("http server", "err", err)
			}
		}()
	}

	// Start MQTT bridge (no-op when built with no_mqtt tag).
	mqtt := initMQTT(mgr, signals, events, cfg, logger)

	// Periodic refresh of mains-powered devices. The pass itself lives in
	// the manager; only the pacing lives here.
	updateDone := make(chan struct{})
	if interval := updateInterval(cfg, logger); interval > 0 {
		ticker := time.NewTicker(interval)
		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mgr.UpdateAll()
				case <-updateDone:
					return
				}
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	signal.Stop(sigCh)
	logger.Info("shutting down", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	close(updateDone)
	mqtt.Stop()
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown", "err", err)
		}
	}
	if webServer != nil {
		webServer.Stop()
	}
	mgr.Stop()
	if err := backend.Stop(); err != nil {
		logger.Error("stop transport", "err", err)
	}

	logger.Info("goodbye")
}

func createTransport(cfg *Config, logger *slog.Logger) (transport.Transport, error) {
	switch cfg.Transport.Type {
	case "sim", "":
		logger.Info("using simulated transport")
		return transport.NewSim(logger)
	default:
		return nil, fmt.Errorf("unknown transport type: %q (supported: sim)", cfg.Transport.Type)
	}
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Web.Listen == "" {
		cfg.Web.Listen = "127.0.0.1:8080"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "channel-hub.db"
	}
	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = "channel-hub"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	return &cfg, nil
}

func newLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

var cadenceByName = map[string]channel.Cadence{
	channel.CadenceImmediate.String():   channel.CadenceImmediate,
	channel.CadenceASAP.String():        channel.CadenceASAP,
	channel.CadenceFast.String():        channel.CadenceFast,
	channel.CadenceDefault.String():     channel.CadenceDefault,
	channel.CadenceBatterySave.String(): channel.CadenceBatterySave,
}

// reportingPolicy applies per-cadence config overrides to the stock policy.
// Unknown cadence names were rejected by validate.
func reportingPolicy(cfg *Config) channel.Policy {
	policy := channel.DefaultPolicy()
	for name, profile := range cfg.Reporting {
		policy[cadenceByName[name]] = profile
	}
	return policy
}

func updateInterval(cfg *Config, logger *slog.Logger) time.Duration {
	interval := time.Hour
	if cfg.UpdateInterval != "" {
		d, err := time.ParseDuration(cfg.UpdateInterval)
		if err != nil {
			logger.Warn("invalid update_interval, using default", "value", cfg.UpdateInterval, "default", interval)
			return interval
		}
		interval = d
	}
	return interval
}
