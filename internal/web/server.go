// Package web serves the diagnostics surface: JSON endpoints for inspecting
// devices, pools, channel state and the registry, plus a WebSocket stream of
// every signal and device event. It reads manager state through a narrow
// interface and never calls into the radio side.
package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"zigbee-channels/internal/bus"
	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/device"
)

// ServerOption configures the web server.
type ServerOption func(*Server)

// WithAPIKey enables API key authentication.
func WithAPIKey(key string) ServerOption {
	return func(s *Server) {
		s.apiKey = key
	}
}

// WithAllowedOrigins sets allowed origin patterns for CORS and WebSocket
// upgrades.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithVersion sets the application version string reported by /api/version.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// DeviceSource is the read-only slice of the device manager the server
// needs.
type DeviceSource interface {
	Devices() []device.DeviceView
	Device(ieee string) (device.DeviceView, bool)
}

// Server is the diagnostics HTTP server.
type Server struct {
	devices        DeviceSource
	registry       *channel.Registry
	hub            *wsHub
	logger         *slog.Logger
	mux            *http.ServeMux
	apiKey         string
	allowedOrigins []string
	version        string
	wg             sync.WaitGroup
	unsubs         []func()
}

// NewServer builds the server and subscribes it to both buses. Every signal
// and device event is fanned out to connected WebSocket clients until Stop.
func NewServer(devices DeviceSource, registry *channel.Registry, signals, events *bus.Bus, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		devices:  devices,
		registry: registry,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.hub = newWSHub(logger)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.hub.run()
	}()

	s.unsubs = append(s.unsubs,
		signals.SubscribeAll(func(sig bus.Signal) {
			s.hub.broadcastFrame(wsFrame{Kind: "signal", Signal: sig})
		}),
		events.SubscribeAll(func(sig bus.Signal) {
			s.hub.broadcastFrame(wsFrame{Kind: "event", Signal: sig})
		}),
	)

	s.routes()
	return s
}

// Stop detaches the server from the buses and shuts down the WebSocket hub,
// waiting for its goroutine to finish.
func (s *Server) Stop() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.hub.stop()
	s.wg.Wait()
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/devices", s.handleListDevices)
	s.mux.HandleFunc("GET /api/devices/{ieee}", s.handleGetDevice)
	s.mux.HandleFunc("GET /api/registry", s.handleRegistry)
	s.mux.HandleFunc("GET /api/version", s.handleVersion)

	s.mux.HandleFunc("GET /ws", s.handleWS)
}

// ServeHTTP implements http.Handler, applying auth and CORS middleware.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// CORS: check Origin on mutating requests to prevent CSRF.
	if len(s.allowedOrigins) > 0 {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if r.Method == http.MethodOptions {
				// Preflight request.
				if s.isOriginAllowed(origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
					w.Header().Set("Access-Control-Max-Age", "3600")
					w.WriteHeader(http.StatusNoContent)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if r.Method != http.MethodGet {
				if !s.isOriginAllowed(origin) {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}
	}

	if s.apiKey != "" {
		// Only /api/ endpoints take the key. The WebSocket upgrade cannot
		// carry custom headers from a browser, so /ws stays open; the stream
		// is read-only. Clients that cannot set headers may pass ?api_key=.
		if strings.HasPrefix(r.URL.Path, "/api/") {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
	}
	s.mux.ServeHTTP(w, r)
}

// isOriginAllowed checks if the origin matches any allowed origin pattern.
func (s *Server) isOriginAllowed(origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
