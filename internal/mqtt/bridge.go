//go:build !no_mqtt

// Package mqtt mirrors the in-process buses onto an MQTT broker. Every
// channel signal goes out under <prefix>/signal/<name> and every device
// event under <prefix>/event/<device id>, so external consumers see exactly
// what in-process subscribers see. The bridge is outbound only; it never
// feeds broker traffic back into the channel layer.
package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"zigbee-channels/internal/bus"
	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/device"
)

// Config holds MQTT bridge configuration.
type Config struct {
	Broker      string
	Username    string
	Password    string
	TopicPrefix string
}

// DeviceSource is the read-only slice of the device layer the bridge
// publishes from.
type DeviceSource interface {
	Devices() []device.DeviceView
}

// Bridge connects the signal and event buses to MQTT.
type Bridge struct {
	client  pahomqtt.Client
	devices DeviceSource
	signals *bus.Bus
	events  *bus.Bus
	prefix  string
	log     *slog.Logger

	mu     sync.Mutex
	unsubs []func()
}

// NewBridge creates and connects an MQTT bridge. The broker holds an
// offline will on <prefix>/bridge/state so consumers notice a dead hub.
func NewBridge(devices DeviceSource, signals, events *bus.Bus, cfg Config, logger *slog.Logger) (*Bridge, error) {
	b := &Bridge{
		devices: devices,
		signals: signals,
		events:  events,
		prefix:  cfg.TopicPrefix,
		log:     logger.With("component", "mqtt"),
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID("channel-hub").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(cfg.TopicPrefix+"/bridge/state", "offline", 1, true).
		SetOnConnectHandler(func(_ pahomqtt.Client) {
			b.log.Info("MQTT connected")
			b.publishBridgeState("online")
			b.publishDevices()
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			b.log.Warn("MQTT connection lost", "err", err)
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	b.client = client
	return b, nil
}

// Start subscribes to both buses and begins publishing.
func (b *Bridge) Start() {
	b.mu.Lock()
	b.unsubs = append(b.unsubs,
		b.signals.SubscribeAll(b.handleSignal),
		b.events.SubscribeAll(b.handleEvent),
	)
	b.mu.Unlock()
	b.log.Info("MQTT bridge started", "prefix", b.prefix)
}

// Stop publishes offline state, unsubscribes, and disconnects.
func (b *Bridge) Stop() {
	b.mu.Lock()
	unsubs := b.unsubs
	b.unsubs = nil
	b.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
	b.publishBridgeState("offline")
	b.client.Disconnect(1000)
	b.log.Info("MQTT bridge stopped")
}

// handleSignal republishes one bus signal verbatim. Signals are transient,
// so nothing is retained.
func (b *Bridge) handleSignal(sig bus.Signal) {
	b.publish(b.prefix+"/signal/"+sig.Name, mustJSON(sig), false)
}

// handleEvent republishes a device event under the device's own topic. Join
// and leave also refresh the retained fleet listing.
func (b *Bridge) handleEvent(sig bus.Signal) {
	if len(sig.Args) == 0 {
		return
	}
	ev, ok := sig.Args[0].(channel.Event)
	if !ok {
		return
	}
	payload := mustJSON(map[string]any{
		"device":     sig.Name,
		"channel":    ev.Channel,
		"cluster_id": ev.Cluster,
		"command":    ev.Command,
		"args":       ev.Args,
		"time":       sig.Time,
	})
	b.publish(b.prefix+"/event/"+sig.Name, payload, false)

	switch ev.Command {
	case "device_added", "device_left":
		b.publishDevices()
	}
}

func (b *Bridge) publishBridgeState(state string) {
	b.publish(b.prefix+"/bridge/state", []byte(state), true)
}

// publishDevices refreshes the retained fleet listing on
// <prefix>/bridge/devices.
func (b *Bridge) publishDevices() {
	b.publish(b.prefix+"/bridge/devices", mustJSON(b.devices.Devices()), true)
}

func (b *Bridge) publish(topic string, payload []byte, retained bool) {
	token := b.client.Publish(topic, 1, retained, payload)
	go func() {
		if !token.WaitTimeout(5 * time.Second) {
			b.log.Warn("MQTT publish timeout", "topic", topic)
		} else if err := token.Error(); err != nil {
			b.log.Warn("MQTT publish error", "topic", topic, "err", err)
		}
	}()
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return data
}
