//go:build no_mqtt

package main

import (
	"log/slog"

	"zigbee-channels/internal/bus"
	"zigbee-channels/internal/device"
)

type mqttStopper struct{}

func (m *mqttStopper) Stop() {}

func initMQTT(_ *device.Manager, _, _ *bus.Bus, _ *Config, _ *slog.Logger) *mqttStopper {
	return &mqttStopper{}
}
