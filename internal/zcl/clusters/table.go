package clusters

import (
	"sort"

	"zigbee-channels/internal/zcl"
)

var all = []*zcl.ClusterDef{
	&Basic,
	&PowerConfiguration,
	&DeviceTemperature,
	&Identify,
	&Groups,
	&Scenes,
	&OnOff,
	&OnOffConfiguration,
	&LevelControl,
	&Alarms,
	&Time,
	&RSSILocation,
	&AnalogInput,
	&AnalogOutput,
	&AnalogValue,
	&BinaryInput,
	&BinaryOutput,
	&BinaryValue,
	&MultistateInput,
	&MultistateOutput,
	&MultistateValue,
	&Commissioning,
	&Partition,
	&Ota,
	&PowerProfile,
	&ApplianceControl,
	&PollControl,
	&GreenPowerProxy,
	&DoorLock,
	&WindowCovering,
	&Thermostat,
	&FanControl,
	&ColorControl,
	&IlluminanceMeasurement,
	&TemperatureMeasurement,
	&PressureMeasurement,
	&RelativeHumidity,
	&OccupancySensing,
	&IasZone,
	&Metering,
	&ElectricalMeasurement,
	&Diagnostic,
	&TouchlinkCommissioning,
}

var byID = func() map[zcl.ClusterID]*zcl.ClusterDef {
	m := make(map[zcl.ClusterID]*zcl.ClusterDef, len(all))
	for _, def := range all {
		m[def.ID] = def
	}
	return m
}()

// Lookup returns the definition for a cluster id, or nil when the id is not
// in the catalog. The returned definition is shared and must not be mutated.
func Lookup(id zcl.ClusterID) *zcl.ClusterDef {
	return byID[id]
}

// All returns every catalog definition ordered by cluster id.
func All() []*zcl.ClusterDef {
	out := make([]*zcl.ClusterDef, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
