package channel

import (
	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

// NewGeneric returns a factory for a plain channel with the given report
// specs: it caches, reports and signals attribute changes but has no
// command behavior of its own.
func NewGeneric(specs ...ReportSpec) Factory {
	return func(cluster Cluster, pool Pool) Channel {
		return newBase(cluster, pool, specs...)
	}
}

// RegisterGeneral installs the channels for the general functional domain:
// basic device identity, on/off and level switching, battery reporting,
// identify, OTA version tracking, poll control, and generic attribute
// watchers for the rest. It also files the capability tags the entity layer
// reads. Any error is a duplicate registration and means a programming
// error; callers abort on it.
func RegisterGeneral(r *Registry) error {
	presentValue := ReportSpec{Attr: "present_value", Cadence: CadenceDefault}

	server := []struct {
		id      zcl.ClusterID
		factory Factory
	}{
		{clusters.Basic.ID, NewBasic},
		{clusters.PowerConfiguration.ID, NewPowerConfiguration},
		{clusters.DeviceTemperature.ID, NewGeneric()},
		{clusters.Identify.ID, NewIdentify},
		{clusters.Groups.ID, NewGeneric()},
		{clusters.Scenes.ID, NewGeneric()},
		{clusters.OnOff.ID, NewOnOff},
		{clusters.OnOffConfiguration.ID, NewGeneric()},
		{clusters.LevelControl.ID, NewLevelControl},
		{clusters.Alarms.ID, NewGeneric()},
		{clusters.Time.ID, NewGeneric()},
		{clusters.RSSILocation.ID, NewGeneric()},
		{clusters.AnalogInput.ID, NewGeneric(presentValue)},
		{clusters.AnalogOutput.ID, NewGeneric(presentValue)},
		{clusters.AnalogValue.ID, NewGeneric(presentValue)},
		{clusters.BinaryInput.ID, NewGeneric(presentValue)},
		{clusters.BinaryOutput.ID, NewGeneric(presentValue)},
		{clusters.BinaryValue.ID, NewGeneric(presentValue)},
		{clusters.MultistateInput.ID, NewGeneric(presentValue)},
		{clusters.MultistateOutput.ID, NewGeneric(presentValue)},
		{clusters.MultistateValue.ID, NewGeneric(presentValue)},
		{clusters.Commissioning.ID, NewGeneric()},
		{clusters.Partition.ID, NewGeneric()},
		{clusters.Ota.ID, NewOta},
		{clusters.PowerProfile.ID, NewGeneric()},
		{clusters.ApplianceControl.ID, NewGeneric()},
		{clusters.PollControl.ID, NewPollControl},
		{clusters.GreenPowerProxy.ID, NewGeneric()},
	}
	for _, e := range server {
		if err := r.Register(KindServer, e.id, e.factory); err != nil {
			return err
		}
	}

	// Client-side channels: scene and switch traffic from remotes becomes
	// device events; OTA queries keep their own channel on both sides.
	for _, id := range []zcl.ClusterID{clusters.Scenes.ID, clusters.OnOff.ID, clusters.LevelControl.ID} {
		if err := r.Register(KindClient, id, NewClient); err != nil {
			return err
		}
	}
	if err := r.Register(KindClient, clusters.Ota.ID, NewOta); err != nil {
		return err
	}

	tags := []struct {
		kind Kind
		ids  []zcl.ClusterID
	}{
		{KindBindable, []zcl.ClusterID{clusters.OnOff.ID, clusters.LevelControl.ID}},
		{KindLight, []zcl.ClusterID{clusters.OnOff.ID, clusters.LevelControl.ID}},
		{KindSwitch, []zcl.ClusterID{clusters.OnOff.ID}},
		{KindBinarySensor, []zcl.ClusterID{clusters.OnOff.ID}},
		{KindDeviceTracker, []zcl.ClusterID{clusters.PowerConfiguration.ID}},
		{KindChannelOnly, []zcl.ClusterID{clusters.Basic.ID, clusters.PollControl.ID}},
	}
	for _, t := range tags {
		for _, id := range t.ids {
			if err := r.Tag(t.kind, id); err != nil {
				return err
			}
		}
	}
	return nil
}
