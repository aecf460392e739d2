package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

// ClusterConfig identifies one cluster instance on a device endpoint.
type ClusterConfig struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	// Client marks the cluster as sitting on the device's client side (an
	// output cluster).
	Client bool
}

// NewCluster returns a channel.Cluster that drives one cluster instance
// over t. Values cross the handle typed: read replies and reportable-change
// thresholds are decoded/encoded against the cluster's attribute
// definitions.
func NewCluster(t Transport, cfg ClusterConfig, log *slog.Logger) channel.Cluster {
	return &clusterHandle{
		tr:  t,
		cfg: cfg,
		def: clusters.Lookup(cfg.Cluster),
		log: log.With("ieee", cfg.IEEE, "ep", cfg.Endpoint, "cluster", cfg.Cluster),
	}
}

type clusterHandle struct {
	tr  Transport
	cfg ClusterConfig
	def *zcl.ClusterDef
	log *slog.Logger
}

func (c *clusterHandle) ID() zcl.ClusterID    { return c.cfg.Cluster }
func (c *clusterHandle) Def() *zcl.ClusterDef { return c.def }
func (c *clusterHandle) Endpoint() uint8      { return c.cfg.Endpoint }
func (c *clusterHandle) IsClient() bool       { return c.cfg.Client }

func (c *clusterHandle) Name() string {
	if c.def != nil {
		return c.def.Name
	}
	return c.cfg.Cluster.String()
}

func (c *clusterHandle) ReadAttributes(ctx context.Context, ids []zcl.AttributeID) (map[zcl.AttributeID]channel.AttributeRecord, error) {
	resps, err := c.tr.ReadAttributes(ctx, ReadRequest{
		IEEE:       c.cfg.IEEE,
		Endpoint:   c.cfg.Endpoint,
		Cluster:    c.cfg.Cluster,
		Attributes: ids,
	})
	if err != nil {
		return nil, err
	}
	records := make(map[zcl.AttributeID]channel.AttributeRecord, len(resps))
	for _, r := range resps {
		rec := channel.AttributeRecord{ID: r.ID, Status: r.Status}
		if r.Status == zcl.StatusSuccess {
			val, _, err := zcl.Decode(r.DataType, r.Value)
			if err != nil {
				c.log.Warn("dropping undecodable attribute", "attr", r.ID, "type", zcl.TypeName(r.DataType), "err", err)
				continue
			}
			rec.Value = val
		}
		records[r.ID] = rec
	}
	return records, nil
}

func (c *clusterHandle) WriteAttributes(ctx context.Context, values map[zcl.AttributeID]any) error {
	ids := make([]zcl.AttributeID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records := make([]WriteRecord, 0, len(ids))
	for _, id := range ids {
		attr := c.attribute(id)
		if attr == nil {
			return fmt.Errorf("write attribute %s on %s: no definition", id, c.Name())
		}
		data, err := zcl.Encode(attr.Type, values[id])
		if err != nil {
			return fmt.Errorf("write attribute %s on %s: %w", id, c.Name(), err)
		}
		records = append(records, WriteRecord{ID: id, DataType: attr.Type, Value: data})
	}
	return c.tr.WriteAttributes(ctx, WriteRequest{
		IEEE:     c.cfg.IEEE,
		Endpoint: c.cfg.Endpoint,
		Cluster:  c.cfg.Cluster,
		Records:  records,
	})
}

func (c *clusterHandle) ConfigureReporting(ctx context.Context, configs []channel.ReportingConfig) error {
	entries := make([]ReportingEntry, 0, len(configs))
	for _, rc := range configs {
		e := ReportingEntry{
			Attribute: rc.Attribute,
			DataType:  rc.DataType,
			Min:       rc.Min,
			Max:       rc.Max,
		}
		if zcl.Analog(rc.DataType) {
			change, err := zcl.Encode(rc.DataType, uint64(rc.Change))
			if err != nil {
				c.log.Warn("dropping reportable change", "attr", rc.Attribute, "err", err)
			} else {
				e.Change = change
			}
		}
		entries = append(entries, e)
	}
	return c.tr.ConfigureReporting(ctx, ReportingRequest{
		IEEE:     c.cfg.IEEE,
		Endpoint: c.cfg.Endpoint,
		Cluster:  c.cfg.Cluster,
		Entries:  entries,
	})
}

func (c *clusterHandle) Bind(ctx context.Context) error {
	return c.tr.Bind(ctx, BindRequest{
		IEEE:     c.cfg.IEEE,
		Endpoint: c.cfg.Endpoint,
		Cluster:  c.cfg.Cluster,
	})
}

func (c *clusterHandle) Command(ctx context.Context, req channel.CommandRequest) error {
	return c.tr.SendCommand(ctx, CommandRequest{
		IEEE:     c.cfg.IEEE,
		Endpoint: c.cfg.Endpoint,
		Cluster:  c.cfg.Cluster,
		Command:  req.ID,
		Payload:  req.Payload,
		TSN:      req.TSN,
	})
}

func (c *clusterHandle) attribute(id zcl.AttributeID) *zcl.AttributeDef {
	if c.def == nil {
		return nil
	}
	return c.def.Attribute(id)
}
