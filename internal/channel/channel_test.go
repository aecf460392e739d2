package channel

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

// fakeCluster implements Cluster against an in-memory attribute table and
// records all traffic.
type fakeCluster struct {
	id       zcl.ClusterID
	def      *zcl.ClusterDef
	client   bool
	endpoint uint8

	mu        sync.Mutex
	attrs     map[zcl.AttributeID]any
	reads     int
	readIDs   [][]zcl.AttributeID
	writes    []map[zcl.AttributeID]any
	reporting [][]ReportingConfig
	binds     int
	commands  []CommandRequest
	readErr   error
	writeErr  error
	bindErr   error
	configErr error
}

func newFakeCluster(def *zcl.ClusterDef) *fakeCluster {
	return &fakeCluster{
		id:       def.ID,
		def:      def,
		endpoint: 1,
		attrs:    make(map[zcl.AttributeID]any),
	}
}

func (f *fakeCluster) ID() zcl.ClusterID    { return f.id }
func (f *fakeCluster) Def() *zcl.ClusterDef { return f.def }
func (f *fakeCluster) Endpoint() uint8      { return f.endpoint }
func (f *fakeCluster) IsClient() bool       { return f.client }

func (f *fakeCluster) Name() string {
	if f.def != nil {
		return f.def.Name
	}
	return f.id.String()
}

func (f *fakeCluster) ReadAttributes(ctx context.Context, ids []zcl.AttributeID) (map[zcl.AttributeID]AttributeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	f.readIDs = append(f.readIDs, append([]zcl.AttributeID(nil), ids...))
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make(map[zcl.AttributeID]AttributeRecord, len(ids))
	for _, id := range ids {
		if v, ok := f.attrs[id]; ok {
			out[id] = AttributeRecord{ID: id, Status: zcl.StatusSuccess, Value: v}
		} else {
			out[id] = AttributeRecord{ID: id, Status: zcl.StatusUnsupportedAttribute}
		}
	}
	return out, nil
}

func (f *fakeCluster) WriteAttributes(ctx context.Context, values map[zcl.AttributeID]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	cp := make(map[zcl.AttributeID]any, len(values))
	for id, v := range values {
		cp[id] = v
	}
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeCluster) ConfigureReporting(ctx context.Context, configs []ReportingConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.configErr != nil {
		return f.configErr
	}
	f.reporting = append(f.reporting, append([]ReportingConfig(nil), configs...))
	return nil
}

func (f *fakeCluster) Bind(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bindErr != nil {
		return f.bindErr
	}
	f.binds++
	return nil
}

func (f *fakeCluster) Command(ctx context.Context, req CommandRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, req)
	return nil
}

func (f *fakeCluster) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeCluster) setAttr(id zcl.AttributeID, v any) {
	f.mu.Lock()
	f.attrs[id] = v
	f.mu.Unlock()
}

type recordedSignal struct {
	Name string
	Args []any
}

type storedAttr struct {
	Cluster zcl.ClusterID
	Attr    zcl.AttributeID
	Value   any
}

type fakeTimer struct {
	d        time.Duration
	fn       func()
	canceled bool
	fired    bool
}

// fakePool records everything channels push at it. Timers do not fire on
// their own; tests drive them through fireTimers.
type fakePool struct {
	uid    string
	mains  bool
	policy Policy
	log    *slog.Logger

	mu      sync.Mutex
	signals []recordedSignal
	events  []Event
	stored  []storedAttr
	timers  []*fakeTimer
	tasks   []string
}

func newFakePool() *fakePool {
	return &fakePool{
		uid:    "00:11:22:33:44:55:66:77-1",
		mains:  true,
		policy: DefaultPolicy(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (p *fakePool) UniqueID() string        { return p.uid }
func (p *fakePool) IsMainsPowered() bool    { return p.mains }
func (p *fakePool) ReportingPolicy() Policy { return p.policy }
func (p *fakePool) Logger() *slog.Logger    { return p.log }

func (p *fakePool) CallLater(d time.Duration, fn func()) func() {
	t := &fakeTimer{d: d, fn: fn}
	p.mu.Lock()
	p.timers = append(p.timers, t)
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		t.canceled = true
		p.mu.Unlock()
	}
}

// fireTimers runs every pending timer that was not canceled, returning how
// many fired.
func (p *fakePool) fireTimers() int {
	p.mu.Lock()
	pending := append([]*fakeTimer(nil), p.timers...)
	p.mu.Unlock()
	n := 0
	for _, t := range pending {
		p.mu.Lock()
		skip := t.canceled || t.fired
		if !skip {
			t.fired = true
		}
		p.mu.Unlock()
		if !skip {
			t.fn()
			n++
		}
	}
	return n
}

// Go runs tasks inline so tests stay deterministic.
func (p *fakePool) Go(name string, fn func(ctx context.Context)) {
	p.mu.Lock()
	p.tasks = append(p.tasks, name)
	p.mu.Unlock()
	fn(context.Background())
}

func (p *fakePool) SendSignal(name string, args ...any) {
	p.mu.Lock()
	p.signals = append(p.signals, recordedSignal{Name: name, Args: args})
	p.mu.Unlock()
}

func (p *fakePool) SendEvent(ev Event) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *fakePool) StoreAttribute(cluster zcl.ClusterID, attr zcl.AttributeID, value any) {
	p.mu.Lock()
	p.stored = append(p.stored, storedAttr{Cluster: cluster, Attr: attr, Value: value})
	p.mu.Unlock()
}

func (p *fakePool) allSignals() []recordedSignal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedSignal(nil), p.signals...)
}

func (p *fakePool) signalsNamed(name string) []recordedSignal {
	var out []recordedSignal
	for _, s := range p.allSignals() {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

func (p *fakePool) allEvents() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func TestUniqueID(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fp := newFakePool()
	ch := NewOnOff(fc, fp)

	want := "00:11:22:33:44:55:66:77-1:0x0006"
	if ch.UniqueID() != want {
		t.Fatalf("unique id = %q, want %q", ch.UniqueID(), want)
	}
	if ch.Name() != "on_off" {
		t.Fatalf("name = %q, want on_off", ch.Name())
	}
}

func TestConfigureSetsUpReporting(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fp := newFakePool()
	ch := NewOnOff(fc, fp)

	if err := ch.Configure(context.Background()); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if fc.binds != 1 {
		t.Fatalf("binds = %d, want 1", fc.binds)
	}
	if len(fc.reporting) != 1 {
		t.Fatalf("reporting batches = %d, want 1", len(fc.reporting))
	}
	want := []ReportingConfig{{
		Attribute: 0x0000,
		DataType:  zcl.TypeBool,
		Min:       0,
		Max:       900,
		Change:    1,
	}}
	if !reflect.DeepEqual(fc.reporting[0], want) {
		t.Fatalf("reporting = %+v, want %+v", fc.reporting[0], want)
	}
	if ch.Status() != StatusConfigured {
		t.Fatalf("status = %s, want configured", ch.Status())
	}
}

func TestConfigureBestEffort(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.bindErr = context.DeadlineExceeded
	fc.configErr = context.DeadlineExceeded
	fp := newFakePool()
	ch := NewOnOff(fc, fp)

	if err := ch.Configure(context.Background()); err != nil {
		t.Fatalf("configure should swallow transport failures, got %v", err)
	}
	if ch.Status() != StatusConfigured {
		t.Fatalf("status = %s, want configured", ch.Status())
	}
}

func TestConfigureIdempotent(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fp := newFakePool()
	ch := NewOnOff(fc, fp)

	ctx := context.Background()
	if err := ch.Configure(ctx); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := ch.Configure(ctx); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	if len(fc.reporting) != 2 {
		t.Fatalf("reporting batches = %d, want 2", len(fc.reporting))
	}
	if !reflect.DeepEqual(fc.reporting[0], fc.reporting[1]) {
		t.Fatalf("reconfigure changed the subscription: %+v vs %+v", fc.reporting[0], fc.reporting[1])
	}
}

func TestInitializeFromCacheDoesNoIO(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fp := newFakePool()
	ch := NewOnOff(fc, fp).(*OnOff)
	ch.Cache().Seed(map[zcl.AttributeID]any{attrOnOff: true})

	ctx := context.Background()
	if err := ch.Initialize(ctx, true); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if n := fc.readCount(); n != 0 {
		t.Fatalf("initialize from cache issued %d reads, want 0", n)
	}
	if v, ok := ch.Cache().Get(ctx, attrOnOff, true); !ok || v != true {
		t.Fatalf("cached get = %v, %v", v, ok)
	}
	if n := fc.readCount(); n != 0 {
		t.Fatalf("cached get issued %d reads, want 0", n)
	}
	if !ch.IsOn() {
		t.Fatal("state not restored from cache")
	}
	if ch.Status() != StatusReady {
		t.Fatalf("status = %s, want ready", ch.Status())
	}
}

func TestInitializeLiveRead(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.setAttr(attrOnOff, true)
	fp := newFakePool()
	ch := NewOnOff(fc, fp).(*OnOff)

	if err := ch.Initialize(context.Background(), false); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if n := fc.readCount(); n != 1 {
		t.Fatalf("reads = %d, want 1", n)
	}
	if !ch.IsOn() {
		t.Fatal("state not taken from live read")
	}
}

func TestUpdateCachePolicy(t *testing.T) {
	// Mains powered: update reads the device even with a cached value.
	fc := newFakeCluster(&clusters.OnOff)
	fc.setAttr(attrOnOff, true)
	fp := newFakePool()
	ch := NewOnOff(fc, fp).(*OnOff)
	ch.Cache().Seed(map[zcl.AttributeID]any{attrOnOff: false})

	if err := ch.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := fc.readCount(); n != 1 {
		t.Fatalf("mains update reads = %d, want 1", n)
	}
	if !ch.IsOn() {
		t.Fatal("mains update did not take the live value")
	}

	// Battery powered: the cached value is used, the radio stays quiet.
	fc2 := newFakeCluster(&clusters.OnOff)
	fc2.setAttr(attrOnOff, true)
	fp2 := newFakePool()
	fp2.mains = false
	ch2 := NewOnOff(fc2, fp2).(*OnOff)
	ch2.Cache().Seed(map[zcl.AttributeID]any{attrOnOff: false})

	if err := ch2.Update(context.Background()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := fc2.readCount(); n != 0 {
		t.Fatalf("battery update reads = %d, want 0", n)
	}
	if ch2.IsOn() {
		t.Fatal("battery update should keep the cached value")
	}
}

func TestGenericReportSignalsAndStores(t *testing.T) {
	fc := newFakeCluster(&clusters.BinaryInput)
	fp := newFakePool()
	ch := NewGeneric(ReportSpec{Attr: "present_value", Cadence: CadenceDefault})(fc, fp)

	ch.HandleAttributeReport(0x0055, true)

	name := ch.UniqueID() + "_" + SignalAttrUpdated
	got := fp.signalsNamed(name)
	if len(got) != 1 {
		t.Fatalf("signals named %q = %d, want 1", name, len(got))
	}
	wantArgs := []any{zcl.AttributeID(0x0055), "present_value", true}
	if !reflect.DeepEqual(got[0].Args, wantArgs) {
		t.Fatalf("signal args = %+v, want %+v", got[0].Args, wantArgs)
	}
	if v, ok := ch.Cache().Peek(0x0055); !ok || v != true {
		t.Fatalf("cache after report = %v, %v", v, ok)
	}
	fp.mu.Lock()
	stored := append([]storedAttr(nil), fp.stored...)
	fp.mu.Unlock()
	if len(stored) != 1 || stored[0].Cluster != clusters.BinaryInput.ID || stored[0].Attr != 0x0055 {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestGenericUnknownCommandIgnored(t *testing.T) {
	fc := newFakeCluster(&clusters.Alarms)
	fp := newFakePool()
	ch := NewGeneric()(fc, fp)

	ch.HandleCommand(1, 0x7E, []any{uint8(1)})

	if len(fp.allSignals()) != 0 {
		t.Fatalf("signals = %+v, want none", fp.allSignals())
	}
	if len(fp.allEvents()) != 0 {
		t.Fatalf("events = %+v, want none", fp.allEvents())
	}
}

func TestReportingConfigSkipsUnknownAttr(t *testing.T) {
	fc := newFakeCluster(&clusters.Alarms)
	fp := newFakePool()
	ch := NewGeneric(ReportSpec{Attr: "no_such_attribute", Cadence: CadenceDefault})(fc, fp)

	if err := ch.Configure(context.Background()); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if len(fc.reporting) != 0 {
		t.Fatalf("reporting batches = %d, want 0", len(fc.reporting))
	}
}

func TestPolicyFallback(t *testing.T) {
	p := Policy{CadenceDefault: {Min: 5, Max: 50, Change: 2}}
	if got := p.Profile(CadenceBatterySave); got != (Profile{Min: 5, Max: 50, Change: 2}) {
		t.Fatalf("fallback to default = %+v", got)
	}
	if got := (Policy{}).Profile(CadenceImmediate); got != (Profile{Min: 30, Max: 900, Change: 1}) {
		t.Fatalf("empty policy fallback = %+v", got)
	}
	def := DefaultPolicy()
	if got := def.Profile(CadenceBatterySave); got != (Profile{Min: 3600, Max: 10800, Change: 1}) {
		t.Fatalf("battery save profile = %+v", got)
	}
}

func TestCommandNameFallback(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fp := newFakePool()
	ch := NewOnOff(fc, fp).(*OnOff)

	if name := parseAndLogCommand(ch.base, 1, 0x77, nil); name != "0x77" {
		t.Fatalf("unknown command name = %q, want 0x77", name)
	}
	if name := parseAndLogCommand(ch.base, 1, 0x02, nil); name != "toggle" {
		t.Fatalf("command name = %q, want toggle", name)
	}
}
