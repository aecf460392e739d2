package channel

import "fmt"

// Cadence names how aggressively an attribute should be reported.
type Cadence uint8

const (
	// CadenceImmediate reports every change as it happens. Used for state
	// a user flips directly, like on/off.
	CadenceImmediate Cadence = iota
	// CadenceASAP reports continuously variable values, like dimmer level.
	CadenceASAP
	// CadenceFast reports discrete transitions with a tight max interval.
	CadenceFast
	// CadenceDefault suits generic sensors.
	CadenceDefault
	// CadenceBatterySave keeps the radio asleep as long as possible.
	CadenceBatterySave
)

func (c Cadence) String() string {
	switch c {
	case CadenceImmediate:
		return "immediate"
	case CadenceASAP:
		return "asap"
	case CadenceFast:
		return "fast"
	case CadenceDefault:
		return "default"
	case CadenceBatterySave:
		return "battery_save"
	default:
		return fmt.Sprintf("cadence(%d)", uint8(c))
	}
}

// Profile is one reporting triple: minimum and maximum report interval in
// seconds and the minimum reportable change in attribute units.
type Profile struct {
	Min    uint16 `yaml:"min" json:"min"`
	Max    uint16 `yaml:"max" json:"max"`
	Change uint32 `yaml:"change" json:"change"`
}

// Policy maps cadences to concrete reporting profiles. Pools hand one to
// their channels; deployments may override single cadences via config.
type Policy map[Cadence]Profile

// DefaultPolicy returns the stock cadence table.
func DefaultPolicy() Policy {
	return Policy{
		CadenceImmediate:   {Min: 0, Max: 900, Change: 1},
		CadenceASAP:        {Min: 1, Max: 900, Change: 1},
		CadenceFast:        {Min: 1, Max: 600, Change: 1},
		CadenceDefault:     {Min: 30, Max: 900, Change: 1},
		CadenceBatterySave: {Min: 3600, Max: 10800, Change: 1},
	}
}

// Profile resolves a cadence, falling back to the default cadence and then
// to a fixed moderate triple when the policy has no entry.
func (p Policy) Profile(c Cadence) Profile {
	if prof, ok := p[c]; ok {
		return prof
	}
	if prof, ok := p[CadenceDefault]; ok {
		return prof
	}
	return Profile{Min: 30, Max: 900, Change: 1}
}

// ReportSpec names one attribute a channel keeps reported, by attribute name.
type ReportSpec struct {
	Attr    string
	Cadence Cadence
}
