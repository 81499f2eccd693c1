package icd

// MonitorState is an externally visible copy of one monitor's fields.
type MonitorState struct {
	IsOn bool `json:"is_on"`
	Rate int  `json:"rate"`
}

// monitor is a single rate sensor.
type monitor struct {
	isOn bool
	rate int
}

// MonitorPair is the redundant sensor pair. Both monitors read the heart
// once per tick; disagreement between the two readings shuts the sensing
// chain down rather than letting the controller act on suspect input.
type MonitorPair struct {
	primary   monitor
	redundant monitor
}

// NewMonitorPair returns a pair with both monitors off and readings at the
// domain minimum.
func NewMonitorPair() *MonitorPair {
	return &MonitorPair{
		primary:   monitor{rate: RateBound.Lo},
		redundant: monitor{rate: RateBound.Lo},
	}
}

// On enables both monitors. Readings are unchanged.
func (p *MonitorPair) On() {
	p.primary.isOn = true
	p.redundant.isOn = true
}

// Off disables both monitors. The model only demands "not both on" after
// this call; turning both off is the deterministic resolution used here.
func (p *MonitorPair) Off() {
	p.primary.isOn = false
	p.redundant.isOn = false
}

// Sample reads the heart, once per tick. With both monitors up each monitor
// stays enabled only while the two fresh readings agree (the prior on-flag
// conjunct is vacuous in that branch, both flags being set). With either
// monitor already down, both readings reset to the domain minimum and the
// on flags are left alone.
func (p *MonitorPair) Sample(rate int) {
	if p.primary.isOn && p.redundant.isOn {
		p.primary.rate = RateBound.Clamp(rate)
		p.redundant.rate = RateBound.Clamp(rate)
		agree := p.primary.rate == p.redundant.rate
		p.primary.isOn = agree
		p.redundant.isOn = agree
		return
	}
	p.primary.rate = RateBound.Lo
	p.redundant.rate = RateBound.Lo
}

// Status returns the primary monitor's fields.
func (p *MonitorPair) Status() MonitorState {
	return MonitorState{IsOn: p.primary.isOn, Rate: p.primary.rate}
}

// RedundantStatus returns the redundant monitor's fields.
func (p *MonitorPair) RedundantStatus() MonitorState {
	return MonitorState{IsOn: p.redundant.isOn, Rate: p.redundant.rate}
}

// Restore overwrites both monitors from snapshots.
func (p *MonitorPair) Restore(primary, redundant MonitorState) {
	p.primary = monitor{isOn: primary.IsOn, rate: RateBound.Clamp(primary.Rate)}
	p.redundant = monitor{isOn: redundant.IsOn, rate: RateBound.Clamp(redundant.Rate)}
}
