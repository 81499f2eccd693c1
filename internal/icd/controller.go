package icd

// HistoryLen is the fixed size of the rate history window.
const HistoryLen = 5

// Decision constants of the controller.
const (
	DefaultTachyLimit = 110 // BPM threshold for tachycardia entry
	FullPulseBudget   = 9   // shock budget granted at activation

	rateMismatchMax    = 10 // fail-safe gap between trend average and a fresh reading
	deviationMax       = 5  // fibrillation threshold on the history statistic
	FibrillationJoules = 30 // fixed corrective impulse
	TachycardiaJoules  = 2  // fixed paced impulse
	intervalScale      = 600
	intervalFloor      = 15
)

// ControllerState is an externally visible copy of the controller's fields.
type ControllerState struct {
	IsOn          bool             `json:"is_on"`
	Mode          Mode             `json:"mode"`
	History       [HistoryLen]int  `json:"history"`
	TachyLimit    int              `json:"tachy_limit"`
	OnTachyCure   bool             `json:"on_tachy_cure"`
	PulseCount    int              `json:"pulse_count"`
	ResetInterval int              `json:"reset_interval"`
	Countdown     int              `json:"countdown"`
}

// TickReport records what one tick did, so callers can log and stream it
// without the core knowing about persistence.
type TickReport struct {
	Rate     int  // monitor reading consumed this tick
	PrevMode Mode // mode at tick start
	Mode     Mode // mode at tick end
	Idle     bool // controller did not step (chain or controller off)
	FailSafe bool // controller shut itself down on implausible input
	Shock    int  // Joules commanded to the generator this tick, 0 if none
	Rearmed  bool // countdown timer was reset to the pacing interval
}

// Controller is the ICD decision state machine: operating mode, rolling
// rate history, shock budget and inter-shock countdown.
type Controller struct {
	isOn          bool
	mode          Mode
	history       [HistoryLen]int // oldest first
	tachyLimit    int
	onTachyCure   bool
	pulseCount    int
	resetInterval int
	countdown     int
}

// NewController returns an inactive controller with defaults and a cold
// history window.
func NewController() *Controller {
	c := &Controller{tachyLimit: DefaultTachyLimit, pulseCount: FullPulseBudget}
	for i := range c.history {
		c.history[i] = RateBound.Lo
	}
	return c
}

// reset restores activation defaults. Called by the composite On.
func (c *Controller) reset() {
	c.mode = ModeNormal
	for i := range c.history {
		c.history[i] = RateBound.Lo
	}
	c.tachyLimit = DefaultTachyLimit
	c.onTachyCure = false
	c.pulseCount = FullPulseBudget
	c.resetInterval = 0
	c.countdown = 0
	c.isOn = true
}

// off suspends all transitions without resetting history.
func (c *Controller) off() { c.isOn = false }

// IsOn reports whether the controller is active.
func (c *Controller) IsOn() bool { return c.isOn }

// Mode returns the current operating mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetTachyLimit updates the tachycardia threshold. While the controller is
// off the call is a silent no-op.
func (c *Controller) SetTachyLimit(v int) {
	if !c.isOn {
		return
	}
	c.tachyLimit = RateBound.Clamp(v)
}

// State returns a copy of the controller's fields.
func (c *Controller) State() ControllerState {
	return ControllerState{
		IsOn:          c.isOn,
		Mode:          c.mode,
		History:       c.history,
		TachyLimit:    c.tachyLimit,
		OnTachyCure:   c.onTachyCure,
		PulseCount:    c.pulseCount,
		ResetInterval: c.resetInterval,
		Countdown:     c.countdown,
	}
}

// Restore overwrites the controller from a snapshot.
func (c *Controller) Restore(s ControllerState) {
	c.isOn = s.IsOn
	c.mode = s.Mode
	for i, v := range s.History {
		c.history[i] = RateBound.Clamp(v)
	}
	c.tachyLimit = RateBound.Clamp(s.TachyLimit)
	c.onTachyCure = s.OnTachyCure
	c.pulseCount = PulseBound.Clamp(s.PulseCount)
	c.resetInterval = s.ResetInterval
	c.countdown = s.Countdown
}

// average of the history window. Whole-BPM integer arithmetic.
func (c *Controller) average() int {
	sum := 0
	for _, v := range c.history {
		sum += v
	}
	return sum / HistoryLen
}

// deviation is defined identically to the average. Placeholder statistic;
// a real spread measure would change every fibrillation decision, so it
// stays the trend average for now.
func (c *Controller) deviation() int { return c.average() }

// push appends a reading, evicting the oldest sample. The window keeps its
// fixed length structurally.
func (c *Controller) push(r int) {
	copy(c.history[0:], c.history[1:])
	c.history[HistoryLen-1] = r
}

// Tick applies one controller step to the reading r, commanding g as needed.
// The caller guarantees controller, monitor pair and generator are all on.
// The decision blocks run in a fixed priority order; later blocks may
// overwrite what earlier ones commanded within the same atomic step.
func (c *Controller) Tick(r int, g *Generator) TickReport {
	rep := TickReport{Rate: r, PrevMode: c.mode, Mode: c.mode}

	// No residual stimulation while the assessment is healthy.
	if c.mode == ModeNormal {
		g.SetImpulse(0)
	}

	// A reading far off the recent trend is untrustworthy input: shut down
	// instead of acting on it. History and mode stay untouched.
	if abs(c.average()-r) > rateMismatchMax {
		c.isOn = false
		rep.FailSafe = true
		return rep
	}

	c.push(r)

	// Fibrillation: a deviating trend out of Normal, or an unresolved
	// tachycardia cure attempt. Commands the fixed corrective impulse.
	prior := rep.PrevMode
	if (prior == ModeNormal && c.deviation() > deviationMax) ||
		(prior == ModeTachycardia && c.onTachyCure) {
		c.mode = ModeFibrillation
		g.SetImpulse(FibrillationJoules)
		rep.Shock = FibrillationJoules
	}

	// Paced pulse on the countdown timer, or count the timer down; the two
	// branches are mutually exclusive. The budget gates both branches but is
	// never consumed.
	if c.countdown == 0 && c.pulseCount > 0 {
		c.countdown = c.resetInterval
		g.SetImpulse(TachycardiaJoules)
		rep.Shock = TachycardiaJoules
		rep.Rearmed = true
	} else if c.countdown > 0 && c.pulseCount > 0 {
		c.countdown--
	}

	// Tachycardia entry derives the pacing interval inversely from the
	// threshold. A non-positive threshold has no meaningful quotient and
	// contributes only the base interval.
	if r > c.tachyLimit && c.mode != ModeTachycardia {
		c.mode = ModeTachycardia
		interval := intervalFloor
		if c.tachyLimit > 0 {
			interval += intervalScale / c.tachyLimit
		}
		c.resetInterval = interval
	}

	rep.Mode = c.mode
	return rep
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
