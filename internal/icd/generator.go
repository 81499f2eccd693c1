package icd

// GeneratorState is an externally visible copy of the generator's fields.
type GeneratorState struct {
	IsOn    bool `json:"is_on"`
	Impulse int  `json:"impulse"`
}

// Generator is the impulse actuator: an on/off flag plus the pending
// impulse magnitude in Joules.
type Generator struct {
	isOn    bool
	impulse int
}

// On enables the generator. The pending impulse is untouched.
func (g *Generator) On() { g.isOn = true }

// Off disables the generator. The pending impulse is untouched.
func (g *Generator) Off() { g.isOn = false }

// SetImpulse stages an impulse for delivery on the next tick. While the
// generator is off the call is a silent no-op, not an error.
func (g *Generator) SetImpulse(v int) {
	if !g.isOn {
		return
	}
	g.impulse = ImpulseBound.Clamp(v)
}

// State returns a copy of the generator's fields.
func (g *Generator) State() GeneratorState {
	return GeneratorState{IsOn: g.isOn, Impulse: g.impulse}
}

// Restore overwrites the generator from a snapshot.
func (g *Generator) Restore(s GeneratorState) {
	g.isOn = s.IsOn
	g.impulse = ImpulseBound.Clamp(s.Impulse)
}

// Tick couples the actuator to the heart: while on, the pending impulse
// becomes the heart's applied stimulation; while off, any residual
// stimulation is cleared.
func (g *Generator) Tick(h *Heart) {
	if g.isOn {
		h.applyImpulse(g.impulse)
		return
	}
	h.applyImpulse(0)
}
