package icd

// restingClimb is the natural rate rise per tick while unstimulated.
const restingClimb = 20

// HeartState is an externally visible copy of the heart's fields.
type HeartState struct {
	Rate    int `json:"rate"`
	Impulse int `json:"impulse"`
}

// Heart is the simulated physiological target. It is deliberately not a
// cardiac model: the rate climbs by a fixed step while unstimulated and
// drops by the applied impulse otherwise.
type Heart struct {
	rate    int
	impulse int
}

// NewHeart starts the heart at the given rate, clamped into domain.
func NewHeart(rate int) *Heart {
	return &Heart{rate: RateBound.Clamp(rate)}
}

// Tick advances the heart one step.
func (h *Heart) Tick() {
	if h.impulse > 0 {
		h.rate = RateBound.Clamp(h.rate - h.impulse)
		return
	}
	h.rate = RateBound.Clamp(h.rate + restingClimb)
}

// Rate returns the current rate in BPM.
func (h *Heart) Rate() int { return h.rate }

// SetRate overrides the rate. Used by harnesses that feed recorded data
// instead of letting the simulated heart drift.
func (h *Heart) SetRate(r int) { h.rate = RateBound.Clamp(r) }

// State returns a copy of the heart's fields.
func (h *Heart) State() HeartState {
	return HeartState{Rate: h.rate, Impulse: h.impulse}
}

// Restore overwrites the heart from a snapshot, clamping into domain.
func (h *Heart) Restore(s HeartState) {
	h.rate = RateBound.Clamp(s.Rate)
	h.impulse = ImpulseBound.Clamp(s.Impulse)
}

// applyImpulse is written by the generator tick only.
func (h *Heart) applyImpulse(v int) { h.impulse = ImpulseBound.Clamp(v) }
