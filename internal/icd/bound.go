package icd

import "fmt"

// Bound is a closed integer interval [Lo, Hi].
type Bound struct {
	Lo int
	Hi int
}

// Physical domains of the device model.
var (
	RateBound    = Bound{Lo: -1, Hi: 300} // BPM
	ImpulseBound = Bound{Lo: 0, Hi: 45}   // Joules
	PulseBound   = Bound{Lo: 0, Hi: 9}    // remaining shock budget
)

// Clamp forces v into the interval. Total: never fails.
func (b Bound) Clamp(v int) int {
	if v < b.Lo {
		return b.Lo
	}
	if v > b.Hi {
		return b.Hi
	}
	return v
}

// Check validates v against the interval for use at API boundaries, where
// out-of-range input is rejected rather than silently clamped.
func (b Bound) Check(v int) error {
	if v < b.Lo || v > b.Hi {
		return fmt.Errorf("value %d outside [%d, %d]", v, b.Lo, b.Hi)
	}
	return nil
}

// Contains reports whether v already lies inside the interval.
func (b Bound) Contains(v int) bool {
	return v >= b.Lo && v <= b.Hi
}
