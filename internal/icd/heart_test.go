package icd

import "testing"

func TestHeartTick_ClimbsWhileUnstimulated(t *testing.T) {
	h := NewHeart(70)
	h.Tick()
	if got := h.Rate(); got != 90 {
		t.Fatalf("rate = %d, want 90", got)
	}

	// Climb clamps at the domain ceiling.
	h.SetRate(295)
	h.Tick()
	if got := h.Rate(); got != 300 {
		t.Fatalf("rate = %d, want clamp at 300", got)
	}
}

func TestHeartTick_DropsByAppliedImpulse(t *testing.T) {
	h := NewHeart(100)
	h.applyImpulse(30)
	h.Tick()
	if got := h.Rate(); got != 70 {
		t.Fatalf("rate = %d, want 70", got)
	}
	// Impulse is left in place; the drop repeats.
	h.Tick()
	if got := h.Rate(); got != 40 {
		t.Fatalf("rate = %d, want 40", got)
	}

	// Drop clamps at the domain floor.
	h.SetRate(10)
	h.Tick()
	if got := h.Rate(); got != -1 {
		t.Fatalf("rate = %d, want clamp at -1", got)
	}
}

func TestHeartRestoreClampsIntoDomain(t *testing.T) {
	h := NewHeart(0)
	h.Restore(HeartState{Rate: 999, Impulse: 99})
	st := h.State()
	if st.Rate != 300 || st.Impulse != 45 {
		t.Fatalf("restore did not clamp: %+v", st)
	}
}
