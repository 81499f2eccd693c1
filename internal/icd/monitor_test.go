package icd

import "testing"

func TestMonitorPair_InitialState(t *testing.T) {
	p := NewMonitorPair()
	pri, red := p.Status(), p.RedundantStatus()
	if pri.IsOn || red.IsOn {
		t.Fatalf("expected both monitors off initially")
	}
	if pri.Rate != RateBound.Lo || red.Rate != RateBound.Lo {
		t.Fatalf("expected readings at domain minimum, got %d/%d", pri.Rate, red.Rate)
	}
}

func TestMonitorPair_OnOff(t *testing.T) {
	p := NewMonitorPair()
	p.On()
	if !p.Status().IsOn || !p.RedundantStatus().IsOn {
		t.Fatalf("expected both monitors on after On")
	}
	p.Off()
	if p.Status().IsOn || p.RedundantStatus().IsOn {
		t.Fatalf("expected both monitors off after Off")
	}
}

func TestMonitorPair_SampleWithBothOn(t *testing.T) {
	p := NewMonitorPair()
	p.On()
	p.Sample(120)
	pri, red := p.Status(), p.RedundantStatus()
	if pri.Rate != 120 || red.Rate != 120 {
		t.Fatalf("readings = %d/%d, want 120/120", pri.Rate, red.Rate)
	}
	// Both monitors observed the same value, so both stay enabled.
	if !pri.IsOn || !red.IsOn {
		t.Fatalf("expected both monitors to stay on after an agreeing sample")
	}
}

func TestMonitorPair_SampleWithOneOffResetsReadings(t *testing.T) {
	p := NewMonitorPair()
	p.Restore(MonitorState{IsOn: true, Rate: 90}, MonitorState{IsOn: false, Rate: 90})
	p.Sample(120)
	pri, red := p.Status(), p.RedundantStatus()
	if pri.Rate != RateBound.Lo || red.Rate != RateBound.Lo {
		t.Fatalf("readings = %d/%d, want both reset to %d", pri.Rate, red.Rate, RateBound.Lo)
	}
	// On flags are left as they were.
	if !pri.IsOn || red.IsOn {
		t.Fatalf("expected on flags unchanged, got primary=%v redundant=%v", pri.IsOn, red.IsOn)
	}
}

func TestMonitorPair_SampleClampsReading(t *testing.T) {
	p := NewMonitorPair()
	p.On()
	p.Sample(500)
	if got := p.Status().Rate; got != 300 {
		t.Fatalf("reading = %d, want clamp at 300", got)
	}
}
