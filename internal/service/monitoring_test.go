package service

import (
	"context"
	"testing"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
)

func TestMonitoringService_BaselineWhenEmpty(t *testing.T) {
	svc := NewMonitoringService(&fakeStateRepo{})

	st, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState(): %v", err)
	}
	if st.ID != 1 {
		t.Fatalf("ID = %d, want baseline 1", st.ID)
	}
	d := st.Device
	if d.Controller.IsOn || d.Generator.IsOn || d.Primary.IsOn || d.Redundant.IsOn {
		t.Fatalf("baseline must have everything off: %+v", d)
	}
	if d.Controller.Mode != icd.ModeNormal || d.Controller.TachyLimit != icd.DefaultTachyLimit {
		t.Fatalf("controller baseline = %+v", d.Controller)
	}
	if d.Primary.Rate != icd.RateBound.Lo || d.Redundant.Rate != icd.RateBound.Lo {
		t.Fatalf("monitor readings = %d/%d, want domain minimum", d.Primary.Rate, d.Redundant.Rate)
	}
	if d.Heart.Rate < 0 {
		t.Fatalf("baseline heart rate = %d, want non-negative", d.Heart.Rate)
	}
}

func TestMonitoringService_PassesThroughAndNormalizesUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	stored := models.DeviceState{
		ID:        1,
		TickCount: 9,
		UpdatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, loc),
	}
	stored.Device.Controller.Mode = icd.ModeFibrillation

	svc := NewMonitoringService(&fakeStateRepo{loadResp: stored})
	st, err := svc.GetState(context.Background())
	if err != nil {
		t.Fatalf("GetState(): %v", err)
	}
	if st.Device.Controller.Mode != icd.ModeFibrillation || st.TickCount != 9 {
		t.Fatalf("state = %+v", st)
	}
	if st.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not normalized to UTC: %v", st.UpdatedAt)
	}
}
