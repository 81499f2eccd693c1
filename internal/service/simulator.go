package service

import (
	"context"
	"time"

	"icd_controller/internal/icd"
)

// ticker is the slice of the device service the simulator needs.
type ticker interface {
	Tick(ctx context.Context) (icd.TickReport, error)
}

// SimulatorService advances the device loop once per interval. All state
// lives in the device service; this is pure cadence.
type SimulatorService struct {
	device ticker
}

func NewSimulatorService(device ticker) *SimulatorService {
	return &SimulatorService{device: device}
}

// Run ticks at the given interval until ctx is canceled. Tick errors are
// persistence failures, not device failures; the loop keeps going.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.device.Tick(ctx)
		}
	}
}
