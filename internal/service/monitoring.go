package service

import (
	"context"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
	"icd_controller/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted device snapshot.
// If no state is persisted yet, returns the baseline initial state.
func (s *MonitoringService) GetState(ctx context.Context) (models.DeviceState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the documented initial persisted state: everything off,
// monitors at the domain minimum, controller at its defaults.
func (s *MonitoringService) baselineState() models.DeviceState {
	return models.DeviceState{
		ID:        1, // DB schema enforces single-row state with id=1
		Device:    icd.NewDevice(defaultInitialRate).State(),
		TickCount: 0,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
