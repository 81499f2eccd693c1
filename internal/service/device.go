package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
	"icd_controller/internal/repository"

	"github.com/google/uuid"
)

// Event types written to the log.
const (
	EventOn         = "ON"
	EventOff        = "OFF"
	EventModeChange = "MODE_CHANGE"
	EventShock      = "SHOCK"
	EventError      = "ERROR"
	EventTelemetry  = "TELEMETRY"
)

// defaultInitialRate is the heart rate a fresh device starts at.
const defaultInitialRate = 60

var (
	errImpulseOutOfRange = fmt.Errorf("impulse outside [%d, %d] Joules", icd.ImpulseBound.Lo, icd.ImpulseBound.Hi)
	errLimitOutOfRange   = fmt.Errorf("tachycardia limit outside [%d, %d] BPM", icd.RateBound.Lo, icd.RateBound.Hi)
)

// DeviceService owns the in-memory device and serializes every operation
// and tick through one mutex, per the single-writer tick discipline. Each
// mutation snapshots the device to the state repo and appends events.
type DeviceService struct {
	mu        sync.Mutex
	dev       *icd.Device
	ticks     int64
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
}

func NewDeviceService(stateRepo repository.StateRepo, eventRepo repository.EventRepo) *DeviceService {
	return &DeviceService{
		dev:       icd.NewDevice(defaultInitialRate),
		stateRepo: stateRepo,
		eventRepo: eventRepo,
	}
}

// RestoreFromLast rehydrates the device from the last persisted snapshot,
// if one exists. Called once at startup.
func (s *DeviceService) RestoreFromLast(ctx context.Context) error {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}
	if st.ID == 0 {
		return nil // fresh database, keep defaults
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Restore(st.Device)
	s.ticks = st.TickCount
	return nil
}

// snapshotLocked persists the current device state. Callers hold s.mu.
func (s *DeviceService) snapshotLocked(ctx context.Context) error {
	return s.stateRepo.Save(ctx, models.DeviceState{
		ID:        1,
		Device:    s.dev.State(),
		TickCount: s.ticks,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *DeviceService) appendEvent(ctx context.Context, typ, desc string, meta any) error {
	return s.eventRepo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
}

// Activate is the composite On: rejected (silently, applied=false) unless
// the monitor pair and generator are already on, otherwise it resets the
// controller to its activation defaults.
func (s *DeviceService) Activate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.dev.On()
	if !applied {
		return false, nil
	}
	if err := s.appendEvent(ctx, EventOn, "controller activated", nil); err != nil {
		return true, err
	}
	return true, s.snapshotLocked(ctx)
}

// Deactivate is the composite Off: it only takes the controller down while
// the sensing/actuation chain is not fully up.
func (s *DeviceService) Deactivate(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.dev.Off()
	if !applied {
		return false, nil
	}
	if err := s.appendEvent(ctx, EventOff, "controller deactivated", nil); err != nil {
		return true, err
	}
	return true, s.snapshotLocked(ctx)
}

// SetTachyLimit validates the threshold at the boundary and hands it to the
// controller, which ignores it while off.
func (s *DeviceService) SetTachyLimit(ctx context.Context, limit int) (bool, error) {
	if err := icd.RateBound.Check(limit); err != nil {
		return false, errLimitOutOfRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.dev.Controller().IsOn()
	s.dev.Controller().SetTachyLimit(limit)
	if !applied {
		return false, nil
	}
	return true, s.snapshotLocked(ctx)
}

func (s *DeviceService) GeneratorOn(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Generator().On()
	return s.snapshotLocked(ctx)
}

func (s *DeviceService) GeneratorOff(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Generator().Off()
	return s.snapshotLocked(ctx)
}

// GeneratorSetImpulse validates the magnitude at the boundary; the
// generator itself silently rejects the command while off.
func (s *DeviceService) GeneratorSetImpulse(ctx context.Context, impulse int) (bool, error) {
	if err := icd.ImpulseBound.Check(impulse); err != nil {
		return false, errImpulseOutOfRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.dev.Generator().State().IsOn
	s.dev.Generator().SetImpulse(impulse)
	if !applied {
		return false, nil
	}
	return true, s.snapshotLocked(ctx)
}

func (s *DeviceService) GeneratorStatus() icd.GeneratorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Generator().State()
}

func (s *DeviceService) MonitorOn(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Monitors().On()
	return s.snapshotLocked(ctx)
}

func (s *DeviceService) MonitorOff(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dev.Monitors().Off()
	return s.snapshotLocked(ctx)
}

func (s *DeviceService) MonitorStatus() icd.MonitorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Monitors().Status()
}

// Tick advances the whole loop one discrete step and translates the report
// into log events: ERROR on a fail-safe shutdown, MODE_CHANGE on a mode
// transition, SHOCK on a commanded impulse.
func (s *DeviceService) Tick(ctx context.Context) (icd.TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := s.dev.Tick()
	s.ticks++

	if rep.FailSafe {
		_ = s.appendEvent(ctx, EventError, "fail-safe shutdown: reading implausible against trend", map[string]any{
			"rate": rep.Rate,
			"mode": rep.Mode.String(),
		})
	}
	if rep.Mode != rep.PrevMode {
		_ = s.appendEvent(ctx, EventModeChange, "mode changed to "+rep.Mode.String(), map[string]any{
			"from": rep.PrevMode.String(),
			"to":   rep.Mode.String(),
			"rate": rep.Rate,
		})
	}
	if rep.Shock > 0 {
		_ = s.appendEvent(ctx, EventShock, "impulse commanded", map[string]any{
			"joules": rep.Shock,
			"mode":   rep.Mode.String(),
		})
	}

	return rep, s.snapshotLocked(ctx)
}
