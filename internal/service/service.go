package service

import (
	"context"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
	"icd_controller/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Device exposes the full operation surface of the implant: the composite
// activation pair, the per-component switches, the tachycardia threshold
// and the manual tick.
type Device interface {
	RestoreFromLast(ctx context.Context) error

	Activate(ctx context.Context) (bool, error)
	Deactivate(ctx context.Context) (bool, error)
	SetTachyLimit(ctx context.Context, limit int) (bool, error)

	GeneratorOn(ctx context.Context) error
	GeneratorOff(ctx context.Context) error
	GeneratorSetImpulse(ctx context.Context, impulse int) (bool, error)
	GeneratorStatus() icd.GeneratorState

	MonitorOn(ctx context.Context) error
	MonitorOff(ctx context.Context) error
	MonitorStatus() icd.MonitorState

	Tick(ctx context.Context) (icd.TickReport, error)
}

// Monitoring exposes the read-only persisted snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.DeviceState, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Simulator runs the background loop that advances the device one tick per
// interval. Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Device
	Monitoring
	EventLog
	Simulator
	Authorization
}

// NewService wires the repository layer into concrete services. The device
// service is shared with the simulator, which drives its Tick.
func NewService(repos *repository.Repository) *Service {
	dev := NewDeviceService(repos.StateRepo, repos.EventRepo)
	return &Service{
		Device:        dev,
		Monitoring:    NewMonitoringService(repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     NewSimulatorService(dev),
		Authorization: NewAuthService(repos.Auth),
	}
}
