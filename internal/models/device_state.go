package models

import (
	"time"

	"icd_controller/internal/icd"
)

// DeviceState is the persisted snapshot of every device component, taken
// after each operation and tick.
type DeviceState struct {
	ID        int             `json:"id"`
	Device    icd.DeviceState `json:"device"`
	TickCount int64           `json:"tick_count"`
	UpdatedAt time.Time       `json:"updated_at"`
}
