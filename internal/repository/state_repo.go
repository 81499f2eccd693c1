package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"icd_controller/internal/icd"
	"icd_controller/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

// constants and helpers for clarity and reuse
const (
	deviceStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO icd_state (
			id, ctrl_on, mode, history, tachy_limit, on_tachy_cure,
			pulse_count, reset_interval, countdown,
			gen_on, gen_impulse, pri_on, pri_rate, red_on, red_rate,
			heart_rate, heart_impulse, tick_count, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ctrl_on=excluded.ctrl_on,
			mode=excluded.mode,
			history=excluded.history,
			tachy_limit=excluded.tachy_limit,
			on_tachy_cure=excluded.on_tachy_cure,
			pulse_count=excluded.pulse_count,
			reset_interval=excluded.reset_interval,
			countdown=excluded.countdown,
			gen_on=excluded.gen_on,
			gen_impulse=excluded.gen_impulse,
			pri_on=excluded.pri_on,
			pri_rate=excluded.pri_rate,
			red_on=excluded.red_on,
			red_rate=excluded.red_rate,
			heart_rate=excluded.heart_rate,
			heart_impulse=excluded.heart_impulse,
			tick_count=excluded.tick_count,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, ctrl_on, mode, history, tachy_limit, on_tachy_cure,
		       pulse_count, reset_interval, countdown,
		       gen_on, gen_impulse, pri_on, pri_rate, red_on, red_rate,
		       heart_rate, heart_impulse, tick_count, updated_at
		FROM icd_state WHERE id=?
	`
)

// marshalHistory converts the fixed window to a JSON string column.
func marshalHistory(h [icd.HistoryLen]int) (string, error) {
	b, err := json.Marshal(h[:])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalHistory parses the JSON column back into the fixed window.
func unmarshalHistory(s string) ([icd.HistoryLen]int, error) {
	var out [icd.HistoryLen]int
	if s == "" {
		return out, nil
	}
	var vals []int
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return out, err
	}
	if len(vals) != icd.HistoryLen {
		return out, fmt.Errorf("history column holds %d samples, want %d", len(vals), icd.HistoryLen)
	}
	copy(out[:], vals)
	return out, nil
}

// Save updates or inserts the icd_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.DeviceState) error {
	historyJSON, err := marshalHistory(state.Device.Controller.History)
	if err != nil {
		return err
	}

	// ensure UpdatedAt is always persisted as UTC; set if zero
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	d := state.Device
	_, err = r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		deviceStateRowID,
		d.Controller.IsOn,
		d.Controller.Mode.String(),
		historyJSON,
		d.Controller.TachyLimit,
		d.Controller.OnTachyCure,
		d.Controller.PulseCount,
		d.Controller.ResetInterval,
		d.Controller.Countdown,
		d.Generator.IsOn,
		d.Generator.Impulse,
		d.Primary.IsOn,
		d.Primary.Rate,
		d.Redundant.IsOn,
		d.Redundant.Rate,
		d.Heart.Rate,
		d.Heart.Impulse,
		state.TickCount,
		tsUTC,
	)
	return err
}

// Load fetches the single icd_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.DeviceState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, deviceStateRowID)

	var (
		s           models.DeviceState
		modeStr     string
		historyJSON string
	)
	if err := row.Scan(
		&s.ID,
		&s.Device.Controller.IsOn,
		&modeStr,
		&historyJSON,
		&s.Device.Controller.TachyLimit,
		&s.Device.Controller.OnTachyCure,
		&s.Device.Controller.PulseCount,
		&s.Device.Controller.ResetInterval,
		&s.Device.Controller.Countdown,
		&s.Device.Generator.IsOn,
		&s.Device.Generator.Impulse,
		&s.Device.Primary.IsOn,
		&s.Device.Primary.Rate,
		&s.Device.Redundant.IsOn,
		&s.Device.Redundant.Rate,
		&s.Device.Heart.Rate,
		&s.Device.Heart.Impulse,
		&s.TickCount,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceState{}, nil // no state yet
		}
		return models.DeviceState{}, err
	}

	mode, err := icd.ParseMode(modeStr)
	if err != nil {
		return models.DeviceState{}, err
	}
	s.Device.Controller.Mode = mode

	history, err := unmarshalHistory(historyJSON)
	if err != nil {
		return models.DeviceState{}, err
	}
	s.Device.Controller.History = history
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
