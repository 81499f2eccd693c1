package icd

import (
	"encoding/json"
	"fmt"
)

// Mode is the controller's clinical assessment of the rhythm.
type Mode int

const (
	ModeNormal Mode = iota
	ModeTachycardia
	ModeFibrillation
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeTachycardia:
		return "TACHYCARDIA"
	case ModeFibrillation:
		return "FIBRILLATION"
	default:
		return fmt.Sprintf("MODE(%d)", int(m))
	}
}

// MarshalJSON renders the mode as its string name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts the string names produced by MarshalJSON.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode maps a stored mode string back to its enum value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "NORMAL":
		return ModeNormal, nil
	case "TACHYCARDIA":
		return ModeTachycardia, nil
	case "FIBRILLATION":
		return ModeFibrillation, nil
	default:
		return ModeNormal, fmt.Errorf("unknown mode %q", s)
	}
}
