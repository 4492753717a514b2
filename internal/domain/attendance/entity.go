package attendance

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/orderedmap"
)

// Status is the stored daily attendance status.
type Status string

const (
	StatusPresent  Status = "hadir"
	StatusOvertime Status = "hadir+lembur"
	StatusLeave    Status = "izin"
)

const (
	MinOvertimeHours = 1
	MaxOvertimeHours = 24
)

// ParseStatus accepts the stored spellings plus the labels used by the input forms.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hadir", "present":
		return StatusPresent, nil
	case "hadir+lembur", "lembur", "overtime":
		return StatusOvertime, nil
	case "izin", "izin (sakit/cuti)", "sakit", "cuti", "leave":
		return StatusLeave, nil
	}
	return "", ErrInvalidStatus
}

// IsPresent reports whether the day counts as attended.
// Unknown stored statuses count as leave.
func (s Status) IsPresent() bool {
	return s == StatusPresent || s == StatusOvertime
}

// ParseOvertime converts free-form overtime input into whole hours.
func ParseOvertime(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	hours, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidOvertime
	}
	return hours, nil
}

// Record is one day of attendance.
type Record struct {
	Status   Status `json:"status"`
	Overtime int    `json:"overtime"`
}

// UnmarshalJSON tolerates overtime written as a numeric string.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status   Status          `json:"status"`
		Overtime json.RawMessage `json:"overtime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Status = raw.Status
	r.Overtime = 0

	ot := bytes.TrimSpace(raw.Overtime)
	if len(ot) == 0 || bytes.Equal(ot, []byte("null")) {
		return nil
	}
	if ot[0] == '"' {
		var s string
		if err := json.Unmarshal(ot, &s); err != nil {
			return err
		}
		hours, err := ParseOvertime(s)
		if err != nil {
			return err
		}
		r.Overtime = hours
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(ot, &n); err != nil {
		return ErrInvalidOvertime
	}
	hours, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return ErrInvalidOvertime
		}
		hours = int64(f)
	}
	r.Overtime = int(hours)
	return nil
}

// Log maps a date string to that day's record, in insertion order.
type Log = orderedmap.Map[Record]
