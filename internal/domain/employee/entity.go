package employee

import (
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Position is the closed set of job positions that carry a pay rate.
type Position string

const (
	PositionIntern     Position = "intern"
	PositionStaff      Position = "staff"
	PositionSupervisor Position = "supervisor"
	PositionManager    Position = "manager"
)

// Positions lists every known position in pay order.
var Positions = []Position{PositionIntern, PositionStaff, PositionSupervisor, PositionManager}

func normalizePosition(s string) Position {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if p == "spv" {
		return PositionSupervisor
	}
	return p
}

// ParsePosition is case-insensitive and accepts the short form "spv".
func ParsePosition(s string) (Position, error) {
	p := normalizePosition(s)
	if !p.IsValid() {
		return "", ErrInvalidPosition
	}
	return p, nil
}

func (p Position) IsValid() bool {
	switch p {
	case PositionIntern, PositionStaff, PositionSupervisor, PositionManager:
		return true
	}
	return false
}

// UnmarshalText normalises stored spellings without rejecting unknown values,
// so an employee with an unrecognised position still loads and earns rate 0.
func (p *Position) UnmarshalText(text []byte) error {
	*p = normalizePosition(string(text))
	return nil
}

// Employee is the stored payload under an employee key.
type Employee struct {
	Password   string         `json:"password"`
	Position   Position       `json:"posisi"`
	Attendance attendance.Log `json:"absen"`
}

// NormalizeKey turns a typed name into the lookup key.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName renders a key for people.
// A Caser keeps state between calls, so each call gets its own.
func DisplayName(key string) string {
	return cases.Title(language.Indonesian).String(key)
}
