package prefs

import (
	"errors"
	"fmt"
	"strings"
)

// Units is the temperature unit system a user scores against.
type Units string

const (
	UnitsFahrenheit Units = "f"
	UnitsCelsius    Units = "c"
)

// Defaults applied to missing or blank preference fields.
const (
	DefaultLocation  = "90210"
	DefaultIdealTemp = 72
	DefaultUnits     = UnitsFahrenheit
)

// ErrInvalidRecord is returned when a stored or submitted record cannot be
// resolved into usable preferences.
var ErrInvalidRecord = errors.New("invalid preference record")

// UserPreferences is the fully resolved, validated preference set consumed
// by the scorer. It is derived fresh per request and never mutated.
type UserPreferences struct {
	Location  string `json:"location"`
	IdealTemp int    `json:"ideal_temp"`
	Units     Units  `json:"units"`
}

// Record is a user's preference row as stored: any field may be absent or
// blank, and units arrive in whatever case the client sent. The ideal
// temperature is an integer by the time it reaches this type; non-integer
// input is rejected at the API boundary, never coerced.
type Record struct {
	UserID    string `json:"user_id"`
	Location  string `json:"location"`
	IdealTemp *int   `json:"ideal_temp"` // nil means unset
	Units     string `json:"units"`      // "f" or "c", case-insensitive; blank means unset
}

// Resolve derives validated preferences from a possibly-partial record.
// Blank fields fall back to defaults; an unknown unit is rejected rather
// than silently defaulted.
func (r Record) Resolve() (UserPreferences, error) {
	p := UserPreferences{
		Location:  DefaultLocation,
		IdealTemp: DefaultIdealTemp,
		Units:     DefaultUnits,
	}

	if loc := strings.TrimSpace(r.Location); loc != "" {
		p.Location = loc
	}

	if r.IdealTemp != nil {
		p.IdealTemp = *r.IdealTemp
	}

	if u := strings.ToLower(strings.TrimSpace(r.Units)); u != "" {
		switch Units(u) {
		case UnitsFahrenheit, UnitsCelsius:
			p.Units = Units(u)
		default:
			return UserPreferences{}, fmt.Errorf(`%w: units must be "f" or "c", got %q`, ErrInvalidRecord, r.Units)
		}
	}

	return p, nil
}
