package walk

import "errors"

var (
	// ErrUpstreamUnavailable wraps any failure of the weather provider call.
	// Not retried here; provider clients own their own retry policy.
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")

	// ErrNoRemainingHours means the forecast day has no hours at or after the
	// location's current local time. The provider only returns today's hours,
	// so there is nothing to score until the next day.
	ErrNoRemainingHours = errors.New("no hours left today for this location")

	// ErrInvalidPreference is returned when preference values cannot enter
	// the scoring path (unknown units, non-integer ideal temperature).
	ErrInvalidPreference = errors.New("invalid preference value")
)
