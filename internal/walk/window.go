package walk

import "github.com/alexkokkinos/walktime/internal/weather"

// RemainingHours returns, in original order, every hour whose timestamp is at
// or after currentEpoch. currentEpoch must be the provider-reported local time
// for the queried location, not the caller's own clock. Records are not
// copied or mutated; filtering an already-filtered slice with the same epoch
// returns an equal slice.
func RemainingHours(hours []weather.HourlyRecord, currentEpoch int64) []weather.HourlyRecord {
	remaining := make([]weather.HourlyRecord, 0, len(hours))
	for _, h := range hours {
		if h.TimeEpoch >= currentEpoch {
			remaining = append(remaining, h)
		}
	}
	return remaining
}
