package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexkokkinos/walktime/internal/weather"
)

func hoursAt(epochs ...int64) []weather.HourlyRecord {
	hours := make([]weather.HourlyRecord, len(epochs))
	for i, e := range epochs {
		hours[i] = weather.HourlyRecord{TimeEpoch: e}
	}
	return hours
}

func TestRemainingHoursKeepsCurrentAndLaterHours(t *testing.T) {
	all := hoursAt(100, 200, 300, 400)

	got := RemainingHours(all, 300)

	// The boundary hour itself is kept: time_epoch >= current_epoch.
	assert.Equal(t, hoursAt(300, 400), got)
}

func TestRemainingHoursPreservesOrder(t *testing.T) {
	all := hoursAt(100, 200, 300, 400)

	got := RemainingHours(all, 0)
	assert.Equal(t, all, got)
}

func TestRemainingHoursIsIdempotent(t *testing.T) {
	all := hoursAt(100, 200, 300, 400)

	once := RemainingHours(all, 250)
	twice := RemainingHours(once, 250)
	assert.Equal(t, once, twice)
}

func TestRemainingHoursEmptyWhenDayIsOver(t *testing.T) {
	all := hoursAt(100, 200, 300)

	got := RemainingHours(all, 301)
	assert.Empty(t, got)
}

func TestRemainingHoursEmptyInput(t *testing.T) {
	assert.Empty(t, RemainingHours(nil, 0))
}
