package walk

import (
	"fmt"
	"math"

	"github.com/alexkokkinos/walktime/internal/prefs"
	"github.com/alexkokkinos/walktime/internal/weather"
)

// Scoring constants. These are deliberate heuristics tuned for behavior
// parity with the walk recommendations users already know; do not adjust
// them without re-baselining the recorded scenarios in score_test.go.
const (
	// Fahrenheit temperature-deviation multipliers. Deviation beyond the
	// comfort band doubles the penalty; the band is asymmetric because
	// excess heat reads as less walkable than the same excess of cold.
	tempMultF        = 1.0
	tempMultExtremeF = 2.0
	coldBandF        = 20.0
	heatBandF        = 10.0

	// Celsius equivalents: base multiplier 1.8 keeps score magnitudes
	// comparable across unit systems (9/5 slope), bands are the Fahrenheit
	// bands converted by the same slope.
	tempMultC        = 1.8
	tempMultExtremeC = 3.6
	coldBandC        = 11.11
	heatBandC        = 5.55
)

// windPenaltyMult returns the wind multiplier for a given speed. The
// staircase is Beaufort-inspired: each band's lower bound is inclusive and
// stronger wind is disproportionately penalized.
func windPenaltyMult(windMph float64) float64 {
	switch {
	case windMph <= 10:
		return 0.25
	case windMph <= 20:
		return 0.5
	case windMph <= 25:
		return 1
	case windMph <= 30:
		return 2
	case windMph <= 33:
		return 5
	default:
		return 10
	}
}

// ScoreHour computes the walkability score for one forecast hour. The score
// starts at zero and only decreases, so all scores are <= 0 and the hour
// closest to zero is the most walkable.
func ScoreHour(hour weather.HourlyRecord, p prefs.UserPreferences) (float64, error) {
	var score float64

	// Rain and snow chances are summed as-is, even when both are set for
	// the same hour. The overlap is a known limitation of the heuristic,
	// not a probability model.
	score -= float64(hour.ChanceOfRain + hour.ChanceOfSnow)

	ideal := float64(p.IdealTemp)
	switch p.Units {
	case prefs.UnitsFahrenheit:
		feels := hour.FeelslikeF
		mult := tempMultF
		if feels < ideal-coldBandF || feels > ideal+heatBandF {
			mult = tempMultExtremeF
		}
		score -= math.Abs(mult * (ideal - feels))
	case prefs.UnitsCelsius:
		feels := hour.FeelslikeC
		mult := tempMultC
		if feels < ideal-coldBandC || feels > ideal+heatBandC {
			mult = tempMultExtremeC
		}
		score -= math.Abs(mult * (ideal - feels))
	default:
		return 0, fmt.Errorf("%w: unknown units %q", ErrInvalidPreference, p.Units)
	}

	score -= windPenaltyMult(hour.WindMph) * hour.WindMph

	return score, nil
}

// ScoreHours returns a copy of the given hours with WeatherScore attached.
// Input records are never mutated.
func ScoreHours(hours []weather.HourlyRecord, p prefs.UserPreferences) ([]weather.HourlyRecord, error) {
	scored := make([]weather.HourlyRecord, len(hours))
	for i, h := range hours {
		s, err := ScoreHour(h, p)
		if err != nil {
			return nil, err
		}
		h.WeatherScore = s
		scored[i] = h
	}
	return scored, nil
}

// BestWalk selects the hour with the maximum walkability score. Ties go to
// the earliest hour. An empty slice is the no-remaining-hours domain failure
// from the window selector, surfaced here so callers cannot silently operate
// on an empty day.
func BestWalk(remaining []weather.HourlyRecord, p prefs.UserPreferences) (weather.HourlyRecord, error) {
	if len(remaining) == 0 {
		return weather.HourlyRecord{}, ErrNoRemainingHours
	}

	scored, err := ScoreHours(remaining, p)
	if err != nil {
		return weather.HourlyRecord{}, err
	}

	best := scored[0]
	for _, h := range scored[1:] {
		if h.WeatherScore > best.WeatherScore {
			best = h
		}
	}
	return best, nil
}
