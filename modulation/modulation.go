// Package modulation holds the hour-of-day and day-of-week multiplier curves
// applied to each point-of-interest category.
package modulation

import (
	"math"

	"ft-server/models"
)

const (
	// DefaultHourMultiplier is used when a category or hour has no curve entry.
	DefaultHourMultiplier = 0.5
	// DefaultDayMultiplier is used when a category or day has no curve entry.
	DefaultDayMultiplier = 1.0
)

// Table maps categories to their hour and day curves.
type Table struct {
	Hours map[models.Category][24]float64
	Days  map[models.Category][7]float64
}

// Has reports whether cat has both an hour and a day curve.
func (t Table) Has(cat models.Category) bool {
	_, h := t.Hours[cat]
	_, d := t.Days[cat]
	return h && d
}

// HourValue returns the raw curve entry for an integral hour.
func (t Table) HourValue(cat models.Category, hour int) float64 {
	curve, ok := t.Hours[cat]
	if !ok || hour < 0 || hour >= len(curve) {
		return DefaultHourMultiplier
	}
	return curve[hour]
}

// HourMultiplier interpolates between hour and the following hour (23 wraps to 0)
// with a smoothstep ease over minute/60. Fractional minutes are allowed.
func (t Table) HourMultiplier(cat models.Category, hour int, minute float64) float64 {
	if _, ok := t.Hours[cat]; !ok {
		return DefaultHourMultiplier
	}
	current := ((hour % 24) + 24) % 24
	next := (current + 1) % 24
	w := Smoothstep(minute / 60)
	return Lerp(t.HourValue(cat, current), t.HourValue(cat, next), w)
}

// DayMultiplier returns the curve entry for day, 0 being Sunday.
func (t Table) DayMultiplier(cat models.Category, day int) float64 {
	curve, ok := t.Days[cat]
	if !ok || day < 0 || day >= len(curve) {
		return DefaultDayMultiplier
	}
	return curve[day]
}

// Smoothstep eases t in [0,1] with zero slope at both ends. Input outside
// [0,1] is clamped on purpose, so callers may pass raw ratios.
func Smoothstep(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
