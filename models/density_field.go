package models

import "time"

// DayNames are the French day labels, indexed from Sunday.
var DayNames = [7]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

// DayName returns the label for day, or an empty string when out of range.
func DayName(day int) string {
	if day < 0 || day >= len(DayNames) {
		return ""
	}
	return DayNames[day]
}

// DensityQuery identifies one frame of the animated field.
type DensityQuery struct {
	Hour       int    `json:"hour" validate:"min=0,max=23"`
	Day        int    `json:"day" validate:"min=0,max=6"`
	Minute     int    `json:"minute" validate:"min=0,max=59"`
	Resolution string `json:"resolution"`
}

// DensityMetadata summarises a generated field.
type DensityMetadata struct {
	Hour              int       `json:"hour"`
	Minute            int       `json:"minute"`
	Day               int       `json:"day"`
	DayName           string    `json:"dayName"`
	Resolution        string    `json:"resolution"`
	TotalPoints       int       `json:"totalPoints"`
	AvgDensity        float64   `json:"avgDensity"`
	MaxDensity        float64   `json:"maxDensity"`
	MinDensity        float64   `json:"minDensity"`
	GeneratedAt       time.Time `json:"generatedAt"`
	ActualCacheMinute *int      `json:"actualCacheMinute,omitempty"`
}

// DensityField is the /density payload.
type DensityField struct {
	Points   []SamplePoint   `json:"points"`
	Metadata DensityMetadata `json:"metadata"`
}
