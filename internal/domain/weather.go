package domain

import "time"

// HourlyForecast is one forecast point. PrecipitationProbability is in the
// range [0, 1].
type HourlyForecast struct {
	Time                     time.Time `json:"time"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
}

// WeatherSnapshot is the current conditions plus an hourly forecast as
// supplied by the weather ingestion collaborator.
type WeatherSnapshot struct {
	WindSpeedMph float64          `json:"wind_speed_mph"`
	Condition    string           `json:"condition"`
	Hourly       []HourlyForecast `json:"hourly"`
	FetchedAt    time.Time        `json:"fetched_at"`
}

// MaxPrecipitationProbability returns the highest precipitation probability
// over the next n forecast hours. A nil snapshot or an empty forecast reads
// as zero: missing weather data is a valid state, not an error.
func (w *WeatherSnapshot) MaxPrecipitationProbability(hours int) float64 {
	if w == nil {
		return 0
	}

	max := 0.0
	for i, h := range w.Hourly {
		if i >= hours {
			break
		}
		if h.PrecipitationProbability > max {
			max = h.PrecipitationProbability
		}
	}
	return max
}
