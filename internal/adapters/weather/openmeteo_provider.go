package weather

import (
	"context"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OpenMeteoProvider implements WeatherProvider against the Open-Meteo
// forecast API: current wind speed plus an hourly precipitation-probability
// forecast for a fixed site.
//
// The provider is safe for concurrent use.
type OpenMeteoProvider struct {
	session *http.Client
	baseURL string
	lat     float64
	lon     float64
}

func NewOpenMeteoProvider(lat, lon float64) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.open-meteo.com",
		lat:     lat,
		lon:     lon,
	}
}

type openMeteoResponse struct {
	Current struct {
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time                     []int64   `json:"time"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// CurrentWeather fetches a fresh snapshot. Wind is requested in mph to
// match the sequencer's threshold; hourly probabilities arrive as percents
// and are normalized to [0, 1].
func (p *OpenMeteoProvider) CurrentWeather(ctx context.Context) (_ *domain.WeatherSnapshot, err error) {
	defer obs.Time(ctx, "weather.openmeteo.CurrentWeather")(&err)

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", p.lat))
	query.Set("longitude", fmt.Sprintf("%.4f", p.lon))
	query.Set("current", "wind_speed_10m,weather_code")
	query.Set("hourly", "precipitation_probability")
	query.Set("forecast_hours", "12")
	query.Set("wind_speed_unit", "mph")
	query.Set("timeformat", "unixtime")

	endpoint := p.baseURL + "/v1/forecast?" + query.Encode()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("current weather: fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("current weather: decode forecast response: %w", err)
	}

	snapshot := &domain.WeatherSnapshot{
		WindSpeedMph: body.Current.WindSpeed,
		Condition:    conditionFromCode(body.Current.WeatherCode),
		FetchedAt:    time.Now(),
	}

	for i, ts := range body.Hourly.Time {
		if i >= len(body.Hourly.PrecipitationProbability) {
			break
		}
		snapshot.Hourly = append(snapshot.Hourly, domain.HourlyForecast{
			Time:                     time.Unix(ts, 0),
			PrecipitationProbability: body.Hourly.PrecipitationProbability[i] / 100,
		})
	}

	return snapshot, nil
}

// conditionFromCode collapses WMO weather codes into the coarse buckets
// the rest of the system cares about.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code <= 48:
		return "fog"
	case code <= 67, code >= 80 && code <= 82:
		return "rain"
	case code <= 77, code >= 85 && code <= 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
