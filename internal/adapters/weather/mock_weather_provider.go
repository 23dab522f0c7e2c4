package weather

import (
	"context"
	"duty-schedule-service/internal/domain"
)

// MockWeatherProvider returns a fixed snapshot or error. Test helper.
type MockWeatherProvider struct {
	Snapshot *domain.WeatherSnapshot
	Err      error
}

func (m *MockWeatherProvider) CurrentWeather(ctx context.Context) (*domain.WeatherSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snapshot, nil
}
