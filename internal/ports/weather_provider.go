package ports

import (
	"context"
	"duty-schedule-service/internal/domain"
)

// Contract for retrieving the current weather snapshot used to reorder
// weather-sensitive work.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context) (*domain.WeatherSnapshot, error)
}
