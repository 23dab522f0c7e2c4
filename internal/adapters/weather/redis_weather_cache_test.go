package weather

import (
	"context"
	"duty-schedule-service/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider tracks upstream fetches behind the cache.
type countingProvider struct {
	snapshot *domain.WeatherSnapshot
	err      error
	calls    int
}

func (p *countingProvider) CurrentWeather(ctx context.Context) (*domain.WeatherSnapshot, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.snapshot, nil
}

func newCacheUnderTest(t *testing.T, upstream *countingProvider) *RedisWeatherCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisWeatherCache(client, upstream, 10*time.Minute)
}

func TestRedisWeatherCacheServesFromCache(t *testing.T) {
	upstream := &countingProvider{snapshot: &domain.WeatherSnapshot{
		WindSpeedMph: 12,
		Condition:    "rain",
		Hourly: []domain.HourlyForecast{
			{PrecipitationProbability: 0.7},
		},
	}}
	cache := newCacheUnderTest(t, upstream)
	ctx := context.Background()

	first, err := cache.CurrentWeather(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)

	second, err := cache.CurrentWeather(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls, "second lookup must hit the cache")

	assert.Equal(t, first.WindSpeedMph, second.WindSpeedMph)
	assert.Equal(t, first.Condition, second.Condition)
	require.Len(t, second.Hourly, 1)
	assert.InDelta(t, 0.7, second.Hourly[0].PrecipitationProbability, 1e-9)
}

func TestRedisWeatherCachePropagatesUpstreamError(t *testing.T) {
	upstream := &countingProvider{err: errors.New("provider down")}
	cache := newCacheUnderTest(t, upstream)

	_, err := cache.CurrentWeather(context.Background())
	require.Error(t, err)
}
