package weather

import (
	"context"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/platform/obs"
	"duty-schedule-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const snapshotKey = "weather:snapshot"

// RedisWeatherCache decorates a WeatherProvider with a short-lived snapshot
// cache so bursts of route optimizations share one upstream fetch. Cache
// failures fall through to the wrapped provider: a Redis outage never
// fails a weather lookup on its own.
type RedisWeatherCache struct {
	client *redis.Client
	next   ports.WeatherProvider
	ttl    time.Duration
}

func NewRedisWeatherCache(client *redis.Client, next ports.WeatherProvider, ttl time.Duration) *RedisWeatherCache {
	return &RedisWeatherCache{client: client, next: next, ttl: ttl}
}

func (c *RedisWeatherCache) CurrentWeather(ctx context.Context) (_ *domain.WeatherSnapshot, err error) {
	defer obs.Time(ctx, "weather.cache.CurrentWeather")(&err)

	payload, getErr := c.client.Get(ctx, snapshotKey).Bytes()
	if getErr == nil {
		var snapshot domain.WeatherSnapshot
		if jsonErr := json.Unmarshal(payload, &snapshot); jsonErr == nil {
			return &snapshot, nil
		}
		// A corrupt entry falls through to a fresh fetch.
	} else if !errors.Is(getErr, redis.Nil) {
		log.Warn().Err(getErr).Msg("weather cache read failed")
	}

	snapshot, err := c.next.CurrentWeather(ctx)
	if err != nil {
		return nil, fmt.Errorf("weather cache: refresh snapshot: %w", err)
	}

	if payload, jsonErr := json.Marshal(snapshot); jsonErr == nil {
		if setErr := c.client.Set(ctx, snapshotKey, payload, c.ttl).Err(); setErr != nil {
			log.Warn().Err(setErr).Msg("weather cache write failed")
		}
	}

	return snapshot, nil
}
