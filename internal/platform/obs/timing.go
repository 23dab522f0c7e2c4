package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// WithRequestID stamps a request id onto the context for downstream timing
// and log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Time measures one named operation. Use as:
//
//	defer obs.Time(ctx, "repo.FetchRoute")(&err)
//
// Failures log at error level with the propagated error attached.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start).Milliseconds()

		if errp != nil && *errp != nil {
			log.Error().Str("req_id", reqID).Str("op", name).
				Int64("dur_ms", dur).Err(*errp).Msg("operation failed")
			return
		}
		log.Debug().Str("req_id", reqID).Str("op", name).
			Int64("dur_ms", dur).Msg("operation done")
	}
}
