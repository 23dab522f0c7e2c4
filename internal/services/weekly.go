package services

import (
	"context"
	"duty-schedule-service/internal/domain"
	"time"
)

// WeekSchedule expands seven consecutive calendar dates from start,
// inclusive, without relevance filtering: the week view always shows
// everything. Each day is expanded independently; a day whose definition
// lookup fails is logged and skipped so the remaining days still render.
// Partial results beat aborting the whole request.
func (s *ScheduleService) WeekSchedule(ctx context.Context, workerID string, start time.Time) []domain.ScheduleInstance {
	week := make([]domain.ScheduleInstance, 0, 32)

	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day)

		instances, err := s.expandForDate(ctx, workerID, date)
		if err != nil {
			s.logger.Warn().Err(err).Str("worker_id", workerID).
				Str("date", date.Format("2006-01-02")).
				Msg("skipping day in week view")
			continue
		}
		week = append(week, instances...)
	}

	return week
}
