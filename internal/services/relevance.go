package services

import (
	"duty-schedule-service/internal/domain"
	"slices"
	"time"
)

const (
	// How far ahead an instance may start and still count as upcoming.
	upcomingWindow = 180 * time.Minute

	// Cap on the next-day preview shown once today's work is done.
	previewLimit = 5
)

// SelectRelevant returns the subset of today's instances worth showing at
// this moment: everything active or starting within the upcoming window,
// sorted by start time.
//
// When nothing qualifies, the full unfiltered list for the next calendar
// date is recomputed through nextDay and the first previewLimit entries are
// returned as an after-hours preview. If that lookup fails, today's list is
// returned untouched; an empty result reads as "no duties right now", never
// as a failure.
func SelectRelevant(
	today []domain.ScheduleInstance,
	now time.Time,
	nextDay func(date time.Time) ([]domain.ScheduleInstance, error),
) []domain.ScheduleInstance {
	relevant := make([]domain.ScheduleInstance, 0, len(today))
	for _, inst := range today {
		if instanceActive(inst, now) || instanceUpcoming(inst, now) {
			relevant = append(relevant, inst)
		}
	}

	if len(relevant) > 0 {
		sortInstancesByStart(relevant)
		return relevant
	}

	if nextDay == nil {
		return today
	}

	preview, err := nextDay(now.AddDate(0, 0, 1))
	if err != nil {
		return today
	}

	sortInstancesByStart(preview)
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}
	return preview
}

// An instance is active while now falls within [start, end].
func instanceActive(inst domain.ScheduleInstance, now time.Time) bool {
	return !now.Before(inst.Start) && !now.After(inst.End)
}

// An instance is upcoming when it starts after now but within the window.
func instanceUpcoming(inst domain.ScheduleInstance, now time.Time) bool {
	lead := inst.Start.Sub(now)
	return lead > 0 && lead <= upcomingWindow
}

func sortInstancesByStart(instances []domain.ScheduleInstance) {
	slices.SortFunc(instances, func(a, b domain.ScheduleInstance) int {
		return a.Start.Compare(b.Start)
	})
}
