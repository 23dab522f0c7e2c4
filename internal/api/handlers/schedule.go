package handlers

import (
	"duty-schedule-service/internal/api/dto"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/services"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ScheduleHandler exposes the day and week schedule query endpoints.
type ScheduleHandler struct {
	Service *services.ScheduleService
}

// Day returns a worker's duties for one date. By default the result is
// narrowed to what matters right now; all=1 returns the full expansion.
func (h *ScheduleHandler) Day(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	workerID := strings.TrimSpace(r.URL.Query().Get("worker_id"))
	if workerID == "" {
		writeError(w, r, http.StatusBadRequest, "worker_id is required")
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	skipFilter := r.URL.Query().Get("all") == "1"

	instances, err := h.Service.ScheduleForDate(r.Context(), workerID, date, skipFilter)
	if err != nil {
		log.Error().Err(err).Str("worker_id", workerID).Msg("schedule query failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{
		WorkerID:  workerID,
		Date:      date.Format("2006-01-02"),
		Instances: instancesToDTO(instances),
	})
}

// Week returns a worker's full, unfiltered duties for seven days from the
// start date (default today).
func (h *ScheduleHandler) Week(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	workerID := strings.TrimSpace(r.URL.Query().Get("worker_id"))
	if workerID == "" {
		writeError(w, r, http.StatusBadRequest, "worker_id is required")
		return
	}

	start := time.Now()
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		start = parsed
	}

	instances := h.Service.WeekSchedule(r.Context(), workerID, start)

	writeJSON(w, r, http.StatusOK, dto.WeekScheduleResponse{
		WorkerID:  workerID,
		StartDate: start.Format("2006-01-02"),
		Instances: instancesToDTO(instances),
	})
}

func instancesToDTO(instances []domain.ScheduleInstance) []dto.ScheduleInstanceResponse {
	out := make([]dto.ScheduleInstanceResponse, 0, len(instances))
	for _, inst := range instances {
		out = append(out, dto.ScheduleInstanceResponse{
			ID:               inst.ID,
			RoutineID:        inst.RoutineID,
			BuildingID:       inst.BuildingID,
			Start:            inst.Start,
			End:              inst.End,
			Category:         inst.Category,
			WeatherDependent: inst.WeatherDependent,
			RequiresPhoto:    inst.RequiresPhoto,
		})
	}
	return out
}
