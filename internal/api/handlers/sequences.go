package handlers

import (
	"duty-schedule-service/internal/api/dto"
	"duty-schedule-service/internal/domain"
	"duty-schedule-service/internal/services"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// SequenceHandler exposes the live "where should I be" route views.
type SequenceHandler struct {
	Service *services.ScheduleService
}

// Active returns the stops the worker should currently be at.
func (h *SequenceHandler) Active(w http.ResponseWriter, r *http.Request) {
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

	sequences, err := h.Service.ActiveSequences(r.Context(), workerID)
	if err != nil {
		log.Error().Err(err).Str("worker_id", workerID).Msg("active sequences query failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SequencesResponse{
		WorkerID:  workerID,
		Sequences: sequencesToDTO(sequences),
	})
}

// Upcoming returns the next stops starting within the lookahead window.
func (h *SequenceHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
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

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	sequences, err := h.Service.UpcomingSequences(r.Context(), workerID, limit)
	if err != nil {
		log.Error().Err(err).Str("worker_id", workerID).Msg("upcoming sequences query failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SequencesResponse{
		WorkerID:  workerID,
		Sequences: sequencesToDTO(sequences),
	})
}

func sequencesToDTO(sequences []domain.RouteSequence) []dto.SequenceResponse {
	out := make([]dto.SequenceResponse, 0, len(sequences))
	for _, seq := range sequences {
		ops := make([]dto.OperationResponse, 0, len(seq.Operations))
		for _, op := range seq.Operations {
			ops = append(ops, dto.OperationResponse{
				Name:             op.Name,
				WeatherSensitive: op.WeatherSensitive,
			})
		}

		out = append(out, dto.SequenceResponse{
			ID:              seq.ID,
			BuildingID:      seq.BuildingID,
			ArrivalTime:     seq.ArrivalTime,
			DurationMinutes: seq.DurationMinutes,
			IsFlexible:      seq.IsFlexible,
			DependsOn:       seq.DependsOn,
			Operations:      ops,
		})
	}
	return out
}
