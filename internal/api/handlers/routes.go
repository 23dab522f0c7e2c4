package handlers

import (
	"duty-schedule-service/internal/api/dto"
	"duty-schedule-service/internal/services"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// RouteHandler exposes weather-aware route optimization.
type RouteHandler struct {
	Service *services.ScheduleService
}

// Optimize reorders today's route for the worker around dependencies and
// current weather. A worker without a route today gets a 404; a weather
// outage still returns the stored order.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	workerID := strings.TrimSpace(req.WorkerID)
	if workerID == "" {
		writeError(w, r, http.StatusBadRequest, "worker_id is required")
		return
	}

	route, err := h.Service.OptimizedRoute(r.Context(), workerID)
	if err != nil {
		log.Error().Err(err).Str("worker_id", workerID).Msg("route optimization failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if route == nil {
		writeError(w, r, http.StatusNotFound, "no route scheduled for today")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		ID:        route.ID,
		WorkerID:  route.WorkerID,
		Name:      route.Name,
		DayOfWeek: route.DayOfWeek.String(),
		Sequences: sequencesToDTO(route.Sequences),
	})
}
