package api

import (
	"duty-schedule-service/internal/api/handlers"
	"duty-schedule-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters behind the service).
func NewRouter(svc *services.ScheduleService) http.Handler {
	mux := http.NewServeMux()

	scheduleHandler := &handlers.ScheduleHandler{Service: svc}
	sequenceHandler := &handlers.SequenceHandler{Service: svc}
	routeHandler := &handlers.RouteHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/schedule", scheduleHandler.Day)
	mux.HandleFunc("/schedule/week", scheduleHandler.Week)
	mux.HandleFunc("/sequences/active", sequenceHandler.Active)
	mux.HandleFunc("/sequences/upcoming", sequenceHandler.Upcoming)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)

	return loggingMiddleware(mux)
}
