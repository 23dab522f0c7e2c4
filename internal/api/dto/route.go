package dto

import "time"

type OptimizeRouteRequest struct {
	WorkerID string `json:"worker_id"`
}

type OperationResponse struct {
	Name             string `json:"name"`
	WeatherSensitive bool   `json:"weather_sensitive"`
}

type SequenceResponse struct {
	ID              string              `json:"id"`
	BuildingID      string              `json:"building_id"`
	ArrivalTime     time.Time           `json:"arrival_time"`
	DurationMinutes int                 `json:"duration_minutes"`
	IsFlexible      bool                `json:"is_flexible"`
	DependsOn       []string            `json:"depends_on,omitempty"`
	Operations      []OperationResponse `json:"operations,omitempty"`
}

type RouteResponse struct {
	ID        string             `json:"id"`
	WorkerID  string             `json:"worker_id"`
	Name      string             `json:"name"`
	DayOfWeek string             `json:"day_of_week"`
	Sequences []SequenceResponse `json:"sequences"`
}

type SequencesResponse struct {
	WorkerID  string             `json:"worker_id"`
	Sequences []SequenceResponse `json:"sequences"`
}
