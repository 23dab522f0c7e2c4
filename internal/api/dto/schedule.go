package dto

import "time"

type ScheduleInstanceResponse struct {
	ID               string    `json:"id"`
	RoutineID        string    `json:"routine_id"`
	BuildingID       string    `json:"building_id"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Category         string    `json:"category"`
	WeatherDependent bool      `json:"weather_dependent"`
	RequiresPhoto    bool      `json:"requires_photo"`
}

type ScheduleResponse struct {
	WorkerID  string                     `json:"worker_id"`
	Date      string                     `json:"date"`
	Instances []ScheduleInstanceResponse `json:"instances"`
}

type WeekScheduleResponse struct {
	WorkerID  string                     `json:"worker_id"`
	StartDate string                     `json:"start_date"`
	Instances []ScheduleInstanceResponse `json:"instances"`
}
