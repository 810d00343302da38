// Package entity defines the data structures exchanged between the web
// layer and its clients.
package entity

import "github.com/Bayrii/drivelog/database/model"

// Msg represents a standard API response with success status, message text,
// and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// PageMeta describes the window of a paginated list.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// ExperiencePage is the payload of a filtered list request: the page rows,
// their session-scoped codes, the window description and the filtered
// distance total.
type ExperiencePage struct {
	Items   []*model.DrivingExperience `json:"items"`
	Codes   map[int]string             `json:"codes"`
	Meta    PageMeta                   `json:"meta"`
	TotalKm float64                    `json:"totalKm"`
}

// DashboardStats carries the owner-scoped dashboard tile numbers.
type DashboardStats struct {
	TotalKm    float64 `json:"totalKm"`
	TotalTrips int64   `json:"totalTrips"`
	Locations  int64   `json:"locations"`
}

// CategoryStat is one aggregate row of a per-category breakdown.
type CategoryStat struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalKm float64 `json:"totalKm"`
}

// MonthlyStat is one aggregate row of the last-months breakdown.
type MonthlyStat struct {
	Month   string  `json:"month"`
	Trips   int64   `json:"trips"`
	TotalKm float64 `json:"totalKm"`
}

// Lookups bundles the six category tables for form rendering.
type Lookups struct {
	VehicleTypes      []model.VehicleType      `json:"vehicleTypes"`
	TimeOfDay         []model.TimeOfDay        `json:"timeOfDay"`
	Surfaces          []model.Surface          `json:"surfaces"`
	RoadDensities     []model.RoadDensity      `json:"roadDensities"`
	RoadTypes         []model.RoadType         `json:"roadTypes"`
	WeatherConditions []model.WeatherCondition `json:"weatherConditions"`
}
