package model

// ExperienceSubmission carries the client-supplied fields of a create or
// update request. The owning user is deliberately absent: it always comes
// from the session, so a conflicting value in the request body has nowhere
// to land.
type ExperienceSubmission struct {
	Date          string  `json:"date" form:"date"`
	StartTime     string  `json:"startTime" form:"startTime"`
	EndTime       string  `json:"endTime" form:"endTime"`
	DistanceKm    float64 `json:"distanceKm" form:"distanceKm"`
	StartLocation string  `json:"startLocation" form:"startLocation"`
	EndLocation   string  `json:"endLocation" form:"endLocation"`
	VehicleTypeId int     `json:"vehicleTypeId" form:"vehicleTypeId"`
	TimeOfDayId   int     `json:"timeOfDayId" form:"timeOfDayId"`
	WeatherId     int     `json:"weatherId" form:"weatherId"`
	RoadTypeId    int     `json:"roadTypeId" form:"roadTypeId"`
	SurfaceId     int     `json:"surfaceId" form:"surfaceId"`
	RoadDensityId int     `json:"roadDensityId" form:"roadDensityId"`
	Notes         string  `json:"notes" form:"notes"`
}

// ExperienceFilter holds the optional list criteria. Zero values mean the
// criterion is absent.
type ExperienceFilter struct {
	DateFrom      string `json:"dateFrom" form:"dateFrom"`
	DateTo        string `json:"dateTo" form:"dateTo"`
	VehicleTypeId int    `json:"vehicleTypeId" form:"vehicleTypeId"`
	WeatherId     int    `json:"weatherId" form:"weatherId"`
	RoadTypeId    int    `json:"roadTypeId" form:"roadTypeId"`
}
