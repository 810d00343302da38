// Package model defines the persisted entities of the drivelog panel.
package model

import "time"

// User is an authenticated account. Password holds the bcrypt hash, never
// the raw credential.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password string `json:"-" gorm:"not null"`
}

// DrivingExperience is a single logged driving session. UserId is set from
// the authenticated session on insert and never updated afterwards.
type DrivingExperience struct {
	Id            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId        int       `json:"-" gorm:"index;not null"`
	Date          string    `json:"date" gorm:"not null"`
	StartTime     string    `json:"startTime" gorm:"not null"`
	EndTime       string    `json:"endTime" gorm:"not null"`
	DistanceKm    float64   `json:"distanceKm" gorm:"not null"`
	StartLocation string    `json:"startLocation"`
	EndLocation   string    `json:"endLocation"`
	VehicleTypeId int       `json:"vehicleTypeId" gorm:"not null"`
	TimeOfDayId   int       `json:"timeOfDayId" gorm:"not null"`
	WeatherId     int       `json:"weatherId" gorm:"not null"`
	RoadTypeId    int       `json:"roadTypeId" gorm:"not null"`
	SurfaceId     int       `json:"surfaceId" gorm:"not null"`
	RoadDensityId int       `json:"roadDensityId" gorm:"not null"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Lookup categories. Small fixed reference sets, seeded once and used for
// foreign-key validation and display.

type VehicleType struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

type TimeOfDay struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

func (TimeOfDay) TableName() string {
	return "time_of_day"
}

type Surface struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

type RoadDensity struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

type RoadType struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}

type WeatherCondition struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
}
