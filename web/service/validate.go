package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Bayrii/drivelog/database/model"
)

const (
	minutesPerDay = 24 * 60

	// maxSessionMinutes caps a single driving session at 24 hours.
	maxSessionMinutes = minutesPerDay
)

// Time-of-day category ids, matching the seeded time_of_day rows.
const (
	TimeMorningRush = 1
	TimeLateMorning = 2
	TimeAfternoon   = 3
	TimeEveningRush = 4
	TimeNight       = 5
	TimeLateNight   = 6
)

// parseClock parses "HH:MM" (seconds tolerated and ignored) into minutes
// since midnight.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour*60 + minute, nil
}

// sessionDuration computes the driving time in minutes. An end before the
// start means the session crossed midnight, so a day is added.
func sessionDuration(startMinutes, endMinutes int) int {
	duration := endMinutes - startMinutes
	if duration < 0 {
		duration += minutesPerDay
	}
	return duration
}

// ClassifyTimeOfDay buckets an hour of the 24-hour clock into the fixed
// time-of-day categories. Used when a submission supplies a start time but
// no category.
func ClassifyTimeOfDay(hour int) int {
	switch {
	case hour >= 7 && hour < 9:
		return TimeMorningRush
	case hour >= 9 && hour < 12:
		return TimeLateMorning
	case hour >= 12 && hour < 17:
		return TimeAfternoon
	case hour >= 17 && hour < 19:
		return TimeEveningRush
	case hour >= 19 && hour < 23:
		return TimeNight
	default:
		return TimeLateNight
	}
}

// checkSubmission applies every field rule and returns the full list of
// violations. Foreign-key existence is checked separately because it needs
// the store.
func checkSubmission(sub *model.ExperienceSubmission) []string {
	var violations []string

	if sub.Date == "" {
		violations = append(violations, "experience date is required")
	}

	startMinutes, startErr := -1, error(nil)
	if sub.StartTime == "" {
		violations = append(violations, "start time is required")
	} else if startMinutes, startErr = parseClock(sub.StartTime); startErr != nil {
		violations = append(violations, "start time is invalid")
	}

	endMinutes, endErr := -1, error(nil)
	if sub.EndTime == "" {
		violations = append(violations, "end time is required")
	} else if endMinutes, endErr = parseClock(sub.EndTime); endErr != nil {
		violations = append(violations, "end time is invalid")
	}

	if startErr == nil && endErr == nil && startMinutes >= 0 && endMinutes >= 0 {
		if startMinutes == endMinutes {
			violations = append(violations, "end time must be different from start time")
		} else if sessionDuration(startMinutes, endMinutes) > maxSessionMinutes {
			violations = append(violations, "driving session cannot exceed 24 hours")
		}
	}

	if sub.DistanceKm <= 0 {
		violations = append(violations, "distance must be greater than 0")
	}

	categories := []struct {
		id   int
		name string
	}{
		{sub.VehicleTypeId, "vehicle type"},
		{sub.TimeOfDayId, "time of day"},
		{sub.WeatherId, "weather condition"},
		{sub.RoadTypeId, "road type"},
		{sub.SurfaceId, "road surface"},
		{sub.RoadDensityId, "traffic density"},
	}
	for _, cat := range categories {
		if cat.id <= 0 {
			violations = append(violations, cat.name+" is required")
		}
	}

	return violations
}
