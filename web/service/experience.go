// Package service provides the business logic of the drivelog panel:
// credential checks, ownership-scoped record access, identifier
// anonymization and the list query composer.
package service

import (
	"strconv"

	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/database/model"
	"github.com/Bayrii/drivelog/web/entity"
	"github.com/Bayrii/drivelog/web/session"
)

// ExperienceService is the sole gateway to driving experience rows. Every
// read and mutation binds the owning user into the same statement that
// locates the row, so a record owned by someone else behaves exactly like
// a record that does not exist.
type ExperienceService struct {
	anonymizer    AnonymizerService
	lookupService LookupService
}

// ResolveTarget normalizes a record reference: a positive numeric string is
// used directly, anything else is treated as an anonymized code and looked
// up in the session's map.
func (s *ExperienceService) ResolveTarget(ref string, m *session.IDMap) (int, error) {
	if ref == "" {
		return 0, ErrInvalidReference
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if id <= 0 {
			return 0, ErrInvalidReference
		}
		return id, nil
	}
	return s.anonymizer.Resolve(m, ref)
}

// AnonymizeId mints (or re-issues) the session-scoped code for an
// experience id.
func (s *ExperienceService) AnonymizeId(m *session.IDMap, id int) string {
	return s.anonymizer.Anonymize(m, id, PrefixExperience)
}

// validate collects every violated rule, including foreign keys that point
// at no lookup row.
func (s *ExperienceService) validate(sub *model.ExperienceSubmission) error {
	violations := checkSubmission(sub)

	categories := []struct {
		id    int
		m     any
		label string
	}{
		{sub.VehicleTypeId, &model.VehicleType{}, "vehicle type"},
		{sub.TimeOfDayId, &model.TimeOfDay{}, "time of day"},
		{sub.WeatherId, &model.WeatherCondition{}, "weather condition"},
		{sub.RoadTypeId, &model.RoadType{}, "road type"},
		{sub.SurfaceId, &model.Surface{}, "road surface"},
		{sub.RoadDensityId, &model.RoadDensity{}, "traffic density"},
	}
	for _, cat := range categories {
		if cat.id <= 0 {
			continue
		}
		ok, err := s.lookupService.exists(cat.m, cat.id)
		if err != nil {
			return storeFailure("check "+cat.label, err)
		}
		if !ok {
			violations = append(violations, cat.label+" does not exist")
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// applyDefaults fills the time-of-day category from the start time when the
// submission leaves it unset. A supplied category always wins.
func (s *ExperienceService) applyDefaults(sub *model.ExperienceSubmission) {
	if sub.TimeOfDayId != 0 {
		return
	}
	if minutes, err := parseClock(sub.StartTime); err == nil {
		sub.TimeOfDayId = ClassifyTimeOfDay(minutes / 60)
	}
}

// Create validates the submission and inserts it for ownerId. The owner
// always comes from the authenticated session; the submission has no owner
// field to override it with.
func (s *ExperienceService) Create(ownerId int, sub *model.ExperienceSubmission) (int, error) {
	s.applyDefaults(sub)
	if err := s.validate(sub); err != nil {
		return 0, err
	}

	record := &model.DrivingExperience{
		UserId:        ownerId,
		Date:          sub.Date,
		StartTime:     sub.StartTime,
		EndTime:       sub.EndTime,
		DistanceKm:    sub.DistanceKm,
		StartLocation: sub.StartLocation,
		EndLocation:   sub.EndLocation,
		VehicleTypeId: sub.VehicleTypeId,
		TimeOfDayId:   sub.TimeOfDayId,
		WeatherId:     sub.WeatherId,
		RoadTypeId:    sub.RoadTypeId,
		SurfaceId:     sub.SurfaceId,
		RoadDensityId: sub.RoadDensityId,
		Notes:         sub.Notes,
	}

	db := database.GetDB()
	if err := db.Create(record).Error; err != nil {
		return 0, storeFailure("create experience", err)
	}
	return record.Id, nil
}

// Get fetches one record by id and owner in a single predicate.
func (s *ExperienceService) Get(ownerId int, id int) (*model.DrivingExperience, error) {
	db := database.GetDB()

	record := &model.DrivingExperience{}
	err := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId)).
		Where("id = ?", id).
		First(record).
		Error
	if database.IsNotFound(err) {
		return nil, ErrExperienceNotFound
	} else if err != nil {
		return nil, storeFailure("get experience", err)
	}
	return record, nil
}

// Update re-validates and mutates in one combined-predicate statement. Zero
// affected rows is reported as not found, whether the record is absent or
// owned by someone else. The owner column is never part of the update.
func (s *ExperienceService) Update(ownerId int, id int, sub *model.ExperienceSubmission) error {
	s.applyDefaults(sub)
	if err := s.validate(sub); err != nil {
		return err
	}

	db := database.GetDB()
	result := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId)).
		Where("id = ?", id).
		Updates(map[string]any{
			"date":            sub.Date,
			"start_time":      sub.StartTime,
			"end_time":        sub.EndTime,
			"distance_km":     sub.DistanceKm,
			"start_location":  sub.StartLocation,
			"end_location":    sub.EndLocation,
			"vehicle_type_id": sub.VehicleTypeId,
			"time_of_day_id":  sub.TimeOfDayId,
			"weather_id":      sub.WeatherId,
			"road_type_id":    sub.RoadTypeId,
			"surface_id":      sub.SurfaceId,
			"road_density_id": sub.RoadDensityId,
			"notes":           sub.Notes,
		})
	if result.Error != nil {
		return storeFailure("update experience", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

// Delete removes a record with the same combined predicate. Immediate and
// unconditional; there is no soft delete.
func (s *ExperienceService) Delete(ownerId int, id int) error {
	db := database.GetDB()
	result := db.
		Scopes(ownedScope(ownerId)).
		Where("id = ?", id).
		Delete(&model.DrivingExperience{})
	if result.Error != nil {
		return storeFailure("delete experience", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExperienceNotFound
	}
	return nil
}

// List returns one page of the owner's records under the optional filter,
// with the window description and the filtered distance total. The count
// is computed independently of the page window.
func (s *ExperienceService) List(ownerId int, f *model.ExperienceFilter, page int) (*entity.ExperiencePage, error) {
	db := database.GetDB()

	var total int64
	err := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId), filterScope(f)).
		Count(&total).
		Error
	if err != nil {
		return nil, storeFailure("count experiences", err)
	}

	var totalKm float64
	err = db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId), filterScope(f)).
		Select("COALESCE(SUM(distance_km), 0)").
		Scan(&totalKm).
		Error
	if err != nil {
		return nil, storeFailure("sum experience distance", err)
	}

	var items []*model.DrivingExperience
	err = db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId), filterScope(f), recentFirst, pageWindow(page)).
		Find(&items).
		Error
	if err != nil {
		return nil, storeFailure("list experiences", err)
	}

	return &entity.ExperiencePage{
		Items:   items,
		Meta:    newPageMeta(page, total),
		TotalKm: totalKm,
	}, nil
}

// Recent returns the owner's newest records for the dashboard excerpt.
func (s *ExperienceService) Recent(ownerId int, n int) ([]*model.DrivingExperience, error) {
	db := database.GetDB()

	var items []*model.DrivingExperience
	err := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId), recentFirst).
		Limit(n).
		Find(&items).
		Error
	if err != nil {
		return nil, storeFailure("recent experiences", err)
	}
	return items, nil
}

// DashboardStats computes the owner's tile numbers: total distance, trip
// count and distinct locations.
func (s *ExperienceService) DashboardStats(ownerId int) (*entity.DashboardStats, error) {
	db := database.GetDB()

	stats := &entity.DashboardStats{}
	err := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId)).
		Select("COALESCE(SUM(distance_km), 0) AS total_km, COUNT(*) AS total_trips, " +
			"COUNT(DISTINCT start_location) + COUNT(DISTINCT end_location) AS locations").
		Scan(stats).
		Error
	if err != nil {
		return nil, storeFailure("dashboard stats", err)
	}
	return stats, nil
}

// CategoryStats aggregates the owner's records per lookup category: trip
// count and distance for each weather condition, vehicle type, road type,
// time of day, surface and traffic density.
func (s *ExperienceService) CategoryStats(ownerId int) (map[string][]entity.CategoryStat, error) {
	db := database.GetDB()

	groups := []struct {
		key     string
		table   string
		column  string
		ordered string
	}{
		{"weather", "weather_conditions", "weather_id", "count DESC"},
		{"vehicle", "vehicle_types", "vehicle_type_id", "count DESC"},
		{"roadType", "road_types", "road_type_id", "count DESC"},
		{"surface", "surfaces", "surface_id", "count DESC"},
		{"timeOfDay", "time_of_day", "time_of_day_id", "l.id"},
		{"density", "road_densities", "road_density_id", "l.id"},
	}

	stats := make(map[string][]entity.CategoryStat, len(groups))
	for _, g := range groups {
		var rows []entity.CategoryStat
		err := db.Table("driving_experiences de").
			Select("l.name AS name, COUNT(*) AS count, COALESCE(SUM(de.distance_km), 0) AS total_km").
			Joins("JOIN "+g.table+" l ON de."+g.column+" = l.id").
			Where("de.user_id = ?", ownerId).
			Group("l.id, l.name").
			Order(g.ordered).
			Scan(&rows).
			Error
		if err != nil {
			return nil, storeFailure("category stats", err)
		}
		stats[g.key] = rows
	}
	return stats, nil
}

// MonthlyStats aggregates trips and distance per month for the owner's
// most recent months.
func (s *ExperienceService) MonthlyStats(ownerId int, months int) ([]entity.MonthlyStat, error) {
	db := database.GetDB()

	var rows []entity.MonthlyStat
	err := db.Model(model.DrivingExperience{}).
		Scopes(ownedScope(ownerId)).
		Select("strftime('%Y-%m', date) AS month, COUNT(*) AS trips, COALESCE(SUM(distance_km), 0) AS total_km").
		Group("strftime('%Y-%m', date)").
		Order("month DESC").
		Limit(months).
		Scan(&rows).
		Error
	if err != nil {
		return nil, storeFailure("monthly stats", err)
	}
	return rows, nil
}
