package service

import (
	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/web/entity"
)

// LookupService reads the six fixed category tables. They are seeded at
// database init and never written afterwards.
type LookupService struct{}

// GetAll returns every category set, each ordered by id, for form
// rendering.
func (s *LookupService) GetAll() (*entity.Lookups, error) {
	db := database.GetDB()
	lookups := &entity.Lookups{}

	targets := []any{
		&lookups.VehicleTypes,
		&lookups.TimeOfDay,
		&lookups.Surfaces,
		&lookups.RoadDensities,
		&lookups.RoadTypes,
		&lookups.WeatherConditions,
	}
	for _, target := range targets {
		if err := db.Order("id").Find(target).Error; err != nil {
			return nil, storeFailure("load lookup categories", err)
		}
	}
	return lookups, nil
}

// exists reports whether the given lookup row is present. m selects the
// table via its gorm model.
func (s *LookupService) exists(m any, id int) (bool, error) {
	db := database.GetDB()
	var count int64
	err := db.Model(m).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
