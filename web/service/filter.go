package service

import (
	"github.com/Bayrii/drivelog/database/model"
	"github.com/Bayrii/drivelog/web/entity"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows per list page.
const PageSize = 10

// ownedScope is the mandatory ownership predicate. Every query that touches
// driving_experiences is built on top of it; there is no code path around
// it.
func ownedScope(ownerId int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", ownerId)
	}
}

// filterScope appends the optional list criteria, each as a bound
// parameter. Absent criteria contribute nothing.
func filterScope(f *model.ExperienceFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f == nil {
			return tx
		}
		if f.DateFrom != "" {
			tx = tx.Where("date >= ?", f.DateFrom)
		}
		if f.DateTo != "" {
			tx = tx.Where("date <= ?", f.DateTo)
		}
		if f.VehicleTypeId > 0 {
			tx = tx.Where("vehicle_type_id = ?", f.VehicleTypeId)
		}
		if f.WeatherId > 0 {
			tx = tx.Where("weather_id = ?", f.WeatherId)
		}
		if f.RoadTypeId > 0 {
			tx = tx.Where("road_type_id = ?", f.RoadTypeId)
		}
		return tx
	}
}

// recentFirst is the fixed list ordering: newest date, then latest start.
func recentFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("date DESC, start_time DESC")
}

// pageWindow clamps the page number to >= 1 and applies the fixed window.
// An out-of-range page simply yields no rows.
func pageWindow(page int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Offset((page - 1) * PageSize).Limit(PageSize)
	}
}

// newPageMeta derives the window description from the independent total
// count.
func newPageMeta(page int, total int64) entity.PageMeta {
	if page < 1 {
		page = 1
	}
	totalPages := int((total + PageSize - 1) / PageSize)
	return entity.PageMeta{
		Page:       page,
		PageSize:   PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
