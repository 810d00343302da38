// Package database manages the sqlite store: connection setup, migrations
// and the one-time seeding of the lookup tables.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/Bayrii/drivelog/config"
	"github.com/Bayrii/drivelog/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.DrivingExperience{},
		&model.VehicleType{},
		&model.TimeOfDay{},
		&model.Surface{},
		&model.RoadDensity{},
		&model.RoadType{},
		&model.WeatherCondition{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initLookups seeds the six category tables the first time the database is
// created. The sets are fixed; rows are never mutated afterwards.
func initLookups() error {
	seeds := []struct {
		table string
		row   func(name string) any
		names []string
	}{
		{"vehicle_types", func(name string) any { return &model.VehicleType{Name: name} },
			[]string{"Car", "Motorcycle", "Van", "Truck", "Bus"}},
		{"time_of_day", func(name string) any { return &model.TimeOfDay{Name: name} },
			[]string{"Morning Rush", "Late Morning", "Afternoon", "Evening Rush", "Night", "Late Night"}},
		{"surfaces", func(name string) any { return &model.Surface{Name: name} },
			[]string{"Dry", "Wet", "Icy", "Snowy", "Gravel"}},
		{"road_densities", func(name string) any { return &model.RoadDensity{Name: name} },
			[]string{"Light", "Moderate", "Heavy", "Congested"}},
		{"road_types", func(name string) any { return &model.RoadType{Name: name} },
			[]string{"City Street", "Rural Road", "Highway", "Motorway", "Residential"}},
		{"weather_conditions", func(name string) any { return &model.WeatherCondition{Name: name} },
			[]string{"Clear", "Cloudy", "Rain", "Fog", "Snow", "Windy"}},
	}

	for _, seed := range seeds {
		empty, err := isTableEmpty(seed.table)
		if err != nil {
			log.Printf("Error checking if %s table is empty: %v", seed.table, err)
			return err
		}
		if !empty {
			continue
		}
		for _, name := range seed.names {
			if err := db.Create(seed.row(name)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA cache_size = -64000;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;")
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initLookups()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
