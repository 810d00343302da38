package service

import (
	"path/filepath"
	"testing"

	"github.com/Bayrii/drivelog/database"
	"github.com/Bayrii/drivelog/database/model"

	"github.com/stretchr/testify/require"
)

// setupTestDB points the global store at a fresh temp database with the
// lookup tables seeded.
func setupTestDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "drivelog-test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

// newTestUser creates an account directly, bypassing bcrypt to keep tests
// fast where the password is irrelevant.
func newTestUser(t *testing.T, username string) *model.User {
	t.Helper()

	user := &model.User{Username: username, Password: "x"}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

// validSubmission returns a submission that passes every rule.
func validSubmission() *model.ExperienceSubmission {
	return &model.ExperienceSubmission{
		Date:          "2025-06-10",
		StartTime:     "08:30",
		EndTime:       "09:15",
		DistanceKm:    12.5,
		StartLocation: "Home",
		EndLocation:   "Office",
		VehicleTypeId: 1,
		TimeOfDayId:   TimeMorningRush,
		WeatherId:     1,
		RoadTypeId:    1,
		SurfaceId:     1,
		RoadDensityId: 1,
	}
}
