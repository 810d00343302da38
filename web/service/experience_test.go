package service

import (
	"fmt"
	"testing"

	"github.com/Bayrii/drivelog/database/model"
	"github.com/Bayrii/drivelog/web/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBindsOwnerFromSession(t *testing.T) {
	setupTestDB(t)
	owner := newTestUser(t, "alice")
	svc := ExperienceService{}

	id, err := svc.Create(owner.Id, validSubmission())
	require.NoError(t, err)
	require.NotZero(t, id)

	record, err := svc.Get(owner.Id, id)
	require.NoError(t, err)
	assert.Equal(t, owner.Id, record.UserId)
}

func TestCreateRejectsInvalidSubmission(t *testing.T) {
	setupTestDB(t)
	owner := newTestUser(t, "alice")
	svc := ExperienceService{}

	sub := validSubmission()
	sub.DistanceKm = 0
	sub.VehicleTypeId = 0

	_, err := svc.Create(owner.Id, sub)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 2)
}

func TestCreateRejectsDanglingCategory(t *testing.T) {
	setupTestDB(t)
	owner := newTestUser(t, "alice")
	svc := ExperienceService{}

	sub := validSubmission()
	sub.WeatherId = 999

	_, err := svc.Create(owner.Id, sub)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Violations[0], "weather condition does not exist")
}

func TestCreateDerivesTimeOfDayWhenUnset(t *testing.T) {
	setupTestDB(t)
	owner := newTestUser(t, "alice")
	svc := ExperienceService{}

	sub := validSubmission()
	sub.StartTime = "18:10"
	sub.EndTime = "19:00"
	sub.TimeOfDayId = 0

	id, err := svc.Create(owner.Id, sub)
	require.NoError(t, err)

	record, err := svc.Get(owner.Id, id)
	require.NoError(t, err)
	assert.Equal(t, TimeEveningRush, record.TimeOfDayId)
}

func TestForeignRecordIndistinguishableFromMissing(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	bob := newTestUser(t, "bob")
	svc := ExperienceService{}

	id, err := svc.Create(alice.Id, validSubmission())
	require.NoError(t, err)

	const missingId = 12345

	_, foreignErr := svc.Get(bob.Id, id)
	_, missingErr := svc.Get(bob.Id, missingId)
	assert.ErrorIs(t, foreignErr, ErrExperienceNotFound)
	assert.Equal(t, missingErr, foreignErr)

	foreignErr = svc.Update(bob.Id, id, validSubmission())
	missingErr = svc.Update(bob.Id, missingId, validSubmission())
	assert.ErrorIs(t, foreignErr, ErrExperienceNotFound)
	assert.Equal(t, missingErr, foreignErr)

	foreignErr = svc.Delete(bob.Id, id)
	missingErr = svc.Delete(bob.Id, missingId)
	assert.ErrorIs(t, foreignErr, ErrExperienceNotFound)
	assert.Equal(t, missingErr, foreignErr)

	// Alice's record is untouched by any of it.
	record, err := svc.Get(alice.Id, id)
	require.NoError(t, err)
	assert.Equal(t, alice.Id, record.UserId)
}

func TestUpdateRewritesFieldsButNeverOwner(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	svc := ExperienceService{}

	id, err := svc.Create(alice.Id, validSubmission())
	require.NoError(t, err)

	sub := validSubmission()
	sub.DistanceKm = 99.9
	sub.Notes = "long highway stretch"
	require.NoError(t, svc.Update(alice.Id, id, sub))

	record, err := svc.Get(alice.Id, id)
	require.NoError(t, err)
	assert.Equal(t, 99.9, record.DistanceKm)
	assert.Equal(t, "long highway stretch", record.Notes)
	assert.Equal(t, alice.Id, record.UserId)
}

func TestDeleteRemovesImmediately(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	svc := ExperienceService{}

	id, err := svc.Create(alice.Id, validSubmission())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(alice.Id, id))
	_, err = svc.Get(alice.Id, id)
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	// A second delete reports not found, not success.
	assert.ErrorIs(t, svc.Delete(alice.Id, id), ErrExperienceNotFound)
}

func TestResolveTarget(t *testing.T) {
	setupTestDB(t)
	svc := ExperienceService{}
	m := session.NewIDMap()

	id, err := svc.ResolveTarget("17", m)
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	code := svc.AnonymizeId(m, 17)
	id, err = svc.ResolveTarget(code, m)
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	_, err = svc.ResolveTarget("EXP-00000000", m)
	assert.ErrorIs(t, err, ErrInvalidReference)
	_, err = svc.ResolveTarget("", m)
	assert.ErrorIs(t, err, ErrInvalidReference)
	_, err = svc.ResolveTarget("-3", m)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

// seedExperiences inserts n records for owner across two vehicle types and
// spread over dates.
func seedExperiences(t *testing.T, svc *ExperienceService, ownerId int, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		sub := validSubmission()
		sub.Date = fmt.Sprintf("2025-03-%02d", i%28+1)
		sub.StartTime = fmt.Sprintf("%02d:00", i%24)
		sub.EndTime = fmt.Sprintf("%02d:45", i%24)
		sub.VehicleTypeId = i%2 + 1
		sub.TimeOfDayId = ClassifyTimeOfDay(i % 24)
		sub.DistanceKm = float64(i + 1)
		_, err := svc.Create(ownerId, sub)
		require.NoError(t, err)
	}
}

func TestListCountMatchesPageIteration(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	bob := newTestUser(t, "bob")
	svc := ExperienceService{}

	seedExperiences(t, &svc, alice.Id, 23)
	seedExperiences(t, &svc, bob.Id, 7)

	filters := []*model.ExperienceFilter{
		nil,
		{},
		{VehicleTypeId: 1},
		{DateFrom: "2025-03-10"},
		{DateFrom: "2025-03-05", DateTo: "2025-03-15"},
		{VehicleTypeId: 2, DateTo: "2025-03-20"},
		{WeatherId: 1},
		{RoadTypeId: 999},
	}

	for i, f := range filters {
		first, err := svc.List(alice.Id, f, 1)
		require.NoError(t, err, "filter %d", i)

		var seen int64
		for page := 1; ; page++ {
			result, err := svc.List(alice.Id, f, page)
			require.NoError(t, err)
			seen += int64(len(result.Items))
			if len(result.Items) < PageSize {
				break
			}
		}
		assert.Equal(t, first.Meta.TotalItems, seen, "filter %d", i)
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	bob := newTestUser(t, "bob")
	svc := ExperienceService{}

	seedExperiences(t, &svc, alice.Id, 3)
	seedExperiences(t, &svc, bob.Id, 5)

	result, err := svc.List(alice.Id, nil, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	for _, item := range result.Items {
		assert.Equal(t, alice.Id, item.UserId)
	}
}

func TestListOrderingAndWindow(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	svc := ExperienceService{}

	seedExperiences(t, &svc, alice.Id, 15)

	result, err := svc.List(alice.Id, nil, 1)
	require.NoError(t, err)
	require.Len(t, result.Items, PageSize)
	assert.Equal(t, 2, result.Meta.TotalPages)

	for i := 1; i < len(result.Items); i++ {
		prev, cur := result.Items[i-1], result.Items[i]
		if prev.Date == cur.Date {
			assert.GreaterOrEqual(t, prev.StartTime, cur.StartTime)
		} else {
			assert.Greater(t, prev.Date, cur.Date)
		}
	}

	// An out-of-range page yields zero rows, not an error.
	empty, err := svc.List(alice.Id, nil, 99)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	// Page numbers below 1 are clamped to the first page.
	clamped, err := svc.List(alice.Id, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Meta.Page)
	assert.Len(t, clamped.Items, PageSize)
}

func TestDashboardAndCategoryStats(t *testing.T) {
	setupTestDB(t)
	alice := newTestUser(t, "alice")
	bob := newTestUser(t, "bob")
	svc := ExperienceService{}

	seedExperiences(t, &svc, alice.Id, 4) // distances 1+2+3+4
	seedExperiences(t, &svc, bob.Id, 2)

	stats, err := svc.DashboardStats(alice.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalTrips)
	assert.InDelta(t, 10.0, stats.TotalKm, 0.001)

	categories, err := svc.CategoryStats(alice.Id)
	require.NoError(t, err)
	var vehicleTotal int64
	for _, row := range categories["vehicle"] {
		vehicleTotal += row.Count
	}
	assert.EqualValues(t, 4, vehicleTotal)

	recent, err := svc.Recent(alice.Id, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	monthly, err := svc.MonthlyStats(alice.Id, 12)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, "2025-03", monthly[0].Month)
	assert.EqualValues(t, 4, monthly[0].Trips)
}
