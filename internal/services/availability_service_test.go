package services_test

import (
	"testing"

	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/internal/testutil"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlot_RejectsOverlapOnSameDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)

	first, err := svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", first.StartTime)
	assert.Equal(t, "11:00", first.EndTime)

	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "10:30", EndTime: "12:00"})
	testutil.RequireAppError(t, err, apperrors.CodeConflict)

	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "08:00", EndTime: "12:00"})
	testutil.RequireAppError(t, err, apperrors.CodeConflict)
}

func TestCreateSlot_AdjacentAndOtherDayAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)

	_, err := svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(2), StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	// Touching boundaries do not overlap.
	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(2), StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(2), StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)

	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(3), StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	// Other teachers are independent.
	other := testutil.CreateTeacher(t, db)
	_, err = svc.CreateSlot(db, other.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(2), StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	slots, err := svc.ListForTeacher(db, teacher.ID, nil)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, 2, slots[0].DayOfWeek)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, 3, slots[3].DayOfWeek)
}

func TestCreateSlot_Validation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)

	cases := []struct {
		name string
		req  *dto.CreateSlotRequest
	}{
		{"missing day", &dto.CreateSlotRequest{StartTime: "09:00", EndTime: "10:00"}},
		{"day out of range", &dto.CreateSlotRequest{DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "10:00"}},
		{"bad clock", &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "9h", EndTime: "10:00"}},
		{"empty interval", &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "10:00", EndTime: "10:00"}},
		{"reversed interval", &dto.CreateSlotRequest{DayOfWeek: intPtr(1), StartTime: "11:00", EndTime: "10:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlot(db, teacher.ID, tc.req)
			testutil.RequireAppError(t, err, apperrors.CodeValidation)
		})
	}
}

func TestUpdateSlot_ExcludesItselfFromOverlap(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)

	slot, err := svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(4), StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	_, err = svc.CreateSlot(db, teacher.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(4), StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)

	updated, err := svc.UpdateSlot(db, slot.ID, teacher.ID, &dto.UpdateSlotRequest{EndTime: strPtr("11:00")})
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.StartTime)
	assert.Equal(t, "11:00", updated.EndTime)

	_, err = svc.UpdateSlot(db, slot.ID, teacher.ID, &dto.UpdateSlotRequest{EndTime: strPtr("12:30")})
	testutil.RequireAppError(t, err, apperrors.CodeConflict)

	_, err = svc.UpdateSlot(db, slot.ID, teacher.ID, &dto.UpdateSlotRequest{})
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	moved, err := svc.UpdateSlot(db, slot.ID, teacher.ID, &dto.UpdateSlotRequest{DayOfWeek: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, moved.DayOfWeek)
}

func TestSlotOwnership(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	owner := testutil.CreateTeacher(t, db)
	intruder := testutil.CreateTeacher(t, db)

	slot, err := svc.CreateSlot(db, owner.ID, &dto.CreateSlotRequest{DayOfWeek: intPtr(0), StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	_, err = svc.GetSlot(db, slot.ID, intruder.ID)
	testutil.RequireAppError(t, err, apperrors.CodeForbidden)
	_, err = svc.UpdateSlot(db, slot.ID, intruder.ID, &dto.UpdateSlotRequest{StartTime: strPtr("08:00")})
	testutil.RequireAppError(t, err, apperrors.CodeForbidden)
	testutil.RequireAppError(t, svc.DeleteSlot(db, slot.ID, intruder.ID), apperrors.CodeForbidden)

	require.NoError(t, svc.DeleteSlot(db, slot.ID, owner.ID))
	testutil.RequireAppError(t, svc.DeleteSlot(db, slot.ID, owner.ID), apperrors.CodeNotFound)
}

func TestListForTeacher_FiltersAndUnknownTeacher(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)

	testutil.CreateSlot(t, db, teacher.ID, 1, "09:00", "10:00")
	testutil.CreateSlot(t, db, teacher.ID, 2, "09:00", "10:00")

	slots, err := svc.ListForTeacher(db, teacher.ID, intPtr(2))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 2, slots[0].DayOfWeek)

	_, err = svc.ListForTeacher(db, student.ID, nil)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)

	_, err = svc.ListForTeacher(db, teacher.ID, intPtr(9))
	testutil.RequireAppError(t, err, apperrors.CodeValidation)
}

func TestDeleteAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AvailabilityService
	teacher := testutil.CreateTeacher(t, db)

	testutil.CreateSlot(t, db, teacher.ID, 1, "09:00", "10:00")
	testutil.CreateSlot(t, db, teacher.ID, 3, "09:00", "10:00")

	count, err := svc.DeleteAll(db, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.DeleteAll(db, teacher.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
