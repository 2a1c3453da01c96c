package repositories_test

import (
	"testing"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequestRepository_PendingUniqueness(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewContactRequestRepository()
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)

	first := &models.ContactRequest{StudentUserID: student.ID, TeacherUserID: teacher.ID, Message: "one"}
	require.NoError(t, repo.Create(db, first))
	assert.Equal(t, models.ContactRequestStatusPending, first.Status)

	exists, err := repo.ExistsPending(db, student.ID, teacher.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(db, &models.ContactRequest{StudentUserID: student.ID, TeacherUserID: teacher.ID, Message: "two"})
	assert.ErrorIs(t, err, repositories.ErrPendingRequestExists)

	moved, err := repo.TransitionFromPending(db, first.ID, models.ContactRequestStatusRejected)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = repo.TransitionFromPending(db, first.ID, models.ContactRequestStatusAccepted)
	require.NoError(t, err)
	assert.False(t, moved, "a decided request cannot move again")

	require.NoError(t, repo.Create(db, &models.ContactRequest{StudentUserID: student.ID, TeacherUserID: teacher.ID, Message: "three"}))
}

func TestConversationRepository_OnePerRequest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewConversationRepository()
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	request, _ := testutil.CreateAcceptedConversation(t, db, student.ID, teacher.ID)

	err := repo.Create(db, &models.Conversation{RequestID: &request.ID, StudentUserID: student.ID, TeacherUserID: teacher.ID})
	assert.ErrorIs(t, err, repositories.ErrConversationExists)

	found, err := repo.FindForUser(db, student.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.NotNil(t, found[0].RequestID)
	assert.Equal(t, request.ID, *found[0].RequestID)

	_, err = repo.FindByID(db, 999999)
	assert.ErrorIs(t, err, repositories.ErrConversationNotFound)
}

func TestAvailabilityRepository_FindByTeacherAndDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewAvailabilityRepository()
	teacher := testutil.CreateTeacher(t, db)

	late := testutil.CreateSlot(t, db, teacher.ID, 1, "14:00", "15:00")
	early := testutil.CreateSlot(t, db, teacher.ID, 1, "09:00", "10:00")
	testutil.CreateSlot(t, db, teacher.ID, 2, "09:00", "10:00")

	slots, err := repo.FindByTeacherAndDay(db, teacher.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, early.ID, slots[0].ID)
	assert.Equal(t, late.ID, slots[1].ID)

	slots, err = repo.FindByTeacherAndDay(db, teacher.ID, 1, early.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, late.ID, slots[0].ID)
}

func TestReviewRepository_RatingStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewReviewRepository()
	teacher := testutil.CreateTeacher(t, db)

	stats, err := repo.CalculateTeacherRating(db, teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, stats.Average)
	assert.Zero(t, stats.Count)

	for _, rating := range []int{1, 2, 2} {
		student := testutil.CreateStudent(t, db)
		require.NoError(t, repo.Create(db, &models.Review{TeacherUserID: teacher.ID, StudentUserID: student.ID, Rating: rating}))
	}

	stats, err = repo.CalculateTeacherRating(db, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 1.67, *stats.Average, 0.0001)
	assert.Equal(t, 3, stats.Count)

	assert.Equal(t, 1.67, repositories.RoundTo2(1.6666))
	assert.Equal(t, 2.5, repositories.RoundTo2(2.5))
}
