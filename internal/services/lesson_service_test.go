package services_test

import (
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/internal/testutil"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLesson_DualStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).LessonService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	subjectID := testutil.FirstSubjectID(t, db)

	lesson, err := svc.Create(db, student.ID, &dto.CreateLessonRequest{
		TeacherUserID: teacher.ID,
		StudentUserID: student.ID,
		SubjectID:     subjectID,
		StartAt:       time.Now().Add(48 * time.Hour),
		DurationMin:   60,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LessonStatusPending, lesson.StatusForTeacher)
	assert.Equal(t, models.LessonStatusPending, lesson.StatusForStudent)

	updated, err := svc.UpdateStatus(db, lesson.ID, teacher.ID, models.LessonStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.LessonStatusConfirmed, updated.StatusForTeacher)
	assert.Equal(t, models.LessonStatusPending, updated.StatusForStudent)

	updated, err = svc.UpdateStatus(db, lesson.ID, student.ID, models.LessonStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.LessonStatusConfirmed, updated.StatusForTeacher)
	assert.Equal(t, models.LessonStatusCancelled, updated.StatusForStudent)
}

func TestLesson_CreateGuards(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).LessonService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	outsider := testutil.CreateStudent(t, db)
	subjectID := testutil.FirstSubjectID(t, db)
	future := time.Now().Add(24 * time.Hour)

	base := func() *dto.CreateLessonRequest {
		return &dto.CreateLessonRequest{
			TeacherUserID: teacher.ID,
			StudentUserID: student.ID,
			SubjectID:     subjectID,
			StartAt:       future,
			DurationMin:   45,
		}
	}

	past := base()
	past.StartAt = time.Now().Add(-time.Hour)
	_, err := svc.Create(db, student.ID, past)
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	zero := base()
	zero.DurationMin = 0
	_, err = svc.Create(db, student.ID, zero)
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	_, err = svc.Create(db, outsider.ID, base())
	testutil.RequireAppError(t, err, apperrors.CodeForbidden)

	noSubject := base()
	noSubject.SubjectID = 999999
	_, err = svc.Create(db, student.ID, noSubject)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)

	notTeacher := base()
	notTeacher.TeacherUserID = outsider.ID
	_, err = svc.Create(db, student.ID, notTeacher)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)
}

func TestLesson_AccessAndLists(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).LessonService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	outsider := testutil.CreateStudent(t, db)
	subjectID := testutil.FirstSubjectID(t, db)

	var ids []uint
	for i := 1; i <= 3; i++ {
		lesson, err := svc.Create(db, teacher.ID, &dto.CreateLessonRequest{
			TeacherUserID: teacher.ID,
			StudentUserID: student.ID,
			SubjectID:     subjectID,
			StartAt:       time.Now().Add(time.Duration(i) * 24 * time.Hour),
			DurationMin:   60,
		})
		require.NoError(t, err)
		ids = append(ids, lesson.ID)
	}

	_, err := svc.GetByID(db, ids[0], outsider.ID)
	testutil.RequireAppError(t, err, apperrors.CodeForbidden)
	_, err = svc.GetByID(db, 999999, student.ID)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)

	// The student cancels the soonest lesson; it leaves the student's upcoming list only.
	_, err = svc.UpdateStatus(db, ids[0], student.ID, models.LessonStatusCancelled)
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming(db, student.ID, models.UserRoleStudent, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, ids[1], upcoming[0].ID)
	assert.True(t, upcoming[0].StartAt.Before(upcoming[1].StartAt))

	teacherUpcoming, err := svc.ListUpcoming(db, teacher.ID, models.UserRoleTeacher, 1)
	require.NoError(t, err)
	require.Len(t, teacherUpcoming, 1)
	assert.Equal(t, ids[0], teacherUpcoming[0].ID)

	cancelled := models.LessonStatusCancelled
	list, err := svc.ListForUser(db, student.ID, models.UserRoleStudent, &cancelled, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	all, err := svc.ListForUser(db, teacher.ID, models.UserRoleTeacher, nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Len(t, all.Items, 2)

	testutil.RequireAppError(t, svc.Delete(db, ids[2], outsider.ID), apperrors.CodeForbidden)
	require.NoError(t, svc.Delete(db, ids[2], student.ID))
	_, err = svc.GetByID(db, ids[2], student.ID)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)
}
