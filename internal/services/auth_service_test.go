package services_test

import (
	"testing"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/internal/testutil"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).AuthService

	resp, err := svc.Register(db, &dto.RegisterRequest{
		Name:     " Marie ",
		Surname:  "Curie",
		Email:    "Marie@Example.com",
		Password: "supersecret",
		Role:     models.UserRoleTeacher,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "marie@example.com", resp.User.Email)
	assert.Equal(t, "Marie", resp.User.Name)

	var profile models.TeacherProfile
	require.NoError(t, db.First(&profile, "user_id = ?", resp.User.ID).Error)

	_, err = svc.Register(db, &dto.RegisterRequest{
		Name: "Other", Surname: "User", Email: "marie@example.com", Password: "supersecret", Role: models.UserRoleStudent,
	})
	testutil.RequireAppError(t, err, apperrors.CodeConflict)

	_, err = svc.Register(db, &dto.RegisterRequest{
		Name: "Root", Surname: "User", Email: "root@example.com", Password: "supersecret", Role: models.UserRoleAdmin,
	})
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	login, err := svc.Login(db, &dto.LoginRequest{Email: "MARIE@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "marie@example.com", Password: "wrong-password"})
	testutil.RequireAppError(t, err, apperrors.CodeUnauthorized)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	testutil.RequireAppError(t, err, apperrors.CodeUnauthorized)

	me, err := svc.Me(db, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleTeacher, me.Role)
}

func TestDeleteUser_RecomputesReviewedTeachers(t *testing.T) {
	db := testutil.NewTestDB(t)
	container := newContainer(nil)
	admin := testutil.CreateAdmin(t, db)
	teacher := testutil.CreateTeacher(t, db)
	keeper := testutil.CreateStudent(t, db)
	leaver := testutil.CreateStudent(t, db)

	_, err := container.ReviewService.Create(db, keeper.ID, &dto.CreateReviewRequest{TeacherUserID: teacher.ID, Rating: 4})
	require.NoError(t, err)
	_, err = container.ReviewService.Create(db, leaver.ID, &dto.CreateReviewRequest{TeacherUserID: teacher.ID, Rating: 2})
	require.NoError(t, err)

	testutil.RequireAppError(t, container.UserService.DeleteUser(db, admin.ID, admin.ID), apperrors.CodeForbidden)

	require.NoError(t, container.UserService.DeleteUser(db, admin.ID, leaver.ID))
	testutil.RequireAppError(t, container.UserService.DeleteUser(db, admin.ID, leaver.ID), apperrors.CodeNotFound)

	avg, count := teacherRating(t, db, teacher.ID)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.0, *avg, 0.001)
	assert.Equal(t, 1, count)

	var reviews int64
	require.NoError(t, db.Model(&models.Review{}).Where("student_user_id = ?", leaver.ID).Count(&reviews).Error)
	assert.Zero(t, reviews)
}
