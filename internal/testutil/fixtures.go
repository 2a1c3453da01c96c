package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the plain password of every fixture user.
const DefaultPassword = "password123"

var emailSeq atomic.Int64

// CreateUser inserts a user with the given role and its empty profile.
func CreateUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	n := emailSeq.Add(1)
	user := &models.User{
		Name:         fmt.Sprintf("Name%d", n),
		Surname:      fmt.Sprintf("Surname%d", n),
		Email:        fmt.Sprintf("user%d_%d@test.com", n, time.Now().UnixNano()),
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	switch role {
	case models.UserRoleTeacher:
		require.NoError(t, db.Create(&models.TeacherProfile{UserID: user.ID}).Error)
	case models.UserRoleStudent:
		require.NoError(t, db.Create(&models.StudentProfile{UserID: user.ID}).Error)
	}
	return user
}

func CreateTeacher(t *testing.T, db *gorm.DB) *models.User {
	return CreateUser(t, db, models.UserRoleTeacher)
}

func CreateStudent(t *testing.T, db *gorm.DB) *models.User {
	return CreateUser(t, db, models.UserRoleStudent)
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	return CreateUser(t, db, models.UserRoleAdmin)
}

// CreateSlot inserts an availability slot without overlap checks.
func CreateSlot(t *testing.T, db *gorm.DB, teacherID uint, day int, start, end string) *models.AvailabilitySlot {
	t.Helper()

	startTime, err := parseClock(start)
	require.NoError(t, err)
	endTime, err := parseClock(end)
	require.NoError(t, err)

	slot := &models.AvailabilitySlot{
		TeacherUserID: teacherID,
		DayOfWeek:     day,
		StartTime:     startTime,
		EndTime:       endTime,
	}
	require.NoError(t, db.Create(slot).Error)
	return slot
}

// CreateAcceptedConversation inserts an ACCEPTED request and its conversation.
func CreateAcceptedConversation(t *testing.T, db *gorm.DB, studentID, teacherID uint) (*models.ContactRequest, *models.Conversation) {
	t.Helper()

	request := &models.ContactRequest{
		StudentUserID: studentID,
		TeacherUserID: teacherID,
		Status:        models.ContactRequestStatusAccepted,
		Message:       "Hello",
	}
	require.NoError(t, db.Create(request).Error)

	conversation := &models.Conversation{
		RequestID:     &request.ID,
		StudentUserID: studentID,
		TeacherUserID: teacherID,
	}
	require.NoError(t, db.Create(conversation).Error)
	return request, conversation
}

// FirstSubjectID returns the id of any seeded subject.
func FirstSubjectID(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	var subject models.Subject
	require.NoError(t, db.Order("id").First(&subject).Error)
	return subject.ID
}

func parseClock(value string) (datatypes.Time, error) {
	d, err := dto.ParseClock(value)
	if err != nil {
		return 0, err
	}
	return datatypes.Time(d), nil
}
