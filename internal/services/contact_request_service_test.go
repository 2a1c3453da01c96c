package services_test

import (
	"strings"
	"testing"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/internal/testutil"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequest_AcceptCreatesConversation(t *testing.T) {
	db := testutil.NewTestDB(t)
	notifier := &recordingNotifier{}
	container := newContainer(notifier)
	svc := container.ContactRequestService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)

	created, err := svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "  Bonjour  "})
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequestStatusPending, created.Status)
	assert.Equal(t, "Bonjour", created.Message)
	require.NotNil(t, created.Student)
	assert.Equal(t, student.ID, created.Student.ID)

	createdEvents := notifier.byEvent(services.EventContactRequestCreated)
	require.Len(t, createdEvents, 1)
	assert.ElementsMatch(t, []uint{student.ID, teacher.ID}, createdEvents[0].UserIDs)

	resp, err := svc.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequestStatusAccepted, resp.Status)
	require.NotNil(t, resp.Conversation)
	require.NotNil(t, resp.Conversation.RequestID)
	assert.Equal(t, created.ID, *resp.Conversation.RequestID)
	assert.Equal(t, student.ID, resp.Conversation.StudentUserID)
	assert.Equal(t, teacher.ID, resp.Conversation.TeacherUserID)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Where("request_id = ?", created.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Len(t, notifier.byEvent(services.EventContactRequestStatusUpdated), 1)

	// A second decision is rejected and creates nothing.
	_, err = svc.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusAccepted)
	appErr := testutil.RequireAppError(t, err, apperrors.CodeConflict)
	assert.Equal(t, "Contact request has already been accepted", appErr.Message)

	_, err = svc.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusRejected)
	testutil.RequireAppError(t, err, apperrors.CodeConflict)

	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContactRequest_RejectCreatesNoConversation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).ContactRequestService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)

	created, err := svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Hi"})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ContactRequestStatusRejected, resp.Status)
	assert.Nil(t, resp.Conversation)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Zero(t, count)

	// A new request can be opened once the previous one is decided.
	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Again"})
	require.NoError(t, err)
}

func TestContactRequest_CreateGuards(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).ContactRequestService
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	otherStudent := testutil.CreateStudent(t, db)

	_, err := svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "   "})
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: strings.Repeat("a", 1001)})
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: otherStudent.ID, Message: "Hi"})
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)

	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: 999999, Message: "Hi"})
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)

	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Hi"})
	require.NoError(t, err)
	_, err = svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Hi again"})
	testutil.RequireAppError(t, err, apperrors.CodeConflict)
}

func TestContactRequest_OnlyAddressedTeacherDecides(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).ContactRequestService
	teacher := testutil.CreateTeacher(t, db)
	otherTeacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)

	created, err := svc.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Hi"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(db, created.ID, otherTeacher.ID, models.ContactRequestStatusAccepted)
	testutil.RequireAppError(t, err, apperrors.CodeForbidden)

	_, err = svc.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusPending)
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	_, err = svc.UpdateStatus(db, 999999, teacher.ID, models.ContactRequestStatusAccepted)
	testutil.RequireAppError(t, err, apperrors.CodeNotFound)
}

func TestContactRequest_CancelKeepsConversationInactive(t *testing.T) {
	db := testutil.NewTestDB(t)
	container := newContainer(nil)
	teacher := testutil.CreateTeacher(t, db)
	student := testutil.CreateStudent(t, db)
	stranger := testutil.CreateStudent(t, db)

	created, err := container.ContactRequestService.Create(db, student.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "Hi"})
	require.NoError(t, err)
	resp, err := container.ContactRequestService.UpdateStatus(db, created.ID, teacher.ID, models.ContactRequestStatusAccepted)
	require.NoError(t, err)

	testutil.RequireAppError(t, container.ContactRequestService.Cancel(db, created.ID, stranger.ID), apperrors.CodeForbidden)
	require.NoError(t, container.ContactRequestService.Cancel(db, created.ID, student.ID))
	testutil.RequireAppError(t, container.ContactRequestService.Cancel(db, created.ID, student.ID), apperrors.CodeNotFound)

	var conversation models.Conversation
	require.NoError(t, db.First(&conversation, resp.Conversation.ID).Error)
	assert.Nil(t, conversation.RequestID)

	_, err = container.ConversationService.SendMessage(db, conversation.ID, student.ID, "still there?")
	testutil.RequireAppError(t, err, apperrors.CodeConflict)
}

func TestContactRequest_ListMine(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newContainer(nil).ContactRequestService
	teacher := testutil.CreateTeacher(t, db)
	studentA := testutil.CreateStudent(t, db)
	studentB := testutil.CreateStudent(t, db)
	admin := testutil.CreateAdmin(t, db)

	a, err := svc.Create(db, studentA.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "A"})
	require.NoError(t, err)
	_, err = svc.Create(db, studentB.ID, &dto.CreateContactRequestRequest{TeacherUserID: teacher.ID, Message: "B"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(db, a.ID, teacher.ID, models.ContactRequestStatusRejected)
	require.NoError(t, err)

	all, err := svc.ListMine(db, teacher.ID, models.UserRoleTeacher, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := models.ContactRequestStatusPending
	onlyPending, err := svc.ListMine(db, teacher.ID, models.UserRoleTeacher, &pending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, studentB.ID, onlyPending[0].StudentUserID)

	mine, err := svc.ListMine(db, studentA.ID, models.UserRoleStudent, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.ContactRequestStatusRejected, mine[0].Status)

	bogus := models.ContactRequestStatus("MAYBE")
	_, err = svc.ListMine(db, teacher.ID, models.UserRoleTeacher, &bogus)
	testutil.RequireAppError(t, err, apperrors.CodeValidation)

	_, err = svc.ListMine(db, admin.ID, models.UserRoleAdmin, nil)
	testutil.RequireAppError(t, err, apperrors.CodeValidation)
}
