package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/internal/testutil"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestToConversationFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	student := testutil.CreateStudent(t, ts.DB)
	teacher := testutil.CreateTeacher(t, ts.DB)
	studentToken := ts.TokenFor(t, student)
	teacherToken := ts.TokenFor(t, teacher)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/requests", studentToken, map[string]interface{}{
		"teacherUserId": teacher.ID,
		"message":       "hi",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ContactRequest dto.ContactRequestResponse `json:"contactRequest"`
	}
	testutil.DecodeJSON(t, body, &created)
	assert.Equal(t, models.ContactRequestStatusPending, created.ContactRequest.Status)

	res, body = ts.SendRequest(t, http.MethodPatch, fmt.Sprintf("/api/v1/requests/%d", created.ContactRequest.ID), teacherToken, map[string]interface{}{
		"status": "ACCEPTED",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var accepted dto.ContactRequestStatusResponse
	testutil.DecodeJSON(t, body, &accepted)
	assert.Equal(t, models.ContactRequestStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.Conversation)
	assert.Equal(t, student.ID, accepted.Conversation.StudentUserID)
	assert.Equal(t, teacher.ID, accepted.Conversation.TeacherUserID)

	messagesPath := fmt.Sprintf("/api/v1/conversations/%d/messages", accepted.Conversation.ID)
	res, body = ts.SendRequest(t, http.MethodPost, messagesPath, studentToken, map[string]interface{}{"content": "hello"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var sent dto.MessageResponse
	testutil.DecodeJSON(t, body, &sent)
	assert.Equal(t, "hello", sent.Content)
	assert.NotZero(t, sent.ID)

	res, body = ts.SendRequest(t, http.MethodPost, messagesPath, teacherToken, map[string]interface{}{"content": "welcome"})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, messagesPath, teacherToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list dto.MessageListResponse
	testutil.DecodeJSON(t, body, &list)
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "welcome", list.Messages[0].Content)
	assert.Equal(t, "hello", list.Messages[1].Content)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	res, body = ts.SendRequest(t, http.MethodGet, messagesPath+"?page=0&pageSize=500", teacherToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	testutil.DecodeJSON(t, body, &list)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 50, list.PageSize)

	// Re-accepting is a conflict.
	res, body = ts.SendRequest(t, http.MethodPatch, fmt.Sprintf("/api/v1/requests/%d", created.ContactRequest.ID), teacherToken, map[string]interface{}{
		"status": "ACCEPTED",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/conversations", studentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var conversations struct {
		Conversations []dto.ConversationListItem `json:"conversations"`
	}
	testutil.DecodeJSON(t, body, &conversations)
	require.Len(t, conversations.Conversations, 1)
	require.NotNil(t, conversations.Conversations[0].LastMessage)
	assert.Equal(t, "welcome", conversations.Conversations[0].LastMessage.Content)
}

func TestAvailabilityOverlapFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	teacher := testutil.CreateTeacher(t, ts.DB)
	token := ts.TokenFor(t, teacher)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/availability", token, map[string]interface{}{
		"dayOfWeek": 1, "startTime": "09:00", "endTime": "10:00",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/availability", token, map[string]interface{}{
		"dayOfWeek": 1, "startTime": "09:30", "endTime": "10:30",
	})
	require.Equal(t, http.StatusConflict, res.StatusCode, body)

	var errBody apperrors.ErrorResponse
	testutil.DecodeJSON(t, body, &errBody)
	assert.Equal(t, apperrors.CodeConflict, errBody.Code)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/availability", token, map[string]interface{}{
		"dayOfWeek": 1, "startTime": "10:00", "endTime": "11:00",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/availability/teacher/%d", teacher.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var slots struct {
		Slots []dto.SlotResponse `json:"slots"`
	}
	testutil.DecodeJSON(t, body, &slots)
	require.Len(t, slots.Slots, 2)
	assert.Equal(t, "09:00", slots.Slots[0].StartTime)
	assert.Equal(t, "10:00", slots.Slots[1].StartTime)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/availability", token, map[string]interface{}{
		"dayOfWeek": 2, "startTime": "10:00", "endTime": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/availability", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.JSONEq(t, `{"deletedCount":2}`, body)
}
