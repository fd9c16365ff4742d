package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionResponse struct {
	ID             string  `json:"id"`
	HostID         string  `json:"hostId"`
	GuestID        string  `json:"guestId"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	Status         string  `json:"status"`
	AvailabilityID *string `json:"availabilityId"`
}

func TestSessionsHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	_, hostToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	guest, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	start := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Hour)

	t.Run("missing fields", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/sessions"), map[string]any{
			"guestId": guest.ID.String(),
			"title":   "No times",
		}, hostToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("direct session is scheduled immediately", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/sessions"), map[string]any{
			"guestId": guest.ID.String(),
			"title":   "Pairing",
			"startAt": start.Format(time.RFC3339),
			"endAt":   start.Add(time.Hour).Format(time.RFC3339),
		}, hostToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var session sessionResponse
		testutil.AssertJSONResponse(t, resp, &session)
		assert.Equal(t, string(domain.SessionStatusScheduled), session.Status)
		assert.Nil(t, session.AvailabilityID)
	})
}

// TestSessionsHandler_BookingFlow walks the slot booking lifecycle over
// HTTP: two guests request the same slot, the mentor accepts one, the
// other is rejected, then the winner cancels and frees the slot.
func TestSessionsHandler_BookingFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	mentor, mentorToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, guest1Token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, guest2Token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// Mentor publishes a slot.
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/availability"), map[string]any{
		"date":      time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		"startTime": "14:00",
		"endTime":   "15:00",
	}, mentorToken)
	resp, err := client.Do(req)
	require.NoError(t, err)
	var slot struct {
		ID       string `json:"id"`
		IsBooked bool   `json:"isBooked"`
	}
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.AssertJSONResponse(t, resp, &slot)
	resp.Body.Close()

	requestSession := func(token string, minutes int) sessionResponse {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/sessions/requests"), map[string]any{
			"mentorId":        mentor.ID.String(),
			"availabilityId":  slot.ID,
			"title":           "Mentoring",
			"durationMinutes": minutes,
		}, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var session sessionResponse
		testutil.AssertJSONResponse(t, resp, &session)
		return session
	}

	first := requestSession(guest1Token, 30)
	second := requestSession(guest2Token, 40)
	assert.Equal(t, string(domain.SessionStatusPending), first.Status)
	assert.Equal(t, string(domain.SessionStatusPending), second.Status)

	t.Run("invalid duration", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/sessions/requests"), map[string]any{
			"mentorId":        mentor.ID.String(),
			"availabilityId":  slot.ID,
			"title":           "Too short",
			"durationMinutes": 20,
		}, guest1Token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("guest cannot accept", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/sessions/"+first.ID+"/accept"), nil, guest1Token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("mentor accepts the first request", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost,
			ts.APIURL("/sessions/"+first.ID+"/accept"), nil, mentorToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var session sessionResponse
		testutil.AssertJSONResponse(t, resp, &session)
		assert.Equal(t, string(domain.SessionStatusScheduled), session.Status)
	})

	t.Run("the competing request was rejected", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/sessions"), nil, guest2Token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var sessions []sessionResponse
		testutil.AssertJSONResponse(t, resp, &sessions)
		require.Len(t, sessions, 1)
		assert.Equal(t, string(domain.SessionStatusRejected), sessions[0].Status)
	})

	t.Run("the slot is booked", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet,
			ts.APIURL("/availability?includeBooked=true"), nil, mentorToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var slots []struct {
			ID       string `json:"id"`
			IsBooked bool   `json:"isBooked"`
		}
		testutil.AssertJSONResponse(t, resp, &slots)
		require.Len(t, slots, 1)
		assert.True(t, slots[0].IsBooked)
	})

	t.Run("guest cancels and the slot is released", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete,
			ts.APIURL("/sessions?id="+first.ID), nil, guest1Token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/availability"), nil, mentorToken)
		resp, err = client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var slots []struct {
			ID       string `json:"id"`
			IsBooked bool   `json:"isBooked"`
		}
		testutil.AssertJSONResponse(t, resp, &slots)
		require.Len(t, slots, 1)
		assert.False(t, slots[0].IsBooked)
	})
}

func TestSessionsHandler_Patch(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	host, hostToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	guest, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	session := testutil.NewSessionBuilder().
		WithHost(host).
		WithGuest(guest).
		WithStatus(domain.SessionStatusScheduled).
		Build(t, ts.DB.DB)

	patch := func(body map[string]any) *http.Response {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/sessions"), body, hostToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("unknown status", func(t *testing.T) {
		resp := patch(map[string]any{"id": session.ID.String(), "status": "archived"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("pending is not a reachable target", func(t *testing.T) {
		resp := patch(map[string]any{"id": session.ID.String(), "status": "pending"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("completes a scheduled session", func(t *testing.T) {
		resp := patch(map[string]any{"id": session.ID.String(), "status": "completed"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var got sessionResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, string(domain.SessionStatusCompleted), got.Status)
	})

	t.Run("terminal sessions refuse transitions", func(t *testing.T) {
		resp := patch(map[string]any{"id": session.ID.String(), "status": "cancelled"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}
