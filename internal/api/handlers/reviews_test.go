package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewsHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.Server.Client()

	author, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	matched, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	unmatched, _ := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	testutil.SeedMatch(t, ts.DB.DB, author.ID, matched.ID, domain.MatchStatusAccepted)

	post := func(body map[string]any, token string) *http.Response {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/reviews"), body, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("requires authentication", func(t *testing.T) {
		resp := post(map[string]any{"targetId": matched.ID.String(), "rating": 5}, "")
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "No autenticado")
	})

	t.Run("self review", func(t *testing.T) {
		resp := post(map[string]any{"targetId": author.ID.String(), "rating": 5}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("unknown target", func(t *testing.T) {
		resp := post(map[string]any{"targetId": uuid.New().String(), "rating": 5}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("no accepted match", func(t *testing.T) {
		resp := post(map[string]any{"targetId": unmatched.ID.String(), "rating": 5}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("rating out of range", func(t *testing.T) {
		resp := post(map[string]any{"targetId": matched.ID.String(), "rating": 6}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("creates a review", func(t *testing.T) {
		resp := post(map[string]any{"targetId": matched.ID.String(), "rating": 4, "comment": "Solid"}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var review struct {
			Rating   int    `json:"rating"`
			AuthorID string `json:"authorId"`
		}
		testutil.AssertJSONResponse(t, resp, &review)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, author.ID.String(), review.AuthorID)
	})

	t.Run("duplicate review", func(t *testing.T) {
		resp := post(map[string]any{"targetId": matched.ID.String(), "rating": 2}, token)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("list with average", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet,
			ts.APIURL("/reviews?targetId="+matched.ID.String()), nil, token)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			Reviews       []any   `json:"reviews"`
			AverageRating float64 `json:"averageRating"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Len(t, result.Reviews, 1)
		assert.Equal(t, 4.0, result.AverageRating)
	})
}
