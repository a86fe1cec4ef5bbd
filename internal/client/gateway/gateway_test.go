package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batorigb/kinotv/internal/client/models"
	"github.com/batorigb/kinotv/internal/common"
	"github.com/batorigb/kinotv/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := Config{
		Endpoint:              srv.URL,
		ProjectID:             "proj-1",
		DatabaseID:            "kinotv",
		MoviesCollectionID:    "movies",
		MetricsCollectionID:   "metrics",
		PurchasesCollectionID: "purchases",
		UsersCollectionID:     "users",
	}
	return New(cfg, logging.NewNopLogger())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func TestRequestHeaders(t *testing.T) {
	var gotProject, gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProject = r.Header.Get("X-Project-Id")
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, `{"total":0,"documents":[]}`)
	}))
	c.SetSession("tok-123")

	_, err := c.LatestMovies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "proj-1", gotProject)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestMovieByID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/kinotv/collections/movies/documents/m1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, `{
			"$id":"m1","title":"Аварга","type":"series","price":5000,
			"streamUrl":"https://cdn.example/m1.m3u8",
			"episodeUrl":["https://cdn.example/m1e1.m3u8","https://cdn.example/m1e2.m3u8"]
		}`)
	}))

	movie, err := c.MovieByID(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, "Аварга", movie.Title)
	assert.True(t, movie.IsSeries())
	assert.Equal(t, int64(5000), movie.Price)
	assert.Len(t, movie.EpisodeURLs, 2)
}

func TestMovieByID_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"code":404,"type":"document_not_found","message":"not found"}`)
	}))

	_, err := c.MovieByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMovieByID_MissingRequiredFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"price":5000}`)
	}))

	_, err := c.MovieByID(context.Background(), "m1")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestSearchMovies_QueryEncoding(t *testing.T) {
	var queries []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = r.URL.Query()["queries[]"]
		writeJSON(t, w, http.StatusOK, `{"total":1,"documents":[{"$id":"m1","title":"Аварга"}]}`)
	}))

	movies, err := c.SearchMovies(context.Background(), "аварга")
	require.NoError(t, err)

	require.Len(t, movies, 1)
	require.Len(t, queries, 1)
	assert.JSONEq(t, `{"method":"search","attribute":"title","values":["аварга"]}`, queries[0])
}

func TestLatestMovies_OrderedByCreation(t *testing.T) {
	var queries []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = r.URL.Query()["queries[]"]
		writeJSON(t, w, http.StatusOK, `{"total":0,"documents":[]}`)
	}))

	_, err := c.LatestMovies(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, queries)
	assert.JSONEq(t, `{"method":"orderDesc","attribute":"$createdAt"}`, queries[0])
}

func TestPurchasesByUser_ServerSideFilter(t *testing.T) {
	var queries []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = r.URL.Query()["queries[]"]
		writeJSON(t, w, http.StatusOK, `{"total":2,"documents":[
			{"$id":"p1","userId":"u1","movieId":"ALL_ACCESS_SUBSCRIPTION","status":"PAID","expiresAt":"2027-01-01T00:00:00Z"},
			{"$id":"p2","userId":"u1","movieId":"m1","status":"PAID","expiresAt":"2027-01-01T00:00:00Z"}
		]}`)
	}))

	purchases, err := c.PurchasesByUser(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, queries, 3)
	assert.JSONEq(t, `{"method":"equal","attribute":"userId","values":["u1"]}`, queries[0])
	assert.JSONEq(t, `{"method":"equal","attribute":"status","values":["PAID"]}`, queries[1])
	var gt Query
	require.NoError(t, json.Unmarshal([]byte(queries[2]), &gt))
	assert.Equal(t, "greaterThan", gt.Method)
	assert.Equal(t, "expiresAt", gt.Attribute)

	require.Len(t, purchases, 2)
	assert.Equal(t, models.TargetBundle, purchases[0].Target.Kind)
	assert.Equal(t, models.TierPremium, purchases[0].Target.Tier, "legacy sentinel maps to premium")
	assert.Equal(t, models.TargetContent, purchases[1].Target.Kind)
	assert.Equal(t, "m1", purchases[1].Target.ContentID)
}

func TestRecordSearchHit_NewTerm(t *testing.T) {
	var created map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, `{"total":0,"documents":[]}`)
		case http.MethodPost:
			var req createDocumentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			created, _ = req.Data.(map[string]any)
			writeJSON(t, w, http.StatusCreated, `{"$id":"new"}`)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	movie := models.Movie{ID: "m1", Title: "Аварга", PosterURL: "https://cdn.example/m1.jpg"}
	require.NoError(t, c.RecordSearchHit(context.Background(), "аварга", movie))

	require.NotNil(t, created)
	assert.Equal(t, "аварга", created["searchTerm"])
	assert.Equal(t, float64(1), created["count"])
	assert.Equal(t, "m1", created["movie_id"])
	assert.Equal(t, "https://cdn.example/m1.jpg", created["poster_url"])
}

func TestRecordSearchHit_ExistingTermIncrements(t *testing.T) {
	var patchedPath string
	var patched map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, `{"total":1,"documents":[
				{"$id":"metric-7","searchTerm":"аварга","count":4,"movie_id":"m1"}
			]}`)
		case http.MethodPatch:
			patchedPath = r.URL.Path
			var req updateDocumentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			patched, _ = req.Data.(map[string]any)
			writeJSON(t, w, http.StatusOK, `{"$id":"metric-7"}`)
		case http.MethodPost:
			t.Fatal("existing term must not create a new row")
		}
	}))

	require.NoError(t, c.RecordSearchHit(context.Background(), "аварга", models.Movie{ID: "m1"}))

	assert.Equal(t, "/v1/databases/kinotv/collections/metrics/documents/metric-7", patchedPath)
	require.NotNil(t, patched)
	assert.Equal(t, float64(5), patched["count"])
}

func TestTrendingMovies_AggregatesAcrossTerms(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries := r.URL.Query()["queries[]"]
		require.Len(t, queries, 2)
		assert.JSONEq(t, `{"method":"orderDesc","attribute":"count"}`, queries[0])
		assert.JSONEq(t, `{"method":"limit","values":[25]}`, queries[1])
		writeJSON(t, w, http.StatusOK, `{"total":3,"documents":[
			{"$id":"a","searchTerm":"аварга","count":3,"movie_id":"X","title":"X"},
			{"$id":"b","searchTerm":"аврага","count":2,"movie_id":"X","title":"X"},
			{"$id":"c","searchTerm":"шорон","count":10,"movie_id":"Y","title":"Y"}
		]}`)
	}))

	trending, err := c.TrendingMovies(context.Background())
	require.NoError(t, err)

	require.Len(t, trending, 2)
	assert.Equal(t, "Y", trending[0].MovieID)
	assert.Equal(t, 10, trending[0].Count)
	assert.Equal(t, "X", trending[1].MovieID)
	assert.Equal(t, 5, trending[1].Count, "counts summed across term variants")
}

func TestAggregateTrending_Truncates(t *testing.T) {
	metrics := make([]models.SearchMetric, 0, 8)
	for i := 0; i < 8; i++ {
		metrics = append(metrics, models.SearchMetric{
			MovieID: fmt.Sprintf("m%d", i),
			Count:   8 - i,
		})
	}

	top := aggregateTrending(metrics, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "m0", top[0].MovieID)
	assert.Equal(t, "m4", top[4].MovieID)
}

func TestExecuteJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/functions/fn-1/executions", r.URL.Path)
		var req executionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `{"ping":"pong"}`, req.Body)
		writeJSON(t, w, http.StatusCreated, `{"status":"completed","responseBody":"{\"ok\":true}"}`)
	}))

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.ExecuteJSON(context.Background(), "fn-1", map[string]string{"ping": "pong"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestExecuteJSON_FailedExecution(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, `{"status":"failed","errors":"function crashed"}`)
	}))

	err := c.ExecuteJSON(context.Background(), "fn-1", nil, nil)
	var ee *ExecutionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "fn-1", ee.FunctionID)
	assert.Contains(t, ee.Error(), "function crashed")
}

func TestExecuteJSON_MalformedResponseBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, `{"status":"completed","responseBody":"<html>oops</html>"}`)
	}))

	var out map[string]any
	err := c.ExecuteJSON(context.Background(), "fn-1", nil, &out)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestCreateSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/account/sessions", r.URL.Path)
		var req createSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bat@kinotv.mn", req.Email)
		writeJSON(t, w, http.StatusCreated, `{"token":"tok-9","userId":"u1"}`)
	}))

	sess, err := c.CreateSession(context.Background(), "bat@kinotv.mn", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "tok-9", c.Session(), "token installed for subsequent requests")
}

func TestCreateSession_BadCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, `{"code":401,"type":"user_invalid_credentials","message":"Invalid credentials"}`)
	}))

	_, err := c.CreateSession(context.Background(), "bat@kinotv.mn", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Empty(t, c.Session())
}

func TestCreateSession_TokenMissing(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusCreated, `{"userId":"u1"}`)
	}))

	_, err := c.CreateSession(context.Background(), "bat@kinotv.mn", "secret")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestCurrentUser_JoinsProfile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/account":
			writeJSON(t, w, http.StatusOK, `{"$id":"u1","name":"Bat","email":"99112233@kinotv.mn"}`)
		case "/v1/databases/kinotv/collections/users/documents/u1":
			writeJSON(t, w, http.StatusOK, `{"name":"Bat","phone":"99112233","registrationId":"УК00112233"}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "99112233", user.Phone)
	assert.Equal(t, "УК00112233", user.RegistrationID)
}

func TestCurrentUser_MissingProfileTolerated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/account" {
			writeJSON(t, w, http.StatusOK, `{"$id":"u1","name":"Bat","email":"99112233@kinotv.mn"}`)
			return
		}
		writeJSON(t, w, http.StatusNotFound, `{"code":404,"type":"document_not_found","message":"not found"}`)
	}))

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.Phone)
}

func TestDeleteSession(t *testing.T) {
	var method, path string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	c.SetSession("tok")

	require.NoError(t, c.DeleteSession(context.Background()))

	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/v1/account/sessions/current", path)
	assert.Empty(t, c.Session())
}

func TestDeleteSession_FailureKeepsToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, `{"code":500,"type":"general_unknown","message":"boom"}`)
	}))
	c.SetSession("tok")

	err := c.DeleteSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, "tok", c.Session())
}

func TestPlatformErrorEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusTooManyRequests, `{"code":429,"type":"general_rate_limit_exceeded","message":"Rate limit exceeded"}`)
	}))

	_, err := c.LatestMovies(context.Background())
	var pe *PlatformError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 429, pe.Code)
	assert.Equal(t, "general_rate_limit_exceeded", pe.Type)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	cfg := Config{Endpoint: srv.URL, ProjectID: "proj-1", DatabaseID: "kinotv", MoviesCollectionID: "movies"}
	c := New(cfg, logging.NewNopLogger())
	srv.Close()

	_, err := c.LatestMovies(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}
