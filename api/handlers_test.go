package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-emoji-video/internal/engine"
	"github.com/gcbaptista/go-emoji-video/internal/sequence"
	testutil "github.com/gcbaptista/go-emoji-video/internal/testing"
	"github.com/gcbaptista/go-emoji-video/model"
)

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	SetupRoutes(router, eng)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// searchPath builds a /search URL with an escaped keyword and optional extra query.
func searchPath(keyword, extra string) string {
	path := "/search?q=" + url.QueryEscape(keyword)
	if extra != "" {
		path += "&" + extra
	}
	return path
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr), "body: %s", w.Body.String())
	return apiErr
}

func TestHealthCheckHandler(t *testing.T) {
	eng := testutil.CreateFixtureEngine(t)
	router := setupTestRouter(eng)

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["lexicon_loaded"], "health checks do not load the lexicon")

	require.NoError(t, eng.Load())
	w = doRequest(t, router, http.MethodGet, "/health", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["lexicon_loaded"])
}

func TestTokenizeHandler(t *testing.T) {
	router := setupTestRouter(testutil.CreateFixtureEngine(t))

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   ErrorCode
		expectedTokens []string
	}{
		{
			name:           "phrases and characters",
			body:           TextRequest{Text: "中秋节快乐，我的手机"},
			expectedStatus: http.StatusOK,
			expectedTokens: []string{"中秋节", "快", "乐", "我", "的", "手机"},
		},
		{
			name:           "empty text",
			body:           TextRequest{Text: ""},
			expectedStatus: http.StatusOK,
			expectedTokens: []string{},
		},
		{
			name:           "blank text",
			body:           TextRequest{Text: "   "},
			expectedStatus: http.StatusOK,
			expectedTokens: []string{},
		},
		{
			name:           "punctuation only",
			body:           TextRequest{Text: "!!! ..."},
			expectedStatus: http.StatusOK,
			expectedTokens: []string{},
		},
		{
			name:           "malformed json",
			body:           `{"text": `,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/tokenize", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Code)
				return
			}
			var body struct {
				Tokens []string `json:"tokens"`
				Count  int      `json:"count"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedTokens, body.Tokens)
			assert.Equal(t, len(tt.expectedTokens), body.Count)
		})
	}
}

func TestSearchHandler(t *testing.T) {
	router := setupTestRouter(testutil.CreateFixtureEngine(t))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedIDs    []string
		expectedTotal  int
	}{
		{"exact then containing", searchPath("猫", ""), http.StatusOK, []string{testutil.CatID, testutil.KittyID}, 2},
		{"limit caps after counting", searchPath("猫", "limit=1"), http.StatusOK, []string{testutil.CatID}, 2},
		{"case insensitive", searchPath("CAT", ""), http.StatusOK, []string{testutil.CatID}, 1},
		{"empty keyword", searchPath("", ""), http.StatusOK, []string{}, 0},
		{"no match", searchPath("鲸鱼", ""), http.StatusOK, []string{}, 0},
		{"negative limit", searchPath("猫", "limit=-1"), http.StatusBadRequest, nil, 0},
		{"non numeric limit", searchPath("猫", "limit=abc"), http.StatusBadRequest, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, ErrorCodeValidationFailed, decodeError(t, w).Code)
				return
			}
			var result model.SearchResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, tt.expectedIDs, result.Identifiers)
			assert.Equal(t, tt.expectedTotal, result.Total)
			assert.NotEmpty(t, result.QueryId)
		})
	}
}

func TestProcessHandler(t *testing.T) {
	eng := testutil.CreateFixtureEngine(t)
	router := setupTestRouter(eng)

	t.Run("synchronous", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/process", TextRequest{Text: "中秋节快乐我的手机"})
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var processed model.ProcessedText
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &processed))
		assert.Equal(t, []string{"中秋节", "快", "乐", "我", "的", "手机"}, processed.Words())
		assert.Equal(t, []string{testutil.MooncakeID, testutil.MoonID}, processed.Tokens[0].Candidates)
		assert.Equal(t, []string{testutil.PhoneID}, processed.Tokens[5].Candidates)
		assert.Equal(t, 4, processed.Unmatched)
		assert.Equal(t, 9, processed.TotalChars)
	})

	t.Run("asynchronous", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/process", TextRequest{Text: "我的手机", Async: true})
		require.Equal(t, http.StatusAccepted, w.Code, "body: %s", w.Body.String())

		var accepted map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
		jobID := accepted["job_id"]
		require.NotEmpty(t, jobID)
		assert.Equal(t, "/jobs/"+jobID, accepted["status_url"])

		testutil.WaitForJobCompletion(t, eng.JobManager(), jobID)

		w = doRequest(t, router, http.MethodGet, "/jobs/"+jobID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var job model.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		assert.Equal(t, model.JobTypeProcessText, job.Type)
		assert.NotNil(t, job.Result)
	})

	t.Run("text without words", func(t *testing.T) {
		for _, async := range []bool{false, true} {
			for _, text := range []string{"！？…", "", "   "} {
				w := doRequest(t, router, http.MethodPost, "/process", TextRequest{Text: text, Async: async})
				require.Equal(t, http.StatusBadRequest, w.Code, "text=%q async=%v body: %s", text, async, w.Body.String())

				apiErr := decodeError(t, w)
				assert.Equal(t, ErrorCodeValidationFailed, apiErr.Code)
				require.Len(t, apiErr.Details, 1)
				assert.Equal(t, "text", apiErr.Details[0].Field)
			}
		}
	})
}

func TestSequenceHandler(t *testing.T) {
	router := setupTestRouter(testutil.CreateFixtureEngine(t))

	t.Run("cycles candidates per character", func(t *testing.T) {
		req := SequenceRequest{
			Tokens:     []string{"中秋节", "快"},
			Selections: [][]string{{testutil.MooncakeID, testutil.MoonID}, {}},
			CharCounts: []int{3, 1},
		}
		w := doRequest(t, router, http.MethodPost, "/sequence", req)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		var seq model.Sequence
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seq))
		assert.Equal(t, []string{testutil.MooncakeID, testutil.MoonID, testutil.MooncakeID, ""}, seq.Identifiers())
		assert.Equal(t, 3, seq.Matched)
		assert.False(t, seq.AllNoMatch)
		assert.Empty(t, seq.Warning)
	})

	t.Run("nothing matched is a warning, not an error", func(t *testing.T) {
		req := SequenceRequest{
			Tokens:     []string{"快", "乐"},
			Selections: [][]string{{}, {}},
			CharCounts: []int{1, 1},
		}
		w := doRequest(t, router, http.MethodPost, "/sequence", req)
		require.Equal(t, http.StatusOK, w.Code)

		var seq model.Sequence
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seq))
		assert.True(t, seq.AllNoMatch)
		assert.Equal(t, sequence.AllNoMatchWarning, seq.Warning)
	})

	tests := []struct {
		name          string
		req           SequenceRequest
		expectedField string
	}{
		{
			name:          "no tokens",
			req:           SequenceRequest{},
			expectedField: "tokens",
		},
		{
			name:          "selections length mismatch",
			req:           SequenceRequest{Tokens: []string{"猫"}, CharCounts: []int{1}},
			expectedField: "selections",
		},
		{
			name:          "negative character count",
			req:           SequenceRequest{Tokens: []string{"猫"}, Selections: [][]string{{testutil.CatID}}, CharCounts: []int{-1}},
			expectedField: "char_counts",
		},
		{
			name:          "empty identifier",
			req:           SequenceRequest{Tokens: []string{"猫"}, Selections: [][]string{{""}}, CharCounts: []int{1}},
			expectedField: "selections",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/sequence", tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())

			apiErr := decodeError(t, w)
			assert.Equal(t, ErrorCodeValidationFailed, apiErr.Code)
			require.NotEmpty(t, apiErr.Details)
			assert.Equal(t, tt.expectedField, apiErr.Details[0].Field)
		})
	}
}

func TestPictogramHandler(t *testing.T) {
	settings := testutil.WriteFixtureLexicon(t)
	testutil.WriteAsset(t, settings, testutil.CatID)
	router := setupTestRouter(testutil.CreateTestEngine(t, settings))

	t.Run("known with asset", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/pictograms/"+testutil.CatID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p model.Pictogram
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, testutil.CatID, p.Identifier)
		assert.Equal(t, []string{"猫", "小猫", "Cat"}, p.Keywords)
		assert.True(t, p.AssetExists)
		assert.Equal(t, filepath.Join(settings.Assets.Dir, "U+1F431", "U+1F431.gif"), p.AssetPath)
	})

	t.Run("known without asset", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/pictograms/"+testutil.HeartID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p model.Pictogram
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "\u2764\uFE0F", p.Glyph)
		assert.False(t, p.AssetExists)
	})

	t.Run("unknown", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/pictograms/1F999", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, ErrorCodePictogramNotFound, decodeError(t, w).Code)
	})

	t.Run("malformed", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/pictograms/zz", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrorCodeValidationFailed, decodeError(t, w).Code)
	})
}

func TestLexiconHandlers(t *testing.T) {
	eng := testutil.CreateFixtureEngine(t)
	router := setupTestRouter(eng)

	w := doRequest(t, router, http.MethodGet, "/lexicon/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats model.LexiconStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 8, stats.Glyphs)
	assert.Equal(t, 5, stats.TwoPhrases)
	assert.Equal(t, 1, stats.ThreePhrases)

	w = doRequest(t, router, http.MethodPost, "/lexicon/_reload", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	var accepted map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))

	job := testutil.WaitForJobCompletion(t, eng.JobManager(), accepted["job_id"])
	testutil.AssertJobCompleted(t, job, model.JobTypeReloadLexicon)
}

func TestLexiconUnavailable(t *testing.T) {
	settings := testutil.WriteFixtureLexicon(t)
	settings.Lexicon.Path = filepath.Join(t.TempDir(), "missing.json")
	router := setupTestRouter(testutil.CreateTestEngine(t, settings))

	for _, path := range []string{searchPath("猫", ""), "/lexicon/stats", "/pictograms/" + testutil.CatID} {
		w := doRequest(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Equal(t, ErrorCodeLexiconUnavailable, decodeError(t, w).Code)
	}

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health stays up without a lexicon")
}

func TestJobHandlers(t *testing.T) {
	router := setupTestRouter(testutil.CreateFixtureEngine(t))

	w := doRequest(t, router, http.MethodGet, "/jobs/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeJobNotFound, decodeError(t, w).Code)

	w = doRequest(t, router, http.MethodGet, "/jobs?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/jobs?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/jobs/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Contains(t, metrics, "metrics")
	assert.Contains(t, metrics, "success_rate")
	assert.Contains(t, metrics, "current_workload")
}

func TestGetAnalyticsHandler(t *testing.T) {
	eng := testutil.CreateFixtureEngine(t)
	router := setupTestRouter(eng)

	doRequest(t, router, http.MethodGet, searchPath("猫", ""), nil)
	doRequest(t, router, http.MethodGet, searchPath("鲸鱼", ""), nil)

	w := doRequest(t, router, http.MethodGet, "/analytics?top=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard model.AnalyticsDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 2, dashboard.TotalSearches)
	assert.InDelta(t, 0.5, dashboard.MatchRate, 1e-9)
	require.Len(t, dashboard.UnmatchedKeywords, 1)
	assert.Equal(t, "鲸鱼", dashboard.UnmatchedKeywords[0].Keyword)

	w = doRequest(t, router, http.MethodGet, "/analytics?top=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	gin.SetMode(gin.TestMode)
	bare := gin.New()
	bare.GET("/analytics", NewAPI(eng, nil, nil).GetAnalyticsHandler)
	w = doRequest(t, bare, http.MethodGet, "/analytics", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRequestIDOnErrors(t *testing.T) {
	router := setupTestRouter(testutil.CreateFixtureEngine(t))

	req, err := http.NewRequest(http.MethodGet, "/pictograms/1F999", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
	assert.Equal(t, "req-42", decodeError(t, w).RequestID)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req, err := http.NewRequest(http.MethodOptions, "/ping", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
