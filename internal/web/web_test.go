//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/CourseNLPServer/internal/crp"
	"github.com/e-gun/CourseNLPServer/internal/lnch"
	"github.com/e-gun/CourseNLPServer/internal/prep"
	"github.com/e-gun/CourseNLPServer/internal/str"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testcorpus = []str.CorpusEntry{
	{ID: 1, Description: "python programming analysis"},
	{ID: 2, Description: "python programming web"},
	{ID: 3, Description: "web programming python analysis"},
	{ID: 4, Description: "design graphic photo"},
	{ID: 5, Description: "graphic design brand marketing"},
	{ID: 6, Description: "photo brand design"},
}

type fakestore struct {
	courses []str.CourseRecord
	err     error
}

func (f *fakestore) FetchDescriptions(ctx context.Context) ([]str.CorpusEntry, error) {
	return nil, f.err
}

func (f *fakestore) FetchCourses(ctx context.Context) ([]str.CourseRecord, error) {
	return f.courses, f.err
}

func testcourses(n int) []str.CourseRecord {
	cc := make([]str.CourseRecord, n)
	for i := range cc {
		cc[i] = str.CourseRecord{
			ID:    int64(i + 1),
			Title: "course " + string(rune('A'+i)),
			URL:   "https://example.org/c/" + string(rune('a'+i)),
		}
	}
	return cc
}

// testserver - a server reading a fresh corpus file and a fake store
func testserver(t *testing.T, courses int) *echo.Echo {
	t.Helper()

	// stored the way crp.Extract stores it
	norm := prep.Default()
	corpus := make([]str.CorpusEntry, len(testcorpus))
	for i, c := range testcorpus {
		corpus[i] = str.CorpusEntry{ID: c.ID, Description: norm.Line(c.Description)}
	}

	fn := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, crp.WriteCorpus(fn, corpus))

	saved := *lnch.Config
	t.Cleanup(func() {
		*lnch.Config = saved
		Store = nil
		Norm = nil
	})

	lnch.Config.CorpusFile = fn
	lnch.Config.MaxReqPerSec = 0
	lnch.Config.EchoLog = 0
	lnch.Config.Gzip = false
	lnch.Config.WorkerCount = 2

	Store = &fakestore{courses: testcourses(courses)}
	Norm = norm

	return NewEchoServer()
}

func serve(e *echo.Echo, method string, uri string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, uri, nil)
	} else {
		req = httptest.NewRequest(method, uri, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRtTopics(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodGet, "/api/topics/2/3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var topics [][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &topics))
	require.Len(t, topics, 2)
	for _, tp := range topics {
		assert.Len(t, tp, 3)
	}

	// same seed, same answer
	again := serve(e, http.MethodGet, "/api/topics/2/3", "")
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestRtTopicsBadParams(t *testing.T) {
	e := testserver(t, len(testcorpus))

	for _, u := range []string{"/api/topics/x/3", "/api/topics/2/-1", "/api/topics/2.5/3"} {
		rec := serve(e, http.MethodGet, u, "")
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "GET %s", u)
	}

	// more topics than terms is a fitting failure, not a client error
	rec := serve(e, http.MethodGet, "/api/topics/50/3", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRtTopicsMissingCorpus(t *testing.T) {
	e := testserver(t, len(testcorpus))
	lnch.Config.CorpusFile = filepath.Join(t.TempDir(), "nope.json")

	rec := serve(e, http.MethodGet, "/api/topics/2/3", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRtNeighbors(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodPost, "/api/neighbors/3", `{"text": "graphic design brand marketing"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var nn []str.NeighborJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nn))
	require.Len(t, nn, 3)
	assert.Equal(t, int64(5), nn[0].ID)
	assert.InDelta(t, 0.0, nn[0].Dist, 1e-9)
	for i := 1; i < len(nn); i++ {
		assert.LessOrEqual(t, nn[i-1].Dist, nn[i].Dist)
		assert.Contains(t, []int64{4, 6}, nn[i].ID)
	}
}

func TestRtNeighborsBadRequests(t *testing.T) {
	e := testserver(t, len(testcorpus))

	tt := []struct {
		uri  string
		body string
	}{
		{"/api/neighbors/3", `{}`},
		{"/api/neighbors/3", `{"text": 7}`},
		{"/api/neighbors/3", `{"text": `},
		{"/api/neighbors/three", `{"text": "python"}`},
	}
	for _, x := range tt {
		rec := serve(e, http.MethodPost, x.uri, x.body)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "POST %s %s", x.uri, x.body)
	}

	rec := serve(e, http.MethodPost, "/api/neighbors/99", `{"text": "python"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRtClusters(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodGet, "/api/clusters/2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pts []str.ClusterPointJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pts))
	require.Len(t, pts, len(testcorpus))
	for i, p := range pts {
		assert.GreaterOrEqual(t, p.Cluster, 0)
		assert.Less(t, p.Cluster, 2)
		assert.Equal(t, testcourses(len(testcorpus))[i].Title, p.Data.Title)
	}

	// the two topical groups end up apart
	assert.Equal(t, pts[0].Cluster, pts[1].Cluster)
	assert.Equal(t, pts[3].Cluster, pts[4].Cluster)
	assert.NotEqual(t, pts[0].Cluster, pts[3].Cluster)
}

func TestRtClustersDrift(t *testing.T) {
	e := testserver(t, 4)

	rec := serve(e, http.MethodGet, "/api/clusters/2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pts []str.ClusterPointJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pts))
	assert.Len(t, pts, 4)
}

func TestRtClustersStoreFailure(t *testing.T) {
	e := testserver(t, len(testcorpus))
	Store = &fakestore{err: errors.New("connection refused")}

	rec := serve(e, http.MethodGet, "/api/clusters/2", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(e, http.MethodGet, "/api/clusters/two", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRtClustersChart(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodGet, "/api/clusters/2/chart", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "echarts")
	assert.Contains(t, rec.Body.String(), "cluster 1")
}

func TestRtClustersScores(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodPost, "/api/clusters/scores", `{"numbers": [2, 3, 3]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var scores map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scores))
	require.Len(t, scores, 2)
	for _, k := range []string{"2", "3"} {
		require.Contains(t, scores, k)
		assert.GreaterOrEqual(t, scores[k], -1.0)
		assert.LessOrEqual(t, scores[k], 1.0)
	}
}

func TestRtClustersScoresBadRequests(t *testing.T) {
	e := testserver(t, len(testcorpus))

	for _, b := range []string{`{}`, `{"numbers": "2"}`, `[2, 3]`} {
		rec := serve(e, http.MethodPost, "/api/clusters/scores", b)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "POST %s", b)
	}

	// a single cluster cannot be scored
	rec := serve(e, http.MethodPost, "/api/clusters/scores", `{"numbers": [1]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSupportRoutes(t *testing.T) {
	e := testserver(t, len(testcorpus))

	serve(e, http.MethodGet, "/api/topics/2/3", "")

	rec := serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cns_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/topics/:topics_num/:top_words_num"`)
	assert.Contains(t, rec.Body.String(), "cns_model_fit_seconds")

	rec = serve(e, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/neighbors/{neighbors_num}")
}

func TestBadPathParamsAreClientErrors(t *testing.T) {
	e := testserver(t, len(testcorpus))

	rec := serve(e, http.MethodGet, "/api/clusters/two", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Contains(t, msg, "message")

	rec = serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cns_http_requests_total{code="400",route="/api/clusters/:clusters_num"}`)
}

func TestCORS(t *testing.T) {
	e := testserver(t, len(testcorpus))

	req := httptest.NewRequest(http.MethodGet, "/api/topics/2/3", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:8080")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestNonASCIIOutput(t *testing.T) {
	e := echo.New()
	e.JSONSerializer = GoccyJSONSerializer{}
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{"курс <b>"})
	})

	rec := serve(e, http.MethodGet, "/", "")
	assert.Equal(t, "[\"курс <b>\"]\n", rec.Body.String())
}
