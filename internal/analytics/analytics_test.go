package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "analytics.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTest(t)
	a := s.HashIP("10.0.0.1")
	assert.Len(t, a, 16)
	assert.Equal(t, a, s.HashIP("10.0.0.1"))
	assert.NotEqual(t, a, s.HashIP("10.0.0.2"))
	assert.NotContains(t, a, "10.0.0.1")
}

func TestRecordAndStats(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/about"))
	s.now = func() time.Time { return now.Add(-2 * 24 * time.Hour) }
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.Record(ctx, "2.2.2.2", "ua", "/"))
	require.NoError(t, s.Record(ctx, "3.3.3.3", "ua", "/blog"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisits)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitsToday)
	assert.Equal(t, int64(3), stats.VisitsThisWeek)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathStat{Path: "/", Visits: 2}, stats.TopPaths[0])
	require.Len(t, stats.RecentVisits, 4)
	assert.Equal(t, now, stats.RecentVisits[0].Timestamp)
	assert.Equal(t, "/about", stats.RecentVisits[3].Path)
}

func TestCleanup(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.AddDate(-2, 0, 0) }
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/old"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.Record(ctx, "1.1.1.1", "ua", "/new"))

	n, err := s.Cleanup(ctx, DefaultRetention)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "/new", visits[0].Path)
}

func TestMiddleware(t *testing.T) {
	s := openTest(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(s, zap.NewNop()))
	r.GET("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct {
		path string
		dnt  bool
	}{
		{"/", false},
		{"/static/site.css", false},
		{"/api/scenes", false},
		{"/about", true},
		{"/projects", false},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.dnt {
			req.Header.Set("DNT", "1")
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Eventually(t, func() bool {
		visits, err := s.Recent(context.Background(), 10)
		return err == nil && len(visits) == 2
	}, 2*time.Second, 20*time.Millisecond)

	visits, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	paths := []string{visits[0].Path, visits[1].Path}
	assert.ElementsMatch(t, []string{"/", "/projects"}, paths)
}

func TestTracked(t *testing.T) {
	assert.True(t, Tracked("/blog/streaming-scenes"))
	assert.False(t, Tracked("/admin/dashboard"))
	assert.False(t, Tracked("/favicon.ico"))
}
