package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/theme"
)

func newTestServer(t *testing.T, withAnalytics bool) (*server, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Mode = gin.TestMode

	logger := zap.NewNop()
	store, err := content.NewStore("", logger)
	require.NoError(t, err)

	var visits *analytics.Store
	if withAnalytics {
		cfg.DatabasePath = filepath.Join(t.TempDir(), "visits.db")
		visits, err = analytics.Open(cfg.DatabasePath, logger)
		require.NoError(t, err)
		t.Cleanup(func() { visits.Close() })
	}

	srv, err := newServer(cfg, logger, store, visits)
	require.NoError(t, err)
	return srv, srv.routes()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPagesRender(t *testing.T) {
	_, h := newTestServer(t, false)

	pages := map[string]string{
		"/":                      "Featured projects",
		"/about":                 "Experience",
		"/projects":              "Terminal Mail",
		"/blog":                  "Streaming a particle scene from Go",
		"/blog/streaming-scenes": "<strong>once</strong>",
		"/publications":          "Western Governors University",
		"/contact":               `name="subject"`,
		"/privacy":               "365 days",
		"/work-content":          "Presentation Expert",
		"/education-content":     "Bachelor of Computer Science",
		"/contact-form":          `hx-post="/contact"`,
	}
	for path, want := range pages {
		t.Run(path, func(t *testing.T) {
			w := do(h, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), want)
		})
	}
}

func TestPageCarriesSceneAndMotion(t *testing.T) {
	_, h := newTestServer(t, false)
	body := do(h, http.MethodGet, "/", "").Body.String()

	assert.Contains(t, body, `data-scene="home"`)
	assert.Contains(t, body, "linear-gradient(135deg")
	assert.Contains(t, body, "animation-delay: 0.35s")
}

func TestNotFound(t *testing.T) {
	_, h := newTestServer(t, false)

	w := do(h, http.MethodGet, "/blog/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), NotFoundMessage)

	w = do(h, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestThemeFromCookie(t *testing.T) {
	_, h := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: "dark"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `data-theme="dark"`)
}

func TestContactAPI(t *testing.T) {
	_, h := newTestServer(t, false)

	w := do(h, http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.com","subject":"S","message":"M"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var ok struct {
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, ok.Success)
	assert.NotEmpty(t, ok.Message)

	for _, body := range []string{
		`{"email":"a@b.com","subject":"S","message":"M"}`,
		`{"name":"A","email":"a@b.com","subject":"","message":"M"}`,
		`{"name":"A","email":"a@b","subject":"S","message":"M"}`,
	} {
		w := do(h, http.MethodPost, "/api/contact", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`, body)
	}
}

func TestContactForm(t *testing.T) {
	_, h := newTestServer(t, false)
	form := url.Values{"name": {"A"}, "email": {"a@b.com"}, "subject": {"S"}, "message": {"M"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="notice success"`)
}

func TestSceneAPI(t *testing.T) {
	_, h := newTestServer(t, false)

	w := do(h, http.MethodGet, "/api/scenes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []sceneSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, len(scene.Presets()))

	w = do(h, http.MethodGet, "/api/scenes/home", "")
	require.Equal(t, http.StatusOK, w.Code)
	var desc scene.Descriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	spec, err := scene.Lookup("home")
	require.NoError(t, err)
	require.Len(t, desc.Layers, len(spec.Layers))
	for i, l := range desc.Layers {
		assert.Equal(t, spec.Layers[i].Count, l.Count)
		assert.Len(t, l.Positions, 3*l.Count)
	}

	w = do(h, http.MethodGet, "/api/scenes/home?webgl=0", "")
	var degraded scene.Descriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &degraded))
	assert.True(t, degraded.Degraded)
	assert.Empty(t, degraded.Layers)

	w = do(h, http.MethodGet, "/api/scenes/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSceneFrameFollowsScroll(t *testing.T) {
	_, h := newTestServer(t, false)

	prev := float32(1e9)
	for _, scroll := range []int{0, 100, 500, 2000, 100000} {
		w := do(h, http.MethodGet, fmt.Sprintf("/api/scenes/projects/frame?t=1&scroll=%d", scroll), "")
		require.Equal(t, http.StatusOK, w.Code)
		var f scene.Frame
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
		y := f.Camera.Position.Y()
		assert.LessOrEqual(t, y, prev, "scroll %d", scroll)
		prev = y
	}

	for _, q := range []string{"t=-1", "t=abc", "scroll=x", "t=99999"} {
		w := do(h, http.MethodGet, "/api/scenes/home/frame?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestScenePoster(t *testing.T) {
	_, h := newTestServer(t, false)

	w := do(h, http.MethodGet, "/api/scenes/contact/poster.png?w=64&h=36", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	w = do(h, http.MethodGet, "/api/scenes/contact/poster.png?w=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimelineAPI(t *testing.T) {
	_, h := newTestServer(t, false)

	w := do(h, http.MethodGet, "/api/timelines", "")
	assert.JSONEq(t, `["cards","hero","list"]`, w.Body.String())

	w = do(h, http.MethodGet, "/api/timelines/hero", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tl struct {
		Name     string  `json:"name"`
		Duration float64 `json:"duration"`
		Steps    []struct {
			Target string `json:"target"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tl))
	assert.Equal(t, "hero", tl.Name)
	assert.Positive(t, tl.Duration)
	assert.NotEmpty(t, tl.Steps)

	w = do(h, http.MethodGet, "/api/timelines/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiveScene(t *testing.T) {
	_, h := newTestServer(t, false)
	ts := httptest.NewServer(h)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/scenes/about/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))

	var mount liveMessage
	require.NoError(t, conn.ReadJSON(&mount))
	require.Equal(t, "mount", mount.Type)
	require.NotNil(t, mount.Scene)
	assert.Equal(t, "about", mount.Scene.Name)
	assert.NotEmpty(t, mount.Scene.Layers)

	require.NoError(t, conn.WriteJSON(map[string]float64{"scroll": 800}))
	for {
		var msg liveMessage
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, "frame", msg.Type)
		require.NotNil(t, msg.Frame)
		if msg.Frame.Scroll == 800 {
			assert.Len(t, msg.Frame.Layers, len(mount.Scene.Layers))
			break
		}
	}
}

func TestLiveSceneDegraded(t *testing.T) {
	_, h := newTestServer(t, false)
	ts := httptest.NewServer(h)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/scenes/home/live?webgl=0"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var mount liveMessage
	require.NoError(t, conn.ReadJSON(&mount))
	assert.True(t, mount.Scene.Degraded)
}

func TestAdminLogin(t *testing.T) {
	srv, h := newTestServer(t, true)

	w := do(h, http.MethodGet, "/admin/dashboard", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	login := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w = login("admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = login(srv.cfg.Admin.Username, srv.cfg.Admin.Password)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, adminCookie, cookies[0].Name)

	for _, path := range []string{"/admin/dashboard", "/admin/visitors", "/admin/api/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestPageViewsRecorded(t *testing.T) {
	srv, h := newTestServer(t, true)
	do(h, http.MethodGet, "/projects", "")
	do(h, http.MethodGet, "/api/scenes", "")

	assert.Eventually(t, func() bool {
		visits, err := srv.visits.Recent(t.Context(), 10)
		return err == nil && len(visits) == 1 && visits[0].Path == "/projects"
	}, 2*time.Second, 20*time.Millisecond)
}
