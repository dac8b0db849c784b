package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/scene"
	"github.com/Zachkp/portfolio/internal/timeline"
)

const (
	maxPosterSide  = 2400
	maxFrameTime   = 3600.0
	liveWriteWait  = 5 * time.Second
	liveReadLimit  = 1 << 10
	liveFrameQueue = 1
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// liveMessage is a server-to-client message on the scene socket.
type liveMessage struct {
	Type  string            `json:"type"`
	Scene *scene.Descriptor `json:"scene,omitempty"`
	Frame *scene.Frame      `json:"frame,omitempty"`
}

// viewportMessage is a client-to-server message carrying the scroll signal.
type viewportMessage struct {
	Scroll *float64 `json:"scroll"`
}

type sceneSummary struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Background string `json:"background"`
}

func (s *server) sceneRoutes(api *gin.RouterGroup) {
	api.GET("/scenes", func(c *gin.Context) {
		out := make([]sceneSummary, 0)
		for _, name := range scene.Presets() {
			spec, _ := scene.Lookup(name)
			out = append(out, sceneSummary{Name: name, Title: spec.Title, Background: spec.Background.CSS()})
		}
		c.JSON(http.StatusOK, out)
	})

	scenes := api.Group("/scenes/:name")
	scenes.Use(s.lookupScene)
	scenes.GET("", func(c *gin.Context) {
		sc := s.mount(c)
		defer sc.Unmount()
		c.JSON(http.StatusOK, sc.Descriptor())
	})
	scenes.GET("/frame", func(c *gin.Context) {
		at, scroll, ok := frameParams(c)
		if !ok {
			return
		}
		sc := s.mount(c)
		defer sc.Unmount()
		sc.Scroll().Set(scroll)
		var frame scene.Frame
		sc.Emit(func(f scene.Frame) { frame = f })
		sc.Step(at)
		c.JSON(http.StatusOK, frame)
	})
	scenes.GET("/poster.png", func(c *gin.Context) {
		at, scroll, ok := frameParams(c)
		if !ok {
			return
		}
		w, okW := intParam(c, "w", s.cfg.Scene.PosterWidth, 1, maxPosterSide)
		h, okH := intParam(c, "h", s.cfg.Scene.PosterHeight, 1, maxPosterSide)
		if !okW || !okH {
			c.JSON(http.StatusBadRequest, gin.H{"error": "w and h must be between 1 and 2400"})
			return
		}
		sc := s.mount(c)
		defer sc.Unmount()
		sc.Scroll().Set(scroll)
		sc.Step(at)
		c.Header("Cache-Control", "public, max-age=3600")
		c.Status(http.StatusOK)
		c.Header("Content-Type", "image/png")
		if err := scene.WritePoster(c.Writer, sc, w, h); err != nil {
			s.logger.Warn("writing poster", zap.Error(err))
		}
	})
	scenes.GET("/live", s.live)
}

func (s *server) timelineRoutes(api *gin.RouterGroup) {
	api.GET("/timelines", func(c *gin.Context) { c.JSON(http.StatusOK, timeline.Presets()) })
	api.GET("/timelines/:name", func(c *gin.Context) {
		tl, ok := s.timelines[c.Param("name")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": timeline.ErrUnknownTimeline.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":     tl.Name(),
			"duration": tl.Duration(),
			"steps":    tl.Steps(),
		})
	})
}

const specKey = "scene.spec"

func (s *server) lookupScene(c *gin.Context) {
	spec, err := scene.Lookup(c.Param("name"))
	if errors.Is(err, scene.ErrUnknownPreset) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Set(specKey, spec)
	c.Next()
}

// mount builds a scene for this request. Clients that cannot render WebGL
// pass webgl=0 and get a degraded scene.
func (s *server) mount(c *gin.Context) *scene.Scene {
	spec := c.MustGet(specKey).(scene.Spec)
	return scene.Mount(spec, scene.Options{
		Capable: c.Query("webgl") != "0",
		Logger:  s.logger,
	})
}

func frameParams(c *gin.Context) (at time.Duration, scroll float64, ok bool) {
	t, err := floatParam(c, "t", 0)
	if err != nil || t < 0 || t > maxFrameTime {
		c.JSON(http.StatusBadRequest, gin.H{"error": "t must be between 0 and 3600 seconds"})
		return 0, 0, false
	}
	scroll, err = floatParam(c, "scroll", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scroll must be a number"})
		return 0, 0, false
	}
	return time.Duration(t * float64(time.Second)), scroll, true
}

func floatParam(c *gin.Context, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func intParam(c *gin.Context, key string, def, lo, hi int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}

// live streams a scene over a websocket: one mount message with the buffers,
// then a frame per tick. Client messages feed the scroll signal. Closing the
// socket unmounts the scene.
func (s *server) live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sc := s.mount(c)
	defer sc.Unmount()
	log := s.logger.With(zap.String("scene", sc.Spec().Name), zap.String("mount", sc.ID()))

	desc := sc.Descriptor()
	conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := conn.WriteJSON(liveMessage{Type: "mount", Scene: &desc}); err != nil {
		log.Debug("writing mount message", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Slow clients drop frames instead of stalling the driver.
	frames := make(chan scene.Frame, liveFrameQueue)
	sc.Emit(func(f scene.Frame) {
		select {
		case frames <- f:
		default:
		}
	})

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		defer cancel()
		conn.SetReadLimit(liveReadLimit)
		for {
			var msg viewportMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Scroll != nil {
				sc.Scroll().Set(*msg.Scroll)
			}
		}
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- sc.Run(ctx, scene.TickerSource(s.cfg.Scene.FPS)) }()

	log.Debug("live scene started")
	for {
		select {
		case <-ctx.Done():
			sc.Unmount()
			<-runDone
			conn.Close()
			<-readDone
			log.Debug("live scene closed", zap.Uint64("frames", sc.Driver().Frames()))
			return
		case f := <-frames:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(liveMessage{Type: "frame", Frame: &f}); err != nil {
				log.Debug("writing frame", zap.Error(err))
				cancel()
			}
		}
	}
}
