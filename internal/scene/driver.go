package scene

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MaxFrameDelta bounds a single tick so a stalled frame source (a background
// tab, a paused terminal) does not make everything jump on resume.
const MaxFrameDelta = 250 * time.Millisecond

// FrameTick is one invocation of the per-frame update.
type FrameTick struct {
	Seq     uint64
	Delta   time.Duration
	Elapsed time.Duration
	Scroll  float64
}

// Dt is the tick delta in seconds.
func (ft FrameTick) Dt() float32 { return float32(ft.Delta.Seconds()) }

// T is the elapsed time in seconds.
func (ft FrameTick) T() float32 { return float32(ft.Elapsed.Seconds()) }

// Element is anything the driver advances once per frame.
type Element interface {
	Tick(ft FrameTick)
}

// ElementFunc adapts a function to Element.
type ElementFunc func(ft FrameTick)

func (f ElementFunc) Tick(ft FrameTick) { f(ft) }

// FrameSource delivers display-refresh timestamps.
type FrameSource interface {
	C() <-chan time.Time
	Stop()
}

type tickerSource struct {
	t *time.Ticker
}

// TickerSource emits frames at fps using the wall clock.
func TickerSource(fps int) FrameSource {
	if fps <= 0 {
		fps = 30
	}
	return &tickerSource{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (s *tickerSource) C() <-chan time.Time { return s.t.C }
func (s *tickerSource) Stop()               { s.t.Stop() }

// ManualSource is a FrameSource fed by hand, for tests and synthetic clocks.
type ManualSource struct {
	ch   chan time.Time
	done chan struct{}
	once sync.Once
}

func NewManualSource() *ManualSource {
	return &ManualSource{ch: make(chan time.Time), done: make(chan struct{})}
}

// Fire delivers one frame, blocking until the driver takes it. It reports
// false once the source has been stopped.
func (s *ManualSource) Fire(t time.Time) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.ch <- t:
		return true
	case <-s.done:
		return false
	}
}

func (s *ManualSource) C() <-chan time.Time { return s.ch }

func (s *ManualSource) Stop() { s.once.Do(func() { close(s.done) }) }

// Driver owns the frame subscription of a scene and dispatches ticks to its
// registered elements in registration order.
type Driver struct {
	mu       sync.Mutex
	elements []Element
	scroll   *ScrollSignal
	elapsed  time.Duration
	seq      uint64
	stopped  bool

	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func NewDriver(scroll *ScrollSignal, logger *zap.Logger) *Driver {
	if scroll == nil {
		scroll = &ScrollSignal{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{scroll: scroll, stopCh: make(chan struct{}), logger: logger}
}

// Register appends elements to the dispatch list.
func (d *Driver) Register(elems ...Element) {
	d.mu.Lock()
	d.elements = append(d.elements, elems...)
	d.mu.Unlock()
}

// Step advances every element by delta. It returns false, and touches
// nothing, once the driver has been stopped.
func (d *Driver) Step(delta time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	if delta < 0 {
		delta = 0
	}
	d.elapsed += delta
	d.seq++
	ft := FrameTick{Seq: d.seq, Delta: delta, Elapsed: d.elapsed, Scroll: d.scroll.Load()}
	for _, e := range d.elements {
		e.Tick(ft)
	}
	return true
}

// Run consumes frames from src until ctx is done, the source closes, or Stop
// is called. The first frame carries a zero delta. src is stopped on return.
func (d *Driver) Run(ctx context.Context, src FrameSource) error {
	defer src.Stop()
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stopCh:
			return nil
		case now, ok := <-src.C():
			if !ok {
				return nil
			}
			var delta time.Duration
			if !last.IsZero() {
				delta = now.Sub(last)
			}
			last = now
			if delta > MaxFrameDelta {
				d.logger.Debug("clamping frame delta", zap.Duration("delta", delta))
				delta = MaxFrameDelta
			}
			if !d.Step(delta) {
				return nil
			}
		}
	}
}

// Stop ends the loop. After Stop returns no element is ticked again.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
	})
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

// Stopped reports whether Stop has been called.
func (d *Driver) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// Frames returns the number of ticks dispatched so far.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seq
}

// Elapsed returns the total time dispatched so far.
func (d *Driver) Elapsed() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed
}
