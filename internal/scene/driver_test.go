package scene

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDriverDispatchOrder(t *testing.T) {
	d := NewDriver(nil, nil)
	var order []string
	d.Register(
		ElementFunc(func(FrameTick) { order = append(order, "a") }),
		ElementFunc(func(FrameTick) { order = append(order, "b") }),
	)
	require.True(t, d.Step(time.Second))
	require.True(t, d.Step(time.Second))

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.Equal(t, uint64(2), d.Frames())
	assert.Equal(t, 2*time.Second, d.Elapsed())
}

func TestDriverTickCarriesScroll(t *testing.T) {
	scroll := &ScrollSignal{}
	d := NewDriver(scroll, nil)
	var got FrameTick
	d.Register(ElementFunc(func(ft FrameTick) { got = ft }))

	scroll.Set(42)
	d.Step(-time.Second)

	assert.Equal(t, 42.0, got.Scroll)
	assert.Zero(t, got.Delta)
	assert.Equal(t, uint64(1), got.Seq)
}

func TestDriverStepAfterStop(t *testing.T) {
	d := NewDriver(nil, nil)
	calls := 0
	d.Register(ElementFunc(func(FrameTick) { calls++ }))

	d.Step(time.Millisecond)
	d.Stop()
	d.Stop()

	assert.False(t, d.Step(time.Millisecond))
	assert.Equal(t, 1, calls)
	assert.True(t, d.Stopped())
}

func TestDriverRunManualSource(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDriver(nil, nil)
	ticks := make(chan FrameTick, 8)
	d.Register(ElementFunc(func(ft FrameTick) { ticks <- ft }))

	src := NewManualSource()
	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background(), src) }()

	start := time.Unix(1000, 0)
	require.True(t, src.Fire(start))
	require.True(t, src.Fire(start.Add(20*time.Millisecond)))
	require.True(t, src.Fire(start.Add(10*time.Second)))

	first, second, third := <-ticks, <-ticks, <-ticks
	assert.Zero(t, first.Delta)
	assert.Equal(t, 20*time.Millisecond, second.Delta)
	assert.Equal(t, MaxFrameDelta, third.Delta)

	d.Stop()
	require.NoError(t, <-done)
	assert.False(t, src.Fire(start.Add(11*time.Second)), "source must be stopped with the driver")
	assert.Empty(t, ticks)
}

func TestDriverRunContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := NewDriver(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, TickerSource(120)) }()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
