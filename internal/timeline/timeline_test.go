package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, e := range []Easing{Linear, EaseOut, EaseInOut, Spring} {
		assert.Zero(t, e.Apply(0), e)
		assert.Equal(t, 1.0, e.Apply(1), e)
		assert.Zero(t, e.Apply(-3), e)
		assert.Equal(t, 1.0, e.Apply(7), e)
		assert.True(t, e.Valid())
	}
	assert.False(t, Easing("bounce").Valid())
	assert.InDelta(t, 0.5, EaseInOut.Apply(0.5), 1e-9)
}

func TestSpringOvershoots(t *testing.T) {
	peak := 0.0
	for p := 0.0; p <= 1; p += 0.01 {
		peak = max(peak, Spring.Apply(p))
	}
	assert.Greater(t, peak, 1.0, "an underdamped spring passes its target")
}

func TestNewOrdersAndValidates(t *testing.T) {
	tl, err := New("t",
		Step{Target: "b", Property: "x", Start: 1, Duration: 1},
		Step{Target: "a", Property: "x", Start: 1, Duration: 1},
		Step{Target: "c", Property: "x", Start: 0, Duration: 2},
	)
	require.NoError(t, err)

	var order []string
	for _, s := range tl.Steps() {
		order = append(order, s.Target)
		assert.Equal(t, Linear, s.Easing)
	}
	assert.Equal(t, []string{"c", "a", "b"}, order)
	assert.Equal(t, 2.0, tl.Duration())

	_, err = New("bad", Step{Target: "a", Property: "x", Start: -1})
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, err = New("bad", Step{Property: "x"})
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, err = New("bad", Step{Target: "a", Property: "x", Easing: "wobble"})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestRunnerValues(t *testing.T) {
	tl, err := New("fade",
		Step{Target: "title", Property: "opacity", Start: 1, Duration: 2, From: 0, To: 1},
		Step{Target: "title", Property: "opacity", Start: 4, Duration: 1, From: 1, To: 0.5},
	)
	require.NoError(t, err)
	r := NewRunner(tl)

	cases := map[float64]float64{0: 0, 1: 0, 2: 0.5, 3: 1, 3.5: 1, 4: 1, 4.5: 0.75, 9: 0.5}
	for at, want := range cases {
		got, ok := r.Value("title", "opacity", at)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, "t=%v", at)
	}

	_, ok := r.Value("missing", "opacity", 1)
	assert.False(t, ok)
	assert.True(t, r.Done(5))
	assert.False(t, r.Done(4.9))
}

func TestStagger(t *testing.T) {
	steps := Stagger([]string{"a", "b", "c"}, StaggerOptions{
		Property: "y", Delay: 0.3, Interval: 0.1, Duration: 0.5, From: 20,
	})
	require.Len(t, steps, 3)
	assert.InDelta(t, 0.3, steps[0].Start, 1e-9)
	assert.InDelta(t, 0.5, steps[2].Start, 1e-9)
	assert.Equal(t, "c", steps[2].Target)
}

func TestPresets(t *testing.T) {
	require.Equal(t, []string{"cards", "hero", "list"}, Presets())

	tl, err := Lookup("cards")
	require.NoError(t, err)
	targets := tl.Targets()
	assert.Equal(t, "section-title", targets[0])
	assert.Contains(t, targets, Slot("card", MaxStaggered-1))

	at := NewRunner(tl).Sample(0)
	assert.Zero(t, at["card-0"]["opacity"])
	assert.Equal(t, 20.0, at["card-0"]["y"])

	end := NewRunner(tl).Sample(tl.Duration())
	assert.InDelta(t, 1.0, end["card-11"]["opacity"], 1e-6)
	assert.InDelta(t, 0.0, end["card-11"]["y"], 1e-6)

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownTimeline)
}

func TestCSS(t *testing.T) {
	tl, err := Lookup("hero")
	require.NoError(t, err)
	css := tl.CSS("hero-title")
	assert.Contains(t, css, "animation-delay: 0.35s;")
	assert.Contains(t, css, "animation-duration: 0.60s;")
	assert.Empty(t, tl.CSS("nobody"))
	assert.Equal(t, "card-11", Slot("card", 40))
}
