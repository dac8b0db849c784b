package timeline

import (
	"fmt"
	"sort"
)

// MaxStaggered is how many cards or list rows a preset choreographs; later
// items share the last slot.
const MaxStaggered = 12

func indexed(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func mustNew(name string, steps ...Step) *Timeline {
	tl, err := New(name, steps...)
	if err != nil {
		panic(err)
	}
	return tl
}

func entrance(targets []string, delay, interval, duration float64, rise float64, easing Easing) []Step {
	steps := Stagger(targets, StaggerOptions{
		Property: "opacity", Delay: delay, Interval: interval, Duration: duration,
		Easing: EaseOut, From: 0, To: 1,
	})
	return append(steps, Stagger(targets, StaggerOptions{
		Property: "y", Delay: delay, Interval: interval, Duration: duration,
		Easing: easing, From: rise, To: 0,
	})...)
}

var presets = map[string]func() *Timeline{
	"hero": func() *Timeline {
		steps := entrance([]string{"hero-eyebrow", "hero-title", "hero-subtitle", "hero-cta"}, 0.2, 0.15, 0.6, 24, Spring)
		steps = append(steps, Step{
			Target: "hero-scene", Property: "opacity", Start: 0, Duration: 1.2, Easing: EaseInOut, From: 0, To: 1,
		})
		return mustNew("hero", steps...)
	},
	"cards": func() *Timeline {
		steps := entrance([]string{"section-title"}, 0.1, 0, 0.5, 16, EaseOut)
		steps = append(steps, entrance(indexed("card", MaxStaggered), 0.3, 0.1, 0.5, 20, Spring)...)
		return mustNew("cards", steps...)
	},
	"list": func() *Timeline {
		steps := entrance([]string{"section-title"}, 0.1, 0, 0.4, 12, EaseOut)
		steps = append(steps, entrance(indexed("item", MaxStaggered), 0.25, 0.08, 0.4, 12, EaseOut)...)
		return mustNew("list", steps...)
	},
}

// Presets lists the built-in timelines.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named preset.
func Lookup(name string) (*Timeline, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeline, name)
	}
	return build(), nil
}

// Slot maps the i-th repeated item to its target name, e.g. Slot("card", 3).
func Slot(prefix string, i int) string {
	if i >= MaxStaggered {
		i = MaxStaggered - 1
	}
	if i < 0 {
		i = 0
	}
	return fmt.Sprintf("%s-%d", prefix, i)
}
