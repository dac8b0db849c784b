// Package timeline holds page entrance choreography as explicit data: an
// ordered list of (target, property, start, duration, easing) steps read by a
// single runner.
package timeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownTimeline = errors.New("unknown timeline")
	ErrInvalidStep     = errors.New("invalid timeline step")
)

// Step animates one property of one target. Start and Duration are seconds.
type Step struct {
	Target   string  `json:"target"`
	Property string  `json:"property"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Easing   Easing  `json:"easing"`
	From     float64 `json:"from"`
	To       float64 `json:"to"`
}

func (s Step) End() float64 { return s.Start + s.Duration }

func (s Step) validate() error {
	switch {
	case s.Target == "" || s.Property == "":
		return fmt.Errorf("%w: target and property are required", ErrInvalidStep)
	case s.Start < 0 || s.Duration < 0:
		return fmt.Errorf("%w: %s.%s has negative timing", ErrInvalidStep, s.Target, s.Property)
	case s.Easing != "" && !s.Easing.Valid():
		return fmt.Errorf("%w: %s.%s has unknown easing %q", ErrInvalidStep, s.Target, s.Property, s.Easing)
	}
	return nil
}

// at evaluates the step at time t.
func (s Step) at(t float64) float64 {
	if s.Duration == 0 {
		if t < s.Start {
			return s.From
		}
		return s.To
	}
	p := (t - s.Start) / s.Duration
	return s.From + (s.To-s.From)*s.Easing.Apply(p)
}

// Timeline is an immutable, ordered set of steps.
type Timeline struct {
	name  string
	steps []Step
}

// New validates and orders steps by start time, then target, then property.
func New(name string, steps ...Step) (*Timeline, error) {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	for i := range sorted {
		if err := sorted[i].validate(); err != nil {
			return nil, err
		}
		if sorted[i].Easing == "" {
			sorted[i].Easing = Linear
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Property < b.Property
	})
	return &Timeline{name: name, steps: sorted}, nil
}

func (tl *Timeline) Name() string { return tl.name }

// Steps returns a copy of the ordered steps.
func (tl *Timeline) Steps() []Step {
	return append([]Step(nil), tl.steps...)
}

// Duration is the end time of the last step.
func (tl *Timeline) Duration() float64 {
	var d float64
	for _, s := range tl.steps {
		d = max(d, s.End())
	}
	return d
}

// Targets lists targets in first-appearance order.
func (tl *Timeline) Targets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range tl.steps {
		if !seen[s.Target] {
			seen[s.Target] = true
			out = append(out, s.Target)
		}
	}
	return out
}

// CSS renders animation timing for target from its earliest step, for use in
// a style attribute. Unknown targets yield an empty string.
func (tl *Timeline) CSS(target string) string {
	var first *Step
	var end float64
	for i := range tl.steps {
		s := &tl.steps[i]
		if s.Target != target {
			continue
		}
		if first == nil {
			first = s
		}
		end = max(end, s.End())
	}
	if first == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "animation-delay: %.2fs; ", first.Start)
	fmt.Fprintf(&b, "animation-duration: %.2fs; ", end-first.Start)
	fmt.Fprintf(&b, "animation-timing-function: %s;", first.Easing.CSS())
	return b.String()
}

// StaggerOptions describes a staggered entrance over several targets.
type StaggerOptions struct {
	Property string
	// Delay is the start of the first target; Interval separates targets.
	Delay    float64
	Interval float64
	Duration float64
	Easing   Easing
	From, To float64
}

// Stagger returns one step per target, each Interval after the previous.
func Stagger(targets []string, o StaggerOptions) []Step {
	steps := make([]Step, 0, len(targets))
	for i, target := range targets {
		steps = append(steps, Step{
			Target:   target,
			Property: o.Property,
			Start:    o.Delay + float64(i)*o.Interval,
			Duration: o.Duration,
			Easing:   o.Easing,
			From:     o.From,
			To:       o.To,
		})
	}
	return steps
}
