package timeline

// Runner interprets a timeline. For each target/property the most recently
// started step decides the value; before any step starts the first step's
// From applies.
type Runner struct {
	tl *Timeline
}

func NewRunner(tl *Timeline) *Runner {
	return &Runner{tl: tl}
}

// Value returns target.property at time t.
func (r *Runner) Value(target, property string, t float64) (float64, bool) {
	var cur *Step
	for i := range r.tl.steps {
		s := &r.tl.steps[i]
		if s.Target != target || s.Property != property {
			continue
		}
		if cur == nil || s.Start <= t {
			cur = s
		}
	}
	if cur == nil {
		return 0, false
	}
	return cur.at(t), true
}

// Sample returns every target's properties at time t.
func (r *Runner) Sample(t float64) map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, s := range r.tl.steps {
		props, ok := out[s.Target]
		if !ok {
			props = make(map[string]float64)
			out[s.Target] = props
		}
		if _, done := props[s.Property]; done {
			continue
		}
		v, _ := r.Value(s.Target, s.Property, t)
		props[s.Property] = v
	}
	return out
}

// Done reports whether t is past the end of the timeline.
func (r *Runner) Done(t float64) bool {
	return t >= r.tl.Duration()
}
