package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Point is a particle or shape projected to screen space.
type Point struct {
	X, Y   float32
	Radius float32
	Depth  float32
	Color  Color
	Alpha  float32
}

// Project maps the current scene state onto a w×h viewport, far points first.
// Points behind the camera or outside the viewport are dropped.
func Project(s *Scene, w, h int) []Point {
	if s.degraded || w <= 0 || h <= 0 {
		return nil
	}
	vp := s.camera.ViewProjection(float32(w) / float32(h))
	var pts []Point
	for _, l := range s.layers {
		mvp := vp.Mul4(l.Model())
		alpha := l.cfg.Opacity
		if alpha == 0 {
			alpha = 1
		}
		for i, p := range l.positions {
			if pt, ok := project(mvp, p, l.sizes[i], w, h); ok {
				pt.Color = l.colors[i]
				pt.Alpha = alpha
				pts = append(pts, pt)
			}
		}
	}
	for _, sh := range s.shapes {
		model := mgl32.Translate3D(sh.Position[0], sh.Position[1], sh.Position[2])
		if pt, ok := project(vp.Mul4(model), mgl32.Vec3{}, sh.Scale, w, h); ok {
			pt.Color = sh.cfg.Color
			pt.Alpha = 0.9
			if sh.cfg.Wireframe {
				pt.Alpha = 0.5
			}
			pts = append(pts, pt)
		}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Depth > pts[j].Depth })
	return pts
}

func project(mvp mgl32.Mat4, p mgl32.Vec3, size float32, w, h int) (Point, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	cw := clip.W()
	if cw <= 0 {
		return Point{}, false
	}
	ndc := clip.Vec3().Mul(1 / cw)
	if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 || ndc[2] < -1 || ndc[2] > 1 {
		return Point{}, false
	}
	return Point{
		X:      (ndc[0] + 1) / 2 * float32(w),
		Y:      (1 - ndc[1]) / 2 * float32(h),
		Radius: size * float32(h) / cw,
		Depth:  cw,
	}, true
}
