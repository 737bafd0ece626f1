package geom

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrEmptySketch   = errors.New("cannot close an empty sketch")
	ErrArcTooNarrow  = errors.New("arc radius is too small for the chord")
	ErrZeroArcRadius = errors.New("arc radius must not be zero")
)

// Vec2 is a point on a sketch plane.
type Vec2 struct {
	X, Y float64
}

// Segment is one edge of a profile: a straight line to End, or an arc to End
// when Radius is non-zero. The sign of Radius selects the arc side: positive
// places the centre to the right of the travel direction (clockwise sweep),
// negative to the left (counter-clockwise sweep). The minor arc is always
// taken.
type Segment struct {
	End    Vec2
	Radius float64
}

// Profile is a planar wire built from line and arc segments. It becomes a
// closed profile after Close and can then be solidified by a Kernel via
// extrusion or revolution.
//
// The builder follows the usual CAD sketching vocabulary:
//
//	p := geom.MoveTo(1, 0).LineTo(2, 0).RadiusArc(0, 2, -2).Close()
//
// Builder calls record the first error encountered; Err reports it.
type Profile struct {
	start  Vec2
	cursor Vec2
	segs   []Segment
	closed bool
	err    error
}

// MoveTo starts a new profile at the given point.
func MoveTo(x, y float64) *Profile {
	p := &Profile{start: Vec2{x, y}, cursor: Vec2{x, y}}

	return p
}

// LineTo appends a straight segment from the current point.
func (p *Profile) LineTo(x, y float64) *Profile {
	if p.err != nil {
		return p
	}

	p.segs = append(p.segs, Segment{End: Vec2{x, y}})
	p.cursor = Vec2{x, y}

	return p
}

// HLine appends a horizontal segment of the given signed length.
func (p *Profile) HLine(dx float64) *Profile {
	return p.LineTo(p.cursor.X+dx, p.cursor.Y)
}

// VLine appends a vertical segment of the given signed length.
func (p *Profile) VLine(dy float64) *Profile {
	return p.LineTo(p.cursor.X, p.cursor.Y+dy)
}

// RadiusArc appends the minor arc of the given signed radius from the current
// point to (x, y).
func (p *Profile) RadiusArc(x, y, radius float64) *Profile {
	if p.err != nil {
		return p
	}

	if radius == 0 {
		p.err = ErrZeroArcRadius

		return p
	}

	end := Vec2{x, y}
	chord := math.Hypot(end.X-p.cursor.X, end.Y-p.cursor.Y)

	if chord < 1e-12 {
		p.err = errors.Wrap(ErrArcTooNarrow, "degenerate chord")

		return p
	}

	if chord > 2*math.Abs(radius)*(1+1e-9) {
		p.err = errors.Wrapf(ErrArcTooNarrow, "radius %v, chord %v", radius, chord)

		return p
	}

	p.segs = append(p.segs, Segment{End: end, Radius: radius})
	p.cursor = end

	return p
}

// Close closes the profile, appending a straight segment back to the start
// point when the cursor is not already there.
func (p *Profile) Close() *Profile {
	if p.err != nil {
		return p
	}

	if len(p.segs) == 0 {
		p.err = ErrEmptySketch

		return p
	}

	const tol = 1e-9
	if math.Hypot(p.cursor.X-p.start.X, p.cursor.Y-p.start.Y) > tol {
		p.segs = append(p.segs, Segment{End: p.start})
	}

	p.cursor = p.start
	p.closed = true

	return p
}

// Closed reports whether Close has been called.
func (p *Profile) Closed() bool { return p.closed }

// Err returns the first builder error, if any.
func (p *Profile) Err() error { return p.err }

// Start returns the profile's starting point.
func (p *Profile) Start() Vec2 { return p.start }

// Segments returns a copy of the profile's segments.
func (p *Profile) Segments() []Segment {
	segs := make([]Segment, len(p.segs))
	copy(segs, p.segs)

	return segs
}

// Flatten approximates the profile as a polyline, expanding every arc into
// arcPoints chords. The returned slice starts at the profile's start point.
func (p *Profile) Flatten(arcPoints int) []Vec2 {
	if arcPoints < 1 {
		arcPoints = 16
	}

	pts := []Vec2{p.start}
	cursor := p.start

	for _, seg := range p.segs {
		if seg.Radius == 0 {
			pts = append(pts, seg.End)
			cursor = seg.End

			continue
		}

		centre, startAng, sweep := arcGeometry(cursor, seg.End, seg.Radius)
		r := math.Abs(seg.Radius)

		for k := 1; k < arcPoints; k++ {
			ang := startAng + sweep*float64(k)/float64(arcPoints)
			pts = append(pts, Vec2{
				X: centre.X + r*math.Cos(ang),
				Y: centre.Y + r*math.Sin(ang),
			})
		}

		pts = append(pts, seg.End)
		cursor = seg.End
	}

	return pts
}

// Bounds returns the axis-aligned bounding box of the flattened profile.
func (p *Profile) Bounds() (min, max Vec2) {
	pts := p.Flatten(32)

	min = pts[0]
	max = pts[0]

	for _, pt := range pts[1:] {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}

	return min, max
}

// arcGeometry resolves the centre, start angle and signed sweep of the minor
// arc between two points. A positive radius places the centre right of the
// travel direction and sweeps clockwise; negative, left and counter-clockwise.
func arcGeometry(from, to Vec2, radius float64) (centre Vec2, startAng, sweep float64) {
	r := math.Abs(radius)
	chord := math.Hypot(to.X-from.X, to.Y-from.Y)
	mid := Vec2{(from.X + to.X) / 2, (from.Y + to.Y) / 2}

	half := chord / 2
	if half > r {
		half = r
	}
	h := math.Sqrt(r*r - half*half)

	// Unit normal to the left of the travel direction.
	nx := -(to.Y - from.Y) / chord
	ny := (to.X - from.X) / chord

	if radius > 0 {
		centre = Vec2{mid.X - h*nx, mid.Y - h*ny}
	} else {
		centre = Vec2{mid.X + h*nx, mid.Y + h*ny}
	}

	startAng = math.Atan2(from.Y-centre.Y, from.X-centre.X)
	endAng := math.Atan2(to.Y-centre.Y, to.X-centre.X)

	if radius > 0 {
		// Clockwise: negative sweep.
		sweep = endAng - startAng
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	} else {
		sweep = endAng - startAng
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	return centre, startAng, sweep
}
