package csg

import (
	"math"

	"github.com/cogforge/gearpost/pkg/geom"
)

// node is an implicit solid: point membership plus an axial extent. All nodes
// are immutable once built.
type node interface {
	contains(x, y, z float64) bool
	extent() (zMin, zMax float64)
}

// annular is a (possibly hollow) cylinder centred on the rotation axis.
type annular struct {
	rIn, rOut  float64
	zMin, zMax float64
}

func (a *annular) contains(x, y, z float64) bool {
	if z < a.zMin || z > a.zMax {
		return false
	}

	r := math.Hypot(x, y)

	return r >= a.rIn && r <= a.rOut
}

func (a *annular) extent() (float64, float64) { return a.zMin, a.zMax }

// prism is a profile extruded along the rotation axis.
type prism struct {
	poly       []geom.Vec2
	zMin, zMax float64
}

func (p *prism) contains(x, y, z float64) bool {
	if z < p.zMin || z > p.zMax {
		return false
	}

	return pointInPolygon(p.poly, x, y)
}

func (p *prism) extent() (float64, float64) { return p.zMin, p.zMax }

// revolved is a profile on the axial half-plane (X = radius, Y = axial
// position) swept a full turn about the rotation axis.
type revolved struct {
	poly       []geom.Vec2
	zMin, zMax float64
}

func (rv *revolved) contains(x, y, z float64) bool {
	if z < rv.zMin || z > rv.zMax {
		return false
	}

	return pointInPolygon(rv.poly, math.Hypot(x, y), z)
}

func (rv *revolved) extent() (float64, float64) { return rv.zMin, rv.zMax }

// rotated rotates its child about the rotation axis.
type rotated struct {
	angle float64
	inner node
}

func (rt *rotated) contains(x, y, z float64) bool {
	sin, cos := math.Sincos(-rt.angle)

	return rt.inner.contains(x*cos-y*sin, x*sin+y*cos, z)
}

func (rt *rotated) extent() (float64, float64) { return rt.inner.extent() }

// diff is the boolean difference a minus b. Its extent is a's: removing
// material never grows a body.
type diff struct {
	a, b node
}

func (d *diff) contains(x, y, z float64) bool {
	return d.a.contains(x, y, z) && !d.b.contains(x, y, z)
}

func (d *diff) extent() (float64, float64) { return d.a.extent() }

// union is the boolean union of two solids.
type union struct {
	a, b node
}

func (u *union) contains(x, y, z float64) bool {
	return u.a.contains(x, y, z) || u.b.contains(x, y, z)
}

func (u *union) extent() (float64, float64) {
	aMin, aMax := u.a.extent()
	bMin, bMax := u.b.extent()

	return math.Min(aMin, bMin), math.Max(aMax, bMax)
}

// pointInPolygon is a standard even-odd ray cast.
func pointInPolygon(poly []geom.Vec2, x, y float64) bool {
	inside := false

	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]

		if (pi.Y > y) == (pj.Y > y) {
			continue
		}

		if x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}

	return inside
}
