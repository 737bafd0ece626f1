// Package csg is an in-process implicit-geometry kernel. Solids are immutable
// CSG trees evaluated by point membership, which is exactly what the test
// suite needs to probe the results of the post-processing pipeline. It stands
// in for an external boundary-representation kernel; FilletVerticalEdges is a
// documented identity because fillet fidelity belongs to a real kernel.
package csg

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/cogforge/gearpost/pkg/geom"
)

var (
	ErrNotACSGSolid   = errors.New("solid was not produced by the csg kernel")
	ErrOpenProfile    = errors.New("profile must be closed")
	ErrBadRingCount   = errors.New("expected one or two ring radii")
	ErrNonPositiveDim = errors.New("dimension must be positive")
)

// arcChords is the number of chords used to flatten one arc segment.
const arcChords = 64

// throughMargin extends through-cuts past both faces so the cutter strictly
// crosses the body surface.
const throughMargin = 1.0

// Kernel implements geom.Kernel over implicit CSG solids.
type Kernel struct{}

var _ geom.Kernel = (*Kernel)(nil)

// New returns a ready-to-use kernel.
func New() *Kernel { return &Kernel{} }

// Cylinder builds a solid cylinder of the given radius and height, sitting on
// the origin plane and centred on the rotation axis. It is the usual starting
// blank for tests.
func Cylinder(radius, height float64) geom.Solid {
	return &annular{rIn: 0, rOut: radius, zMin: 0, zMax: height}
}

// Contains reports whether the point lies inside a solid produced by this
// kernel.
func Contains(s geom.Solid, x, y, z float64) bool {
	n, ok := s.(node)
	if !ok {
		return false
	}

	return n.contains(x, y, z)
}

// Extent returns the axial extent of a solid produced by this kernel.
func Extent(s geom.Solid) (zMin, zMax float64, err error) {
	n, ok := s.(node)
	if !ok {
		return 0, 0, ErrNotACSGSolid
	}

	zMin, zMax = n.extent()

	return zMin, zMax, nil
}

func (k *Kernel) CutThruAll(body geom.Solid, diameter float64) (geom.Solid, error) {
	b, ok := body.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	if diameter <= 0 {
		return nil, errors.Wrap(ErrNonPositiveDim, "bore diameter")
	}

	zMin, zMax := b.extent()
	hole := &annular{
		rIn:  0,
		rOut: diameter / 2,
		zMin: zMin - throughMargin,
		zMax: zMax + throughMargin,
	}

	return &diff{a: b, b: hole}, nil
}

func (k *Kernel) CutBlind(body geom.Solid, side geom.Side, depth float64, rings ...float64) (geom.Solid, error) {
	b, ok := body.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	if depth <= 0 {
		return nil, errors.Wrap(ErrNonPositiveDim, "pocket depth")
	}

	rIn, rOut, err := ringBounds(rings)
	if err != nil {
		return nil, err
	}

	zMin, zMax := b.extent()
	pocket := &annular{rIn: rIn, rOut: rOut}

	if side == geom.TopFace {
		pocket.zMin = zMax - depth
		pocket.zMax = zMax + throughMargin
	} else {
		pocket.zMin = zMin - throughMargin
		pocket.zMax = zMin + depth
	}

	return &diff{a: b, b: pocket}, nil
}

func (k *Kernel) ExtrudeBoss(body geom.Solid, side geom.Side, length float64, rings ...float64) (geom.Solid, error) {
	b, ok := body.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	if length <= 0 {
		return nil, errors.Wrap(ErrNonPositiveDim, "boss length")
	}

	rIn, rOut, err := ringBounds(rings)
	if err != nil {
		return nil, err
	}

	zMin, zMax := b.extent()
	boss := &annular{rIn: rIn, rOut: rOut}

	if side == geom.TopFace {
		boss.zMin = zMax
		boss.zMax = zMax + length
	} else {
		boss.zMin = zMin - length
		boss.zMax = zMin
	}

	return &union{a: b, b: boss}, nil
}

func (k *Kernel) Extrude(p *geom.Profile, offset, height float64) (geom.Solid, error) {
	poly, err := flatten(p)
	if err != nil {
		return nil, err
	}

	if height <= 0 {
		return nil, errors.Wrap(ErrNonPositiveDim, "extrusion height")
	}

	return &prism{poly: poly, zMin: offset, zMax: offset + height}, nil
}

func (k *Kernel) Revolve(p *geom.Profile) (geom.Solid, error) {
	poly, err := flatten(p)
	if err != nil {
		return nil, err
	}

	zMin := poly[0].Y
	zMax := poly[0].Y

	for _, pt := range poly[1:] {
		if pt.Y < zMin {
			zMin = pt.Y
		}
		if pt.Y > zMax {
			zMax = pt.Y
		}
	}

	return &revolved{poly: poly, zMin: zMin, zMax: zMax}, nil
}

func (k *Kernel) Rotate(s geom.Solid, angle float64) (geom.Solid, error) {
	n, ok := s.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	return &rotated{angle: angle, inner: n}, nil
}

func (k *Kernel) Cut(body, tool geom.Solid) (geom.Solid, error) {
	b, ok := body.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	t, ok := tool.(node)
	if !ok {
		return nil, ErrNotACSGSolid
	}

	return &diff{a: b, b: t}, nil
}

// FilletVerticalEdges returns the solid unchanged. Membership evaluation has
// no edge topology to round; a production kernel performs the real fillet.
func (k *Kernel) FilletVerticalEdges(s geom.Solid, radius float64) (geom.Solid, error) {
	if _, ok := s.(node); !ok {
		return nil, ErrNotACSGSolid
	}

	if radius <= 0 {
		return nil, errors.Wrap(ErrNonPositiveDim, "fillet radius")
	}

	return s, nil
}

func flatten(p *geom.Profile) ([]geom.Vec2, error) {
	if err := p.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}

	if !p.Closed() {
		return nil, ErrOpenProfile
	}

	return p.Flatten(arcChords), nil
}

func ringBounds(rings []float64) (rIn, rOut float64, err error) {
	if len(rings) == 0 || len(rings) > 2 {
		return 0, 0, ErrBadRingCount
	}

	for _, r := range rings {
		if r <= 0 {
			return 0, 0, errors.Wrap(ErrNonPositiveDim, "ring radius")
		}
	}

	sorted := append([]float64(nil), rings...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return 0, sorted[0], nil
	}

	return sorted[0], sorted[1], nil
}
