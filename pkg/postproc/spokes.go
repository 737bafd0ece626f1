package postproc

import (
	"math"

	"go.uber.org/zap"

	"github.com/cogforge/gearpost/pkg/geom"
)

const (
	// sketchOffset places the cutter sketch below the bottom face and
	// extrudeMargin carries the extrusion past the top face, so the cutter
	// strictly crosses both faces.
	sketchOffset  = -0.1
	extrudeMargin = 1.0
)

// cutterEpsilon nudges the cutout radii inward so the cutter strictly
// overlaps the spoke boundaries and never leaves coincident faces for the
// kernel. The nudge scales with the outer radius so large gears keep a
// meaningful overlap; small gears use the fixed floor.
func cutterEpsilon(outerR float64) float64 {
	return math.Max(1e-4, outerR*1e-5)
}

// wedge is the resolved geometry of one spoke cutout: nudged inner and outer
// cutter radii, the angular pitch tau, and the four boundary angles. The
// cutout spans a1..tau-a1 at the inner radius and a2..tau-a2 at the outer
// radius, where each a is the half-angle subtended by the spoke-width chord.
type wedge struct {
	n              int
	tau            float64
	r1, r2         float64
	a1, a2, a3, a4 float64
}

// spokeWedge validates the spoke parameters and resolves the cutout wedge.
// innerD is ignored unless hasInner is set; without an inner diameter the
// wedge degenerates to the minimal hub-width form, with the inner boundary at
// half the spoke width.
func spokeWedge(n int, width, innerD, outerD float64, hasInner bool) (wedge, error) {
	const step = "spokes"

	if n <= 1 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "n_spokes", Reason: "spoke count must be greater than 1"}
	}

	if width <= 0 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spoke_width", Reason: "width must be positive"}
	}

	if outerD <= 0 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spokes_od", Reason: "diameter must be positive"}
	}

	if hasInner && innerD <= 0 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spokes_id", Reason: "diameter must be positive"}
	}

	if width >= outerD {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spoke_width", Reason: "width must be smaller than the outer diameter"}
	}

	innerR := width / 2
	if hasInner {
		innerR = math.Max(width/2, innerD/2)
	}

	outerR := outerD / 2
	eps := cutterEpsilon(outerR)

	w := wedge{
		n:   n,
		tau: 2 * math.Pi / float64(n),
		r1:  innerR + eps,
		r2:  outerR - eps,
	}

	if w.r1 >= w.r2 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spokes_od", Reason: "inner cutout radius must stay below the outer radius"}
	}

	w.a1 = math.Asin((width / 2) / innerR)
	w.a2 = math.Asin((width / 2) / outerR)

	if w.a2 >= w.tau/2 {
		return wedge{}, &InvalidParameterError{Step: step, Param: "spoke_width", Reason: "width leaves no cutout between spokes"}
	}

	w.a3 = w.tau - w.a2
	w.a4 = w.tau - w.a1

	return w, nil
}

// profile sketches the closed cutout wedge on the working plane: chords at
// the spoke flanks, a counter-clockwise arc at the outer radius and a closing
// arc at the inner radius. The closing arc follows the r1 circle from a4 back
// to a1: clockwise when a4 lies past a1, counter-clockwise through the cutout
// bisector when a1 exceeds half the pitch and the inner corners swap sides,
// and absent when the corners coincide and the flanks already meet.
func (w wedge) profile() *geom.Profile {
	p := geom.MoveTo(math.Cos(w.a1)*w.r1, math.Sin(w.a1)*w.r1).
		LineTo(math.Cos(w.a2)*w.r2, math.Sin(w.a2)*w.r2).
		RadiusArc(math.Cos(w.a3)*w.r2, math.Sin(w.a3)*w.r2, -w.r2).
		LineTo(math.Cos(w.a4)*w.r1, math.Sin(w.a4)*w.r1)

	const tol = 1e-9

	switch {
	case w.a4-w.a1 > tol:
		p = p.RadiusArc(math.Cos(w.a1)*w.r1, math.Sin(w.a1)*w.r1, w.r1)
	case w.a1-w.a4 > tol:
		p = p.RadiusArc(math.Cos(w.a1)*w.r1, math.Sin(w.a1)*w.r1, -w.r1)
	}

	return p.Close()
}

// spokesStep subtracts n evenly rotated wedge cutters from the body, leaving
// n spokes between the inner and outer spoke diameters.
type spokesStep struct{}

func (spokesStep) Name() string { return "spokes" }

func (spokesStep) After() []string { return []string{"hub"} }

func (spokesStep) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "n_spokes", Kind: KindCount, Default: absent, Trigger: true},
		{Name: "spokes_id", Kind: KindNumber, Default: absent},
		{Name: "spokes_od", Kind: KindNumber, Default: required},
		{Name: "spoke_width", Kind: KindNumber, Default: required},
		{Name: "spoke_fillet", Kind: KindNumber, Default: absent},
	}
}

func (s spokesStep) Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error) {
	if !args.Has("n_spokes") {
		return body, nil
	}

	var innerD float64

	hasInner := args.Has("spokes_id")
	if hasInner {
		innerD = args.Float("spokes_id")
	}

	w, err := spokeWedge(args.Int("n_spokes"), args.Float("spoke_width"), innerD, args.Float("spokes_od"), hasInner)
	if err != nil {
		return nil, err
	}

	env.logger().Debug("spoke cutter resolved",
		zap.Int("n_spokes", w.n),
		zap.Float64("r1", w.r1),
		zap.Float64("r2", w.r2),
	)

	p := w.profile()
	env.sketch(s.Name(), p)

	cutter, err := env.Kernel.Extrude(p, sketchOffset, env.Frame.Width+extrudeMargin)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: "cutter extrusion", Err: err}
	}

	if args.Has("spoke_fillet") {
		fillet := args.Float("spoke_fillet")
		if fillet <= 0 {
			return nil, &InvalidParameterError{Step: s.Name(), Param: "spoke_fillet", Reason: "radius must be positive"}
		}

		cutter, err = env.Kernel.FilletVerticalEdges(cutter, fillet)
		if err != nil {
			return nil, &GeometryError{Step: s.Name(), Op: "edge fillet", Err: err}
		}
	}

	for i := 0; i < w.n; i++ {
		tool := cutter

		if i > 0 {
			tool, err = env.Kernel.Rotate(cutter, w.tau*float64(i))
			if err != nil {
				return nil, &GeometryError{Step: s.Name(), Op: "cutter rotation", Err: err}
			}
		}

		body, err = env.Kernel.Cut(body, tool)
		if err != nil {
			return nil, &GeometryError{Step: s.Name(), Op: "spoke cut", Err: err}
		}
	}

	return body, nil
}
