package postproc

import (
	"github.com/cogforge/gearpost/pkg/geom"
)

// chamferOverlap extends the chamfer triangles slightly past the body surface
// so the revolved cutter strictly crosses it.
const chamferOverlap = 0.01

// chamferTopProfile is the right triangle in the axial half-plane that, once
// revolved, chamfers the top outer edge. Extents are measured from the
// addendum radius and the top face.
func chamferTopProfile(f geom.Frame, axial, radial float64) *geom.Profile {
	return geom.MoveTo(f.Addendum-radial, f.Width+chamferOverlap).
		HLine(radial + chamferOverlap).
		VLine(-(axial + chamferOverlap)).
		Close()
}

// chamferBottomProfile is the matching triangle anchored at the origin plane.
func chamferBottomProfile(f geom.Frame, axial, radial float64) *geom.Profile {
	return geom.MoveTo(f.Addendum+chamferOverlap, axial).
		VLine(-(axial + chamferOverlap)).
		HLine(-(radial + chamferOverlap)).
		Close()
}

// chamferStep bevels the top and bottom outer edges with revolved conical
// cutters. Each face accepts a scalar width or an (axial, radial) pair; the
// unqualified chamfer value seeds whichever faces are not individually set.
// The two faces are independent and may both apply.
type chamferStep struct{}

func (chamferStep) Name() string { return "chamfer" }

func (chamferStep) After() []string { return []string{"spokes"} }

func (chamferStep) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "chamfer", Kind: KindExtent, Default: absent, Trigger: true},
		{Name: "chamfer_top", Kind: KindExtent, Default: absent, Trigger: true},
		{Name: "chamfer_bottom", Kind: KindExtent, Default: absent, Trigger: true},
	}
}

// faceParam resolves which parameter governs a face: the face's own value
// when set, the unqualified chamfer otherwise.
func faceParam(args Args, face string) (string, bool) {
	if args.Has(face) {
		return face, true
	}

	if args.Has("chamfer") {
		return "chamfer", true
	}

	return "", false
}

func (s chamferStep) Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error) {
	topParam, hasTop := faceParam(args, "chamfer_top")
	botParam, hasBot := faceParam(args, "chamfer_bottom")

	if !hasTop && !hasBot {
		return body, nil
	}

	if hasTop {
		out, err := s.cutFace(env, body, args, topParam, "chamfer_top", chamferTopProfile)
		if err != nil {
			return nil, err
		}

		body = out
	}

	if hasBot {
		out, err := s.cutFace(env, body, args, botParam, "chamfer_bottom", chamferBottomProfile)
		if err != nil {
			return nil, err
		}

		body = out
	}

	return body, nil
}

func (s chamferStep) cutFace(
	env *Env,
	body geom.Solid,
	args Args,
	param, face string,
	profile func(geom.Frame, float64, float64) *geom.Profile,
) (geom.Solid, error) {
	axial, radial := args.Pair(param)

	if axial <= 0 || radial <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: param, Reason: "extents must be positive"}
	}

	p := profile(env.Frame, axial, radial)
	env.sketch(face, p)

	cutter, err := env.Kernel.Revolve(p)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: face + " revolve", Err: err}
	}

	out, err := env.Kernel.Cut(body, cutter)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: face + " cut", Err: err}
	}

	return out, nil
}
