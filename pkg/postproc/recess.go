package postproc

import (
	"github.com/cogforge/gearpost/pkg/geom"
)

// recessStep cuts a blind pocket into the top face. With a hub diameter the
// pocket is the annulus between the hub and the recess diameter, leaving
// material for a later hub extrusion; without one it is a filled disc. A
// recess wider than the body clips to the body, which is the kernel's job.
type recessStep struct{}

func (recessStep) Name() string { return "recess" }

func (recessStep) After() []string { return []string{"bore"} }

func (recessStep) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "recess", Kind: KindNumber, Default: absent, Trigger: true},
		{Name: "recess_d", Kind: KindNumber, Default: required},
		{Name: "hub_d", Kind: KindNumber, Default: absent},
	}
}

func (s recessStep) Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error) {
	if !args.Has("recess") {
		return body, nil
	}

	depth := args.Float("recess")
	if depth <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: "recess", Reason: "depth must be positive"}
	}

	recessD := args.Float("recess_d")
	if recessD <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: "recess_d", Reason: "diameter must be positive"}
	}

	rings := []float64{recessD / 2}

	if args.Has("hub_d") {
		hubD := args.Float("hub_d")
		if hubD <= 0 {
			return nil, &InvalidParameterError{Step: s.Name(), Param: "hub_d", Reason: "diameter must be positive"}
		}

		rings = []float64{hubD / 2, recessD / 2}
	}

	out, err := env.Kernel.CutBlind(body, geom.TopFace, depth, rings...)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: "blind cut", Err: err}
	}

	return out, nil
}
