package postproc

import (
	"github.com/cogforge/gearpost/pkg/geom"
)

// hubStep extrudes a cylindrical boss from the top face. When a bore diameter
// is present the boss is annular, so the bore stays open through the hub. It
// runs after recess so the boss grows from the possibly-recessed face.
type hubStep struct{}

func (hubStep) Name() string { return "hub" }

func (hubStep) After() []string { return []string{"recess"} }

func (hubStep) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "hub_length", Kind: KindNumber, Default: absent, Trigger: true},
		{Name: "hub_d", Kind: KindNumber, Default: required},
		{Name: "bore_d", Kind: KindNumber, Default: absent},
	}
}

func (s hubStep) Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error) {
	if !args.Has("hub_length") {
		return body, nil
	}

	length := args.Float("hub_length")
	if length <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: "hub_length", Reason: "length must be positive"}
	}

	if !args.Has("hub_d") {
		return nil, &MissingParameterError{Step: s.Name(), Param: "hub_d"}
	}

	hubD := args.Float("hub_d")
	if hubD <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: "hub_d", Reason: "diameter must be positive"}
	}

	rings := []float64{hubD / 2}

	if args.Has("bore_d") {
		boreD := args.Float("bore_d")
		if boreD <= 0 {
			return nil, &InvalidParameterError{Step: s.Name(), Param: "bore_d", Reason: "diameter must be positive"}
		}

		rings = []float64{boreD / 2, hubD / 2}
	}

	out, err := env.Kernel.ExtrudeBoss(body, geom.TopFace, length, rings...)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: "boss extrusion", Err: err}
	}

	return out, nil
}
