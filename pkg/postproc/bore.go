package postproc

import (
	"github.com/cogforge/gearpost/pkg/geom"
)

// boreStep cuts a full-depth cylindrical hole centred on the rotation axis.
type boreStep struct{}

func (boreStep) Name() string { return "bore" }

func (boreStep) After() []string { return nil }

func (boreStep) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "bore_d", Kind: KindNumber, Default: absent, Trigger: true},
	}
}

func (s boreStep) Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error) {
	if !args.Has("bore_d") {
		return body, nil
	}

	boreD := args.Float("bore_d")
	if boreD <= 0 {
		return nil, &InvalidParameterError{Step: s.Name(), Param: "bore_d", Reason: "diameter must be positive"}
	}

	out, err := env.Kernel.CutThruAll(body, boreD)
	if err != nil {
		return nil, &GeometryError{Step: s.Name(), Op: "through cut", Err: err}
	}

	return out, nil
}
