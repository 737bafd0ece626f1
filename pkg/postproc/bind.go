package postproc

import (
	"github.com/zclconf/go-cty/cty"
)

// bind produces the concrete argument set for one step: every declared
// parameter resolves to the pool's value when supplied (including an explicit
// null), to the declared default otherwise. It reports whether the step is
// triggered, and fails with MissingParameterError when a triggered step is
// left without one of its required parameters.
//
// Binding is computed fresh on every call; nothing is cached across steps, so
// names shared between steps (such as bore_d) cannot leak stale values.
func bind(step Step, pool Pool) (Args, bool, error) {
	specs := step.Params()
	args := make(Args, len(specs))

	var unresolved []string

	for _, spec := range specs {
		if v, ok := pool[spec.Name]; ok {
			args[spec.Name] = v

			continue
		}

		if spec.Default == required {
			unresolved = append(unresolved, spec.Name)

			continue
		}

		args[spec.Name] = spec.Default
	}

	triggered := false

	for _, spec := range specs {
		if spec.Trigger && args.Has(spec.Name) {
			triggered = true

			break
		}
	}

	if triggered {
		if len(unresolved) > 0 {
			return nil, false, &MissingParameterError{Step: step.Name(), Param: unresolved[0]}
		}

		for _, spec := range specs {
			if spec.Default == required && !args.Has(spec.Name) {
				return nil, false, &MissingParameterError{Step: step.Name(), Param: spec.Name}
			}
		}
	} else {
		// An untriggered step never reads its required parameters; bind them
		// as absent so the no-op path is uniform.
		for _, name := range unresolved {
			args[name] = absent
		}
	}

	for _, spec := range specs {
		v := args[spec.Name]
		if v.IsNull() {
			continue
		}

		if err := checkKind(step.Name(), spec, v); err != nil {
			return nil, false, err
		}
	}

	return args, triggered, nil
}

func checkKind(step string, spec ParamSpec, v cty.Value) error {
	switch spec.Kind {
	case KindNumber:
		if !v.Type().Equals(cty.Number) {
			return &InvalidParameterError{Step: step, Param: spec.Name, Reason: "expected a number"}
		}

	case KindCount:
		if !v.Type().Equals(cty.Number) || !v.AsBigFloat().IsInt() {
			return &InvalidParameterError{Step: step, Param: spec.Name, Reason: "expected an integer"}
		}

	case KindExtent:
		if v.Type().Equals(cty.Number) {
			return nil
		}

		if !isExtentPair(v.Type()) {
			return &InvalidParameterError{
				Step:   step,
				Param:  spec.Name,
				Reason: "expected a number or an (axial, radial) pair",
			}
		}
	}

	return nil
}

func isExtentPair(ty cty.Type) bool {
	if !ty.IsTupleType() {
		return false
	}

	els := ty.TupleElementTypes()
	if len(els) != 2 {
		return false
	}

	return els[0].Equals(cty.Number) && els[1].Equals(cty.Number)
}
