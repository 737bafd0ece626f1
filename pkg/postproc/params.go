package postproc

import (
	"github.com/zclconf/go-cty/cty"
)

// Pool is the shared parameter pool for one pipeline invocation: a mapping
// from parameter name to value. A parameter is absent when its name is not in
// the pool or when it maps to a null value; supplying a null deliberately
// disables a step even if the step declares a default. The pool is read-only
// for the duration of the invocation.
type Pool map[string]cty.Value

// Num builds a numeric parameter value.
func Num(v float64) cty.Value { return cty.NumberFloatVal(v) }

// Count builds an integer parameter value.
func Count(n int) cty.Value { return cty.NumberIntVal(int64(n)) }

// Extents builds an (axial, radial) chamfer extent pair.
func Extents(axial, radial float64) cty.Value {
	return cty.TupleVal([]cty.Value{
		cty.NumberFloatVal(axial),
		cty.NumberFloatVal(radial),
	})
}

// Absent is the explicit "feature disabled" value.
func Absent() cty.Value { return cty.NullVal(cty.Number) }

// Args is the concrete argument set bound for one step: every declared
// parameter name maps to either a value or a null. Args are rebuilt from the
// pool for every step, so coincidentally shared names never leak between
// steps.
type Args map[string]cty.Value

// Has reports whether the parameter is present (bound and non-null).
func (a Args) Has(name string) bool {
	v, ok := a[name]

	return ok && !v.IsNull()
}

// Float returns the parameter as a float64. The binder has already checked
// presence and type for the step's declared parameters.
func (a Args) Float(name string) float64 {
	f, _ := a[name].AsBigFloat().Float64()

	return f
}

// Int returns the parameter as an int.
func (a Args) Int(name string) int {
	i, _ := a[name].AsBigFloat().Int64()

	return int(i)
}

// Pair returns a two-extent parameter as its (axial, radial) components. A
// scalar value is applied symmetrically to both.
func (a Args) Pair(name string) (axial, radial float64) {
	v := a[name]

	if v.Type().Equals(cty.Number) {
		f, _ := v.AsBigFloat().Float64()

		return f, f
	}

	els := v.AsValueSlice()
	axial, _ = els[0].AsBigFloat().Float64()
	radial, _ = els[1].AsBigFloat().Float64()

	return axial, radial
}
