package postproc

import (
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"github.com/cogforge/gearpost/pkg/geom"
)

// Kind is the value shape a declared parameter accepts.
type Kind int

const (
	// KindNumber is a scalar numeric value.
	KindNumber Kind = iota
	// KindCount is an integral numeric value.
	KindCount
	// KindExtent is either a scalar or an (axial, radial) pair.
	KindExtent
)

// absent is the default of optional parameters: bound as null unless the pool
// overrides it.
var absent = cty.NullVal(cty.Number)

// required marks a parameter with no default. Binding fails with
// MissingParameterError when the step is triggered and the pool does not
// supply the parameter.
var required = cty.NilVal

// ParamSpec statically declares one parameter a step accepts: its pool name,
// the value shape, the default bound when the pool has no entry, and whether
// the parameter triggers the step. The body is never declared; it is threaded
// explicitly through Apply.
type ParamSpec struct {
	Name    string
	Kind    Kind
	Default cty.Value
	Trigger bool
}

// Env is what a step routine gets to work with: the gear frame constants, the
// geometry kernel, and the invocation logger.
type Env struct {
	Frame  geom.Frame
	Kernel geom.Kernel

	log    *zap.Logger
	drawer Drawer
}

// sketch records a cutter profile with the configured drawer, if any.
func (e *Env) sketch(step string, p *geom.Profile) {
	if e.drawer != nil {
		e.drawer.AddProfile(step, p)
	}
}

func (e *Env) logger() *zap.Logger {
	if e.log == nil {
		return zap.NewNop()
	}

	return e.log
}

// Step is one named modification routine. Steps are stateless values; all
// per-invocation data arrives through Env, the body and the bound Args.
type Step interface {
	// Name identifies the step in errors, logs and ordering constraints.
	Name() string

	// After names the steps that must run earlier in the sequence.
	After() []string

	// Params declares the parameters the step accepts.
	Params() []ParamSpec

	// Apply performs the modification and returns the new body. When the
	// step's trigger parameter is absent it returns the input body unchanged;
	// every routine honours this, not just the pipeline.
	Apply(env *Env, body geom.Solid, args Args) (geom.Solid, error)
}
