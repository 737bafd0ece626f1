// Package postproc applies a fixed sequence of conditional geometric
// modifications to a finished gear-blank solid: axial bore, top-face recess,
// hub extrusion, radial spoke cutouts and edge chamfering.
//
// Each step declares the parameters it accepts together with their defaults;
// the caller supplies a single Pool of named values, and the pipeline binds
// the pool over each step's declaration before invoking it. A step whose
// trigger parameter resolves to absent is a structural no-op and passes the
// body through unchanged, which is the universal way to disable a feature.
//
// The pipeline is purely sequential: every step owns the body outright,
// completes all its kernel operations, and hands a new body to the next step.
// Any missing or invalid parameter, and any kernel failure, aborts the whole
// invocation immediately.
package postproc
