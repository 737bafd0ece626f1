// Package geom holds the geometric vocabulary shared between the
// post-processing pipeline and geometry kernels: closed planar profiles built
// from line and arc segments, the gear coordinate frame, and the Kernel
// interface describing the solid-modelling primitives the pipeline consumes.
package geom
