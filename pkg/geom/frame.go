package geom

// Frame carries the fixed constants of a gear's coordinate frame, supplied by
// the upstream gear generator. The working plane holds the gear cross-section,
// the axial plane is the half-plane used for revolved cutters, and the
// rotation axis is the gear's own axis. Addendum is the outer radius of the
// tooth tips and Width the face width of the blank.
type Frame struct {
	WorkingPlane string
	AxialPlane   string
	RotationAxis string

	Addendum float64
	Width    float64
}

// DefaultFrame returns the conventional gear frame: cross-sections on XY, the
// axial half-plane on XZ, rotation about Z.
func DefaultFrame(addendum, width float64) Frame {
	return Frame{
		WorkingPlane: "XY",
		AxialPlane:   "XZ",
		RotationAxis: "Z",
		Addendum:     addendum,
		Width:        width,
	}
}
