package geom

// Solid is an opaque handle to a boundary-representation solid. Only the
// Kernel that produced a Solid can interpret it; the pipeline merely threads
// handles from one operation to the next.
type Solid interface{}

// Side selects one of the two end faces of a body along the rotation axis.
type Side int

const (
	// BottomFace is the "-axis" face, lying on the origin plane.
	BottomFace Side = iota
	// TopFace is the "+axis" face.
	TopFace
)

func (s Side) String() string {
	if s == TopFace {
		return "top"
	}

	return "bottom"
}

// Kernel is the set of solid-modelling primitives the post-processing
// pipeline requires from a geometry kernel. Implementations are expected to
// be synchronous and stateless; every call either returns a new valid solid
// or an error, and never mutates its inputs.
type Kernel interface {
	// CutThruAll cuts a circular hole of the given diameter through the whole
	// body along the rotation axis.
	CutThruAll(body Solid, diameter float64) (Solid, error)

	// CutBlind cuts a blind pocket of the given depth into the selected end
	// face. rings are circle radii sketched on that face; with two rings the
	// pocket is the annulus between them, with one it is a filled disc. A
	// pocket wider than the body clips to the body.
	CutBlind(body Solid, side Side, depth float64, rings ...float64) (Solid, error)

	// ExtrudeBoss extrudes a boss of the given length outward from the
	// selected end face. rings are circle radii; with two rings the boss is
	// annular.
	ExtrudeBoss(body Solid, side Side, length float64, rings ...float64) (Solid, error)

	// Extrude solidifies a closed profile sketched on the working plane,
	// starting at the given axial offset and rising by height.
	Extrude(p *Profile, offset, height float64) (Solid, error)

	// Revolve solidifies a closed profile sketched on the axial half-plane
	// (X = radius, Y = axial position) by a full turn about the rotation
	// axis.
	Revolve(p *Profile) (Solid, error)

	// Rotate returns the solid rotated about the rotation axis by the given
	// angle in radians.
	Rotate(s Solid, angle float64) (Solid, error)

	// Cut boolean-subtracts the tool from the body.
	Cut(body, tool Solid) (Solid, error)

	// FilletVerticalEdges fillets the edges of the solid that run parallel to
	// the rotation axis.
	FilletVerticalEdges(s Solid, radius float64) (Solid, error)
}
