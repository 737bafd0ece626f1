package postproc_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cogforge/gearpost/internal/csg"
	"github.com/cogforge/gearpost/pkg/geom"
	"github.com/cogforge/gearpost/pkg/postproc"
	"github.com/cogforge/gearpost/pkg/postproc/drawer"
)

func newPipeline(t *testing.T, opts ...postproc.Option) *postproc.Pipeline {
	t.Helper()

	pipe, err := postproc.New(csg.New(), geom.DefaultFrame(10, 5), opts...)
	require.NoError(t, err)

	return pipe
}

func TestNewNilKernel(t *testing.T) {
	t.Parallel()

	_, err := postproc.New(nil, geom.DefaultFrame(10, 5))
	assert.True(t, errors.Is(err, postproc.ErrKernelMustBeSet))
}

func TestSequence(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)
	assert.Equal(t, []string{"bore", "recess", "hub", "spokes", "chamfer"}, pipe.Sequence())
}

func TestApplyNilBody(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	_, err := pipe.Apply(context.Background(), nil, postproc.Pool{})
	assert.True(t, errors.Is(err, postproc.ErrBodyMustBeSet))
}

func TestApplyEmptyPoolIsNoOp(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)
	blank := csg.Cylinder(10, 5)

	out, err := pipe.Apply(context.Background(), blank, postproc.Pool{})
	require.NoError(t, err)
	assert.Same(t, blank, out)
}

func TestApplyAllTriggersNull(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)
	blank := csg.Cylinder(10, 5)

	pool := postproc.Pool{
		"bore_d":     postproc.Absent(),
		"recess":     postproc.Absent(),
		"hub_length": postproc.Absent(),
		"n_spokes":   postproc.Absent(),
		"chamfer":    postproc.Absent(),
	}

	out, err := pipe.Apply(context.Background(), blank, pool)
	require.NoError(t, err)
	assert.Same(t, blank, out)
}

func TestApplyBore(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"bore_d": postproc.Num(3),
	})
	require.NoError(t, err)

	// Through-hole of radius 1.5 centred on the axis, open at both faces.
	for _, z := range []float64{0.01, 2.5, 4.99} {
		assert.False(t, csg.Contains(out, 0, 0, z), "axis at z=%v", z)
		assert.False(t, csg.Contains(out, 1.4, 0, z), "inside hole at z=%v", z)
		assert.True(t, csg.Contains(out, 1.6, 0, z), "rim at z=%v", z)
		assert.True(t, csg.Contains(out, 9.9, 0, z), "outer at z=%v", z)
	}
}

func TestApplyBoreInvalidDiameter(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	_, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"bore_d": postproc.Num(-1),
	})

	var invalid *postproc.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bore", invalid.Step)
}

func TestApplyHubMissingDiameter(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	_, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"hub_length": postproc.Num(5),
	})

	var missing *postproc.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "hub", missing.Step)
	assert.Equal(t, "hub_d", missing.Param)
}

func TestApplyBoreRecessHub(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"bore_d":     postproc.Num(3),
		"recess":     postproc.Num(1),
		"recess_d":   postproc.Num(12),
		"hub_d":      postproc.Num(4),
		"hub_length": postproc.Num(2),
	})
	require.NoError(t, err)

	// Bore runs through everything.
	assert.False(t, csg.Contains(out, 0, 0, 2.5))
	// Recess pocket is the annulus between hub and recess diameters.
	assert.False(t, csg.Contains(out, 3, 0, 4.5))
	assert.True(t, csg.Contains(out, 1.75, 0, 4.5))
	assert.True(t, csg.Contains(out, 7, 0, 4.5))
	// Hub boss grows from the top face and stays annular around the bore.
	assert.True(t, csg.Contains(out, 1.75, 0, 6.5))
	assert.False(t, csg.Contains(out, 1.0, 0, 6.5))
	assert.False(t, csg.Contains(out, 3, 0, 6.5))
}

// angularRuns scans a full circle at the given radius and height and counts
// the contiguous solid and empty arcs.
func angularRuns(s geom.Solid, radius, z float64) (solid, empty int) {
	const samples = 7200

	prev := csg.Contains(s, radius, 0, z)
	first := prev

	for i := 1; i < samples; i++ {
		ang := 2 * math.Pi * float64(i) / float64(samples)
		cur := csg.Contains(s, radius*math.Cos(ang), radius*math.Sin(ang), z)

		if cur != prev {
			if cur {
				solid++
			} else {
				empty++
			}
		}

		prev = cur
	}

	// Close the scan cyclically.
	if first != prev {
		if first {
			solid++
		} else {
			empty++
		}
	}

	return solid, empty
}

func TestApplySpokes(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"n_spokes":    postproc.Count(5),
		"spokes_od":   postproc.Num(18),
		"spoke_width": postproc.Num(2),
	})
	require.NoError(t, err)

	// Five disjoint spokes and five disjoint cutouts at mid radius.
	solid, empty := angularRuns(out, 5, 2.5)
	assert.Equal(t, 5, solid)
	assert.Equal(t, 5, empty)

	// The rim outside the spoke outer diameter is intact.
	solid, empty = angularRuns(out, 9.5, 2.5)
	assert.Equal(t, 0, solid)
	assert.Equal(t, 0, empty)
	assert.True(t, csg.Contains(out, 9.5, 0, 2.5))

	// Without an inner diameter the cutters stop at half the spoke width;
	// the centre disc keeps the spokes connected to the gear centre.
	solid, empty = angularRuns(out, 0.8, 2.5)
	assert.Equal(t, 0, solid)
	assert.Equal(t, 0, empty)
	assert.True(t, csg.Contains(out, 0.8, 0, 2.5))
}

func TestApplyTwoSpokesWithoutInnerDiameter(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"n_spokes":    postproc.Count(2),
		"spokes_od":   postproc.Num(18),
		"spoke_width": postproc.Num(2),
	})
	require.NoError(t, err)

	// Two spokes along the x axis, two cutouts above and below.
	solid, empty := angularRuns(out, 5, 2.5)
	assert.Equal(t, 2, solid)
	assert.Equal(t, 2, empty)
	assert.True(t, csg.Contains(out, 5, 0, 2.5))
	assert.False(t, csg.Contains(out, 0, 5, 2.5))

	// Centre disc and outer rim stay intact.
	solid, empty = angularRuns(out, 0.8, 2.5)
	assert.Equal(t, 0, solid)
	assert.Equal(t, 0, empty)
	assert.True(t, csg.Contains(out, 0.8, 0, 2.5))
	assert.True(t, csg.Contains(out, 9.5, 0, 2.5))
}

func TestApplySpokesCutoutAngle(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"n_spokes":    postproc.Count(5),
		"spokes_od":   postproc.Num(18),
		"spoke_width": postproc.Num(2),
	})
	require.NoError(t, err)

	// Near the outer cutout radius each cutout subtends tau - 2*a2.
	const samples = 7200

	radius := 8.95
	emptyCount := 0

	for i := 0; i < samples; i++ {
		ang := 2 * math.Pi * float64(i) / float64(samples)
		if !csg.Contains(out, radius*math.Cos(ang), radius*math.Sin(ang), 2.5) {
			emptyCount++
		}
	}

	tau := 2 * math.Pi / 5
	a2 := math.Asin(1.0 / 9.0)
	wantPerCutout := tau - 2*a2
	gotPerCutout := 2 * math.Pi * float64(emptyCount) / samples / 5

	assert.InDelta(t, wantPerCutout, gotPerCutout, 0.01)
}

func TestApplySpokesRotationalSymmetry(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	const n = 7

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"n_spokes":    postproc.Count(n),
		"spokes_id":   postproc.Num(5),
		"spokes_od":   postproc.Num(18),
		"spoke_width": postproc.Num(1.5),
	})
	require.NoError(t, err)

	tau := 2 * math.Pi / n

	for _, r := range []float64{1, 3, 5, 7, 8.5, 9.5} {
		for i := 0; i < 90; i++ {
			ang := 2 * math.Pi * float64(i) / 90

			x, y := r*math.Cos(ang), r*math.Sin(ang)
			rx, ry := r*math.Cos(ang+tau), r*math.Sin(ang+tau)

			assert.Equal(t,
				csg.Contains(out, x, y, 2.5),
				csg.Contains(out, rx, ry, 2.5),
				"r=%v ang=%v", r, ang)
		}
	}
}

func TestApplySpokesInvalidCount(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	_, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"n_spokes":    postproc.Count(1),
		"spokes_od":   postproc.Num(18),
		"spoke_width": postproc.Num(2),
	})

	var invalid *postproc.InvalidParameterError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "spokes", invalid.Step)
	assert.Equal(t, "n_spokes", invalid.Param)
}

func TestApplyChamferBothFaces(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"chamfer": postproc.Num(1),
	})
	require.NoError(t, err)

	assert.False(t, csg.Contains(out, 9.9, 0, 4.95))
	assert.False(t, csg.Contains(out, 9.9, 0, 0.05))
	assert.True(t, csg.Contains(out, 9.9, 0, 2.5))
	assert.True(t, csg.Contains(out, 8.5, 0, 4.95))
}

func TestApplyFullStack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svg := filepath.Join(dir, "profiles.svg")

	pipe := newPipeline(t,
		postproc.WithLogger(zaptest.NewLogger(t)),
		postproc.WithDrawer(drawer.NewSVGDrawer(svg)),
	)

	out, err := pipe.Apply(context.Background(), csg.Cylinder(10, 5), postproc.Pool{
		"bore_d":       postproc.Num(3),
		"recess":       postproc.Num(1),
		"recess_d":     postproc.Num(12),
		"hub_d":        postproc.Num(4),
		"hub_length":   postproc.Num(2),
		"n_spokes":     postproc.Count(5),
		"spokes_id":    postproc.Num(6),
		"spokes_od":    postproc.Num(16),
		"spoke_width":  postproc.Num(2),
		"spoke_fillet": postproc.Num(0.5),
		"chamfer":      postproc.Num(0.5),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// A spot check on every feature: bore, recess annulus, hub boss, spoke
	// cutout, chamfered corner.
	assert.False(t, csg.Contains(out, 0, 0, 2.5))
	assert.False(t, csg.Contains(out, 3, 0, 4.5))
	assert.True(t, csg.Contains(out, 1.75, 0, 6.5))
	solid, empty := angularRuns(out, 5.5, 2.5)
	assert.Equal(t, 5, solid)
	assert.Equal(t, 5, empty)
	assert.False(t, csg.Contains(out, 9.95, 0, 4.98))

	assert.FileExists(t, svg)
}

func TestApplyCancelledContext(t *testing.T) {
	t.Parallel()

	pipe := newPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipe.Apply(ctx, csg.Cylinder(10, 5), postproc.Pool{})
	assert.True(t, errors.Is(err, context.Canceled))
}
