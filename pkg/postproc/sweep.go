package postproc

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SpokeSweep validates spoke cutter geometry across a whole grid of
// parameters without touching a kernel: every combination must resolve to a
// well-formed wedge, with the inner cutout radius strictly below the outer
// one after the epsilon nudges, and its cutter profile must sketch without
// error. An inner diameter of zero stands for absent.
type SpokeSweep struct {
	Counts         []int
	InnerDiameters []float64
	OuterDiameters []float64
	Widths         []float64

	// Concurrency bounds the number of combinations checked in parallel.
	// Zero or negative means sequential.
	Concurrency int
}

// Check resolves every combination in the grid and returns the first
// failure, annotated with the offending combination.
func (s SpokeSweep) Check(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)

	concurrent := s.Concurrency
	if concurrent < 1 {
		concurrent = 1
	}
	grp.SetLimit(concurrent)

	inner := s.InnerDiameters
	if len(inner) == 0 {
		inner = []float64{0}
	}

	for _, n := range s.Counts {
		for _, id := range inner {
			for _, od := range s.OuterDiameters {
				for _, w := range s.Widths {
					n, id, od, w := n, id, od, w

					grp.Go(func() error {
						if err := ctx.Err(); err != nil {
							return err
						}

						wdg, err := spokeWedge(n, w, id, od, id > 0)
						if err == nil {
							err = wdg.profile().Err()
						}

						return errors.Wrapf(err,
							"n_spokes=%d spokes_id=%v spokes_od=%v spoke_width=%v",
							n, id, od, w)
					})
				}
			}
		}
	}

	return grp.Wait()
}
