package postproc

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cogforge/gearpost/pkg/geom"
)

// Pipeline applies the fixed modification sequence to a solid body.
type Pipeline struct {
	kernel geom.Kernel
	frame  geom.Frame
	steps  []Step
	log    *zap.Logger
	drawer Drawer
}

// New creates a pipeline bound to a geometry kernel and a gear frame. The
// step order is resolved from the steps' declared ordering constraints.
func New(kernel geom.Kernel, frame geom.Frame, opts ...Option) (*Pipeline, error) {
	if kernel == nil {
		return nil, ErrKernelMustBeSet
	}

	pipe := &Pipeline{
		kernel: kernel,
		frame:  frame,
		log:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(pipe)
	}

	steps, err := orderSteps([]Step{
		boreStep{},
		recessStep{},
		hubStep{},
		spokesStep{},
		chamferStep{},
	})
	if err != nil {
		return nil, err
	}

	if err := checkParamKinds(steps); err != nil {
		return nil, err
	}

	pipe.steps = steps

	return pipe, nil
}

// Sequence returns the resolved step order.
func (p *Pipeline) Sequence() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}

	return names
}

// Apply threads the body through every step in order. A step whose trigger
// parameter is absent passes the body through unchanged; the first binding,
// validation or kernel error aborts the invocation with no partial result.
func (p *Pipeline) Apply(ctx context.Context, body geom.Solid, pool Pool) (geom.Solid, error) {
	if body == nil {
		return nil, ErrBodyMustBeSet
	}

	log := p.log.With(zap.String("run_id", uuid.NewString()))
	env := &Env{Frame: p.frame, Kernel: p.kernel, log: log, drawer: p.drawer}

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "step %s", step.Name())
		}

		args, triggered, err := bind(step, pool)
		if err != nil {
			return nil, err
		}

		if !triggered {
			log.Debug("step disabled", zap.String("step", step.Name()))

			continue
		}

		start := time.Now()

		body, err = step.Apply(env, body, args)
		if err != nil {
			return nil, err
		}

		log.Debug("step applied",
			zap.String("step", step.Name()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	if p.drawer != nil {
		if err := p.drawer.Draw(); err != nil {
			return nil, errors.Wrap(err, "unable to draw profiles")
		}
	}

	return body, nil
}

// orderSteps resolves the modification sequence from the steps' ordering
// constraints via a stable topological sort. A cycle or an unknown
// predecessor is a construction error.
func orderSteps(steps []Step) ([]Step, error) {
	byName := make(map[string]Step, len(steps))
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	for _, s := range steps {
		if _, ok := byName[s.Name()]; ok {
			return nil, errors.Wrap(ErrDuplicateStep, s.Name())
		}

		byName[s.Name()] = s

		if err := g.AddVertex(s.Name()); err != nil {
			return nil, errors.Wrapf(err, "unable to add step %s", s.Name())
		}
	}

	for _, s := range steps {
		for _, dep := range s.After() {
			if _, ok := byName[dep]; !ok {
				return nil, errors.Errorf("step %s: unknown predecessor %s", s.Name(), dep)
			}

			if err := g.AddEdge(dep, s.Name()); err != nil {
				return nil, errors.Wrapf(err, "unable to order %s after %s", s.Name(), dep)
			}
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort steps")
	}

	ordered := make([]Step, 0, len(order))
	for _, name := range order {
		ordered = append(ordered, byName[name])
	}

	return ordered, nil
}

// checkParamKinds enforces the pool invariant that a parameter name shared
// between steps keeps a single meaning: the same name may not be declared
// with two different kinds.
func checkParamKinds(steps []Step) error {
	kinds := make(map[string]Kind)

	for _, s := range steps {
		for _, spec := range s.Params() {
			if prev, ok := kinds[spec.Name]; ok && prev != spec.Kind {
				return errors.Errorf("parameter %q is declared with conflicting kinds", spec.Name)
			}

			kinds[spec.Name] = spec.Kind
		}
	}

	return nil
}
