package postproc

import (
	"go.uber.org/zap"

	"github.com/cogforge/gearpost/pkg/geom"
)

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithLogger sets the logger used for per-step debug logging. The default is
// a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithDrawer records every cutter profile the steps sketch and flushes the
// drawer after a successful run.
func WithDrawer(d Drawer) Option {
	return func(p *Pipeline) {
		p.drawer = d
	}
}

// Drawer collects sketched cutter profiles for later rendering.
type Drawer interface {
	// AddProfile records one profile sketched by the named step.
	AddProfile(step string, p *geom.Profile)
	// Draw renders everything collected so far.
	Draw() error
}
