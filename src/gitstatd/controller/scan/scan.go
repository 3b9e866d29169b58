// Package scan implements the working-tree scan coordinator: a bounded
// worker pool over disjoint scan units, with a size-based admission policy
// that trades accuracy for bounded latency on very large indexes.
package scan

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Controller coordinates one request's working-tree scan.
type Controller interface {
	// Scan reports staged changes, plus the unstaged and untracked
	// tri-states. Staged detection always runs; the tree scan is skipped
	// with both tri-states Unknown when the index exceeds the configured
	// bound.
	Scan(ctx context.Context, sess *entity.Session) (hasStaged bool, unstaged, untracked entity.TriState)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config  entity.Config
	Gateway git.Gateway
	Logger  *zap.SugaredLogger
	Stats   tally.Scope
}

type controller struct {
	config  entity.Config
	gateway git.Gateway
	logger  *zap.SugaredLogger
	stats   tally.Scope
}

// New creates the scan coordinator.
func New(p Params) Controller {
	return &controller{
		config:  p.Config,
		gateway: p.Gateway,
		logger:  p.Logger,
		stats:   p.Stats,
	}
}

func (c *controller) Scan(ctx context.Context, sess *entity.Session) (bool, entity.TriState, entity.TriState) {
	// Staged detection is bounded by index size and never skipped.
	hasStaged, err := c.gateway.HasStagedChanges(sess)
	if err != nil {
		c.logger.Debugw("staged detection failed", "workdir", sess.Workdir, "error", err)
		hasStaged = false
	}

	count := c.gateway.IndexEntryCount(sess)
	if c.config.ScanBounded(count) {
		c.stats.Counter("scan_skipped").Inc(1)
		return hasStaged, entity.Unknown, entity.Unknown
	}

	workers := c.config.WorkerCount()
	units := c.gateway.ScanUnits(sess, workers)

	// Each unit produces an independent pair of booleans; the aggregate is
	// a pure OR, so the outcome cannot depend on worker count or
	// scheduling order.
	var unstaged, untracked atomic.Bool
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, unit := range units {
		// Both answers are already positive; the remaining units cannot
		// change the aggregate.
		if unstaged.Load() && untracked.Load() {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(u git.ScanUnit) {
			defer wg.Done()
			defer func() { <-sem }()

			mod, untr := c.gateway.Scan(sess, u)
			if mod {
				unstaged.Store(true)
			}
			if untr {
				untracked.Store(true)
			}
		}(unit)
	}
	wg.Wait()

	return hasStaged, entity.TriFromBool(unstaged.Load()), entity.TriFromBool(untracked.Load())
}
