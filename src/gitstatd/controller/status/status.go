// Package status implements the resolver that turns one request into one
// full response. Introspection failures on optional fields degrade those
// fields; only the two-field "not a repo" answer and the full answer ever
// leave this package.
package status

import (
	"context"
	"time"

	"github.com/promptkit/gitstatd/src/gitstatd/controller/scan"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git"
	"github.com/promptkit/gitstatd/src/gitstatd/repository/session"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Controller orchestrates the business logic for each request.
type Controller interface {
	// Resolve produces the response for one request. It never fails: a
	// path outside any repository yields the two-field answer, and any
	// repository access problem degrades the affected fields instead of
	// propagating.
	Resolve(ctx context.Context, req entity.Request) *entity.Status
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Sessions session.Repository
	Gateway  git.Gateway
	Scanner  scan.Controller
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type controller struct {
	sessions session.Repository
	gateway  git.Gateway
	scanner  scan.Controller
	logger   *zap.SugaredLogger
	stats    tally.Scope
}

// New creates the status resolver.
func New(p Params) Controller {
	return &controller{
		sessions: p.Sessions,
		gateway:  p.Gateway,
		scanner:  p.Scanner,
		logger:   p.Logger,
		stats:    p.Stats,
	}
}

func (c *controller) Resolve(ctx context.Context, req entity.Request) *entity.Status {
	start := time.Now()
	defer func() {
		c.stats.Timer("resolve_latency").Record(time.Since(start))
	}()
	c.stats.Counter("requests").Inc(1)

	sess, err := c.sessions.Lookup(ctx, req.Path)
	if err != nil {
		// One corrupted or missing repository must not break the stream;
		// every lookup failure is answered as "not a repo".
		c.logger.Debugw("lookup failed", "path", req.Path, "error", err)
		return entity.NotARepo(req.ID)
	}

	st := &entity.Status{
		ID:      req.ID,
		IsRepo:  true,
		Workdir: sess.Workdir,
	}

	commit, branch, err := c.gateway.Head(sess)
	if err != nil {
		c.logger.Debugw("resolving HEAD failed", "workdir", sess.Workdir, "error", err)
	}
	st.HeadCommit = commit
	st.LocalBranch = branch

	st.UpstreamBranch, st.RemoteURL = c.gateway.Upstream(sess, branch)
	st.RepoState = c.gateway.RepoAction(sess)

	if ahead, behind, err := c.gateway.AheadBehind(sess, commit, st.UpstreamBranch); err != nil {
		c.logger.Debugw("ahead/behind failed", "workdir", sess.Workdir, "error", err)
	} else {
		st.Ahead, st.Behind = ahead, behind
	}

	if tag, err := c.gateway.FirstTagAt(sess, commit); err != nil {
		c.logger.Debugw("tag lookup failed", "workdir", sess.Workdir, "error", err)
	} else {
		st.FirstTag = tag
	}

	st.HasStaged, st.Unstaged, st.Untracked = c.scanner.Scan(ctx, sess)

	return st
}
