// Package session caches one open-repository session per workdir root.
// Staleness is detected by signature comparison on every lookup, so no
// explicit invalidation API exists; eviction only ever costs latency,
// never correctness.
package session

import (
	"container/list"
	"context"
	"sync"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// _maxSessions bounds the cache; prompts rarely hop between more than a
// handful of repositories, so a small LRU is plenty.
const _maxSessions = 16

// Repository is a root-scoped session store.
type Repository interface {
	// Lookup resolves the repository enclosing path and returns a session
	// for its root: the cached one while its signature still matches the
	// on-disk state, otherwise a freshly built replacement. It returns
	// errors.NotARepositoryError for paths outside any repository.
	Lookup(ctx context.Context, path string) (*entity.Session, error)

	// SessionCount returns the number of cached sessions.
	SessionCount() int
}

type repository struct {
	mu sync.Mutex
	// memstore maps workdir root to its cache slot; lru orders roots by
	// recency for eviction.
	memstore map[string]*list.Element
	lru      *list.List

	gateway git.Gateway
	logger  *zap.SugaredLogger
	stats   tally.Scope
}

type slot struct {
	root string
	sess *entity.Session
}

// Params are inbound parameters to construct the repository.
type Params struct {
	fx.In

	Gateway git.Gateway
	Logger  *zap.SugaredLogger
	Stats   tally.Scope
}

// New returns a repository backed by an in-memory LRU store.
func New(p Params) Repository {
	return &repository{
		memstore: make(map[string]*list.Element),
		lru:      list.New(),
		gateway:  p.Gateway,
		logger:   p.Logger,
		stats:    p.Stats,
	}
}

func (r *repository) Lookup(ctx context.Context, path string) (*entity.Session, error) {
	workdir, gitDir, err := r.gateway.FindRepoRoot(path)
	if err != nil {
		return nil, err
	}

	sig := r.gateway.Signature(gitDir)

	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.memstore[workdir]; ok {
		s := el.Value.(*slot)
		if s.sess.Signature == sig {
			r.lru.MoveToFront(el)
			r.stats.Counter("session_hits").Inc(1)
			return s.sess, nil
		}
		// Signature mismatch: the session is stale and rebuilt from
		// scratch below.
		r.lru.Remove(el)
		delete(r.memstore, workdir)
		r.logger.Debugw("session stale", "workdir", workdir, "uuid", s.sess.UUID)
	}

	sess, err := r.gateway.OpenSession(ctx, workdir, gitDir)
	if err != nil {
		return nil, err
	}
	r.stats.Counter("session_builds").Inc(1)

	r.memstore[workdir] = r.lru.PushFront(&slot{root: workdir, sess: sess})
	for r.lru.Len() > _maxSessions {
		oldest := r.lru.Back()
		evicted := oldest.Value.(*slot)
		r.lru.Remove(oldest)
		delete(r.memstore, evicted.root)
		r.logger.Debugw("session evicted", "workdir", evicted.root)
	}
	r.stats.Gauge("cached_sessions").Update(float64(r.lru.Len()))

	return sess, nil
}

func (r *repository) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lru.Len()
}
