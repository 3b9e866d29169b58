// Package git reads a repository's on-disk structures: root discovery,
// refs, index, tags, commit-graph distance, and the working-tree
// comparisons the scan workers run. It is the only package that touches
// go-git; everything above it sees the Gateway interface.
package git

import (
	"context"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ScanKind distinguishes the two working-tree scan dimensions.
type ScanKind int

const (
	// KindTracked scans a contiguous range of index entries for
	// modifications against the working tree.
	KindTracked ScanKind = iota
	// KindUntracked scans one top-level working-tree entry for files the
	// index does not know about.
	KindUntracked
)

// ScanUnit is one independent piece of working-tree scan work. Units are
// disjoint; a worker processes a unit without coordinating with its peers.
type ScanUnit struct {
	Kind ScanKind
	// Lo and Hi bound an index-entry range for KindTracked units.
	Lo, Hi int
	// Root is the workdir-relative top-level entry for KindUntracked units.
	Root string
}

// Gateway is the repository introspector. Methods taking a session are
// safe for concurrent use by scan workers; they read session state but
// never mutate it.
type Gateway interface {
	// FindRepoRoot locates the enclosing repository for path. It returns
	// errors.NotARepositoryError when no repository governs the path.
	FindRepoRoot(path string) (workdir string, gitDir string, err error)

	// OpenSession opens the repository and builds a fresh session with its
	// current staleness signature.
	OpenSession(ctx context.Context, workdir, gitDir string) (*entity.Session, error)

	// Signature fingerprints the repository metadata for cache
	// invalidation. Unreadable pieces contribute zero values.
	Signature(gitDir string) entity.Signature

	// Head resolves the HEAD commit hash and, when not detached, the local
	// branch name. An unborn branch yields an empty commit.
	Head(sess *entity.Session) (commit string, branch string, err error)

	// Upstream returns the short upstream tracking branch and the remote
	// URL configured for branch. Both are best effort and may be empty.
	Upstream(sess *entity.Session, branch string) (upstream string, remoteURL string)

	// RepoAction names the in-progress repository action (merge, rebase,
	// cherry-pick, bisect, ...), or returns empty when there is none.
	RepoAction(sess *entity.Session) string

	// AheadBehind counts commits reachable from commit but not upstream
	// and vice versa. A missing remote-tracking ref yields 0/0.
	AheadBehind(sess *entity.Session, commit, upstream string) (ahead, behind uint64, err error)

	// FirstTagAt returns the lexicographically smallest tag pointing at
	// commit, or empty when none does.
	FirstTagAt(sess *entity.Session, commit string) (string, error)

	// HasStagedChanges diffs the index against the HEAD tree. Cost is
	// bounded by index size; it never touches the working tree.
	HasStagedChanges(sess *entity.Session) (bool, error)

	// IndexEntryCount returns the number of entries in the index.
	IndexEntryCount(sess *entity.Session) int

	// ScanUnits partitions the working-tree scan into disjoint units:
	// index-entry ranges across shards plus one unit per top-level entry.
	ScanUnits(sess *entity.Session, shards int) []ScanUnit

	// Scan runs one unit and reports whether it found a modified tracked
	// path or an untracked file. Read failures inside the unit are
	// absorbed as "nothing found".
	Scan(sess *entity.Session, unit ScanUnit) (unstaged bool, untracked bool)
}

type gateway struct {
	logger *zap.SugaredLogger
}

// New creates the go-git backed Gateway.
func New(logger *zap.SugaredLogger) Gateway {
	return &gateway{logger: logger}
}
