package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/gofrs/uuid"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	ierrors "github.com/promptkit/gitstatd/src/gitstatd/internal/errors"
)

// repoHandle is the concrete session state behind entity.RepoHandle. The
// index is loaded when the session is built; ignore patterns and the
// tracked-path sets are derived lazily on the first working-tree scan.
// Scan workers share one handle, hence the sync.Once.
type repoHandle struct {
	repo *gogit.Repository
	idx  *index.Index

	scanOnce sync.Once
	ignore   gitignore.Matcher
	tracked  map[string]struct{}
}

func handleOf(sess *entity.Session) *repoHandle {
	h, ok := sess.Handle.(*repoHandle)
	if !ok {
		panic(fmt.Sprintf("session %s carries a foreign repo handle", sess.UUID))
	}
	return h
}

// FindRepoRoot walks upward from path until it finds a .git directory or
// gitfile. The walk is pure stat traffic; the object database is not
// opened here.
func (g *gateway) FindRepoRoot(path string) (string, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", &ierrors.NotARepositoryError{Path: path}
	}

	for dir := abs; ; {
		dotgit := filepath.Join(dir, ".git")
		if fi, err := os.Stat(dotgit); err == nil {
			if fi.IsDir() {
				return dir, dotgit, nil
			}
			if gitDir, err := readGitfile(dotgit, dir); err == nil {
				return dir, gitDir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", &ierrors.NotARepositoryError{Path: path}
		}
		dir = parent
	}
}

// readGitfile resolves a "gitdir: <path>" redirection, as written by
// git-worktree and submodule checkouts.
func readGitfile(path, workdir string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%q is not a gitfile", path)
	}
	target := strings.TrimSpace(line[len(prefix):])
	if !filepath.IsAbs(target) {
		target = filepath.Join(workdir, target)
	}
	return filepath.Clean(target), nil
}

// OpenSession opens the repository at workdir and assembles a session
// carrying the loaded index and the current staleness signature.
func (g *gateway) OpenSession(ctx context.Context, workdir, gitDir string) (*entity.Session, error) {
	repo, err := gogit.PlainOpenWithOptions(workdir, &gogit.PlainOpenOptions{})
	if err != nil {
		if err == gogit.ErrRepositoryNotExists {
			return nil, &ierrors.NotARepositoryError{Path: workdir}
		}
		return nil, fmt.Errorf("opening repository at %q: %w", workdir, err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		// A repository without an index file (fresh init) scans as empty.
		idx = &index.Index{}
	}

	return &entity.Session{
		UUID:      uuid.Must(uuid.NewV4()),
		Workdir:   workdir,
		GitDir:    gitDir,
		Signature: g.Signature(gitDir),
		Handle:    &repoHandle{repo: repo, idx: idx},
	}, nil
}

// Signature stats the metadata files whose mutation invalidates a cached
// session. Anything unreadable contributes zero values, which still
// compares consistently between lookups.
func (g *gateway) Signature(gitDir string) entity.Signature {
	var sig entity.Signature
	if fi, err := os.Stat(filepath.Join(gitDir, "index")); err == nil {
		sig.IndexSize = fi.Size()
		sig.IndexModTime = fi.ModTime()
	}
	if fi, err := os.Stat(filepath.Join(gitDir, "HEAD")); err == nil {
		sig.HeadModTime = fi.ModTime()
	}
	if fi, err := os.Stat(filepath.Join(gitDir, "refs")); err == nil {
		sig.RefsModTime = fi.ModTime()
	}
	if fi, err := os.Stat(filepath.Join(gitDir, "packed-refs")); err == nil {
		sig.PackedSize = fi.Size()
		sig.PackedModTime = fi.ModTime()
	}
	return sig
}
