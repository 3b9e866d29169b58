// Package repotest builds throwaway git repositories for tests using
// go-git only, so the suite never shells out to a git binary.
package repotest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a fixture repository on disk.
type Repo struct {
	T    *testing.T
	Dir  string
	Repo *gogit.Repository
}

// Init creates an empty repository in a temp directory with HEAD on the
// given branch.
func Init(t *testing.T, branch string) *Repo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	require.NoError(t, repo.Storer.SetReference(head))

	return &Repo{T: t, Dir: dir, Repo: repo}
}

// WriteFile writes a file relative to the workdir, creating parents.
func (r *Repo) WriteFile(rel, content string) {
	r.T.Helper()
	path := filepath.Join(r.Dir, filepath.FromSlash(rel))
	require.NoError(r.T, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.T, os.WriteFile(path, []byte(content), 0o644))
}

// Add stages one path.
func (r *Repo) Add(rel string) {
	r.T.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.T, err)
	_, err = wt.Add(rel)
	require.NoError(r.T, err)
}

// Commit commits the current index.
func (r *Repo) Commit(msg string) plumbing.Hash {
	r.T.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.T, err)

	hash, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "fixture",
			Email: "fixture@example.com",
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	require.NoError(r.T, err)
	return hash
}

// CommitFile writes, stages and commits one file in a single step.
func (r *Repo) CommitFile(rel, content, msg string) plumbing.Hash {
	r.T.Helper()
	r.WriteFile(rel, content)
	r.Add(rel)
	return r.Commit(msg)
}

// Tag creates a lightweight tag pointing at hash.
func (r *Repo) Tag(name string, hash plumbing.Hash) {
	r.T.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.T, err)
}

// SetRemoteRef writes a remote-tracking ref, e.g. origin/main at hash.
func (r *Repo) SetRemoteRef(remote, branch string, hash plumbing.Hash) {
	r.T.Helper()
	name := plumbing.NewRemoteReferenceName(remote, branch)
	require.NoError(r.T, r.Repo.Storer.SetReference(plumbing.NewHashReference(name, hash)))
}

// ConfigureUpstream records branch.<branch> tracking remote/<branch> and
// the remote URL in the repository config.
func (r *Repo) ConfigureUpstream(branch, remote, url string) {
	r.T.Helper()
	cfg, err := r.Repo.Config()
	require.NoError(r.T, err)

	cfg.Remotes[remote] = &config.RemoteConfig{
		Name: remote,
		URLs: []string{url},
	}
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	require.NoError(r.T, r.Repo.SetConfig(cfg))
}
