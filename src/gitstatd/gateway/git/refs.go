package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
)

// Head resolves HEAD. A symbolic HEAD yields the branch short name even
// when the branch is unborn; in that case the commit is empty.
func (g *gateway) Head(sess *entity.Session) (string, string, error) {
	h := handleOf(sess)

	branch := ""
	if ref, err := h.repo.Reference(plumbing.HEAD, false); err == nil {
		if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
			branch = ref.Target().Short()
		}
	}

	head, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", branch, nil
		}
		return "", branch, fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), branch, nil
}

// Upstream reads the branch's tracking configuration. Everything here is
// best effort: a missing or unreadable config simply yields empty fields.
func (g *gateway) Upstream(sess *entity.Session, branch string) (string, string) {
	h := handleOf(sess)

	cfg, err := h.repo.Config()
	if err != nil {
		return "", ""
	}

	upstream := ""
	remoteName := ""
	if b, ok := cfg.Branches[branch]; ok && b.Merge != "" {
		short := b.Merge.Short()
		switch b.Remote {
		case "", ".":
			upstream = short
		default:
			upstream = b.Remote + "/" + short
			remoteName = b.Remote
		}
	}
	if remoteName == "" {
		remoteName = "origin"
	}

	remoteURL := ""
	if rc, ok := cfg.Remotes[remoteName]; ok && len(rc.URLs) > 0 {
		remoteURL = rc.URLs[0]
	}
	return upstream, remoteURL
}

// AheadBehind walks the commit graph on both sides of the merge base. A
// branch without a remote-tracking ref counts as 0/0 rather than an error.
func (g *gateway) AheadBehind(sess *entity.Session, commit, upstream string) (uint64, uint64, error) {
	h := handleOf(sess)
	if commit == "" || upstream == "" {
		return 0, 0, nil
	}

	upRef, err := h.repo.Reference(plumbing.ReferenceName("refs/remotes/"+upstream), true)
	if err != nil {
		return 0, 0, nil
	}
	if upRef.Hash().String() == commit {
		return 0, 0, nil
	}

	headCommit, err := h.repo.CommitObject(plumbing.NewHash(commit))
	if err != nil {
		return 0, 0, fmt.Errorf("loading HEAD commit: %w", err)
	}
	upCommit, err := h.repo.CommitObject(upRef.Hash())
	if err != nil {
		return 0, 0, fmt.Errorf("loading upstream commit: %w", err)
	}

	ahead, err := countExclusive(headCommit, upCommit)
	if err != nil {
		return 0, 0, err
	}
	behind, err := countExclusive(upCommit, headCommit)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// countExclusive counts commits reachable from 'from' but not from 'other'.
func countExclusive(from, other *object.Commit) (uint64, error) {
	reachable := make(map[plumbing.Hash]bool)
	err := object.NewCommitPreorderIter(other, nil, nil).ForEach(func(c *object.Commit) error {
		reachable[c.Hash] = true
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking reachable commits: %w", err)
	}

	var n uint64
	err = object.NewCommitPreorderIter(from, reachable, nil).ForEach(func(*object.Commit) error {
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting exclusive commits: %w", err)
	}
	return n, nil
}

// FirstTagAt scans all tag refs, peeling annotated tags, and keeps the
// lexicographically smallest name pointing at commit.
func (g *gateway) FirstTagAt(sess *entity.Session, commit string) (string, error) {
	h := handleOf(sess)
	if commit == "" {
		return "", nil
	}
	target := plumbing.NewHash(commit)

	iter, err := h.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	best := ""
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		points := ref.Hash()
		if tag, err := h.repo.TagObject(ref.Hash()); err == nil {
			points = tag.Target
		}
		if points != target {
			return nil
		}
		if name := ref.Name().Short(); best == "" || name < best {
			best = name
		}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return "", fmt.Errorf("iterating tags: %w", err)
	}
	return best, nil
}
