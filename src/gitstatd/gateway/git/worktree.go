package git

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
)

// HasStagedChanges compares the index against the HEAD tree in both
// directions: changed or added entries, and tracked paths deleted from the
// index. Conflict entries are excluded; they surface as unstaged instead.
func (g *gateway) HasStagedChanges(sess *entity.Session) (bool, error) {
	h := handleOf(sess)

	merged := make(map[string]*index.Entry, len(h.idx.Entries))
	for _, e := range h.idx.Entries {
		if e.Stage == index.Merged {
			merged[e.Name] = e
		}
	}

	head, err := h.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Unborn branch: everything in the index is staged.
			return len(merged) > 0, nil
		}
		return false, err
	}
	commit, err := h.repo.CommitObject(head.Hash())
	if err != nil {
		return false, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return false, err
	}

	type treeFile struct {
		hash plumbing.Hash
		mode filemode.FileMode
	}
	inTree := make(map[string]treeFile, len(merged))
	files := tree.Files()
	defer files.Close()
	for {
		f, err := files.Next()
		if err != nil {
			break
		}
		inTree[f.Name] = treeFile{hash: f.Hash, mode: f.Mode}
	}

	for name, e := range merged {
		tf, ok := inTree[name]
		if !ok || tf.hash != e.Hash || tf.mode != e.Mode {
			return true, nil
		}
	}
	for name := range inTree {
		if _, ok := merged[name]; !ok {
			return true, nil
		}
	}
	return false, nil
}

// IndexEntryCount is the admission-control input: the scan is skipped
// entirely when this exceeds the configured bound.
func (g *gateway) IndexEntryCount(sess *entity.Session) int {
	return len(handleOf(sess).idx.Entries)
}

// ScanUnits slices the index into `shards` contiguous entry ranges and
// adds one untracked-scan unit per top-level working-tree entry. Units are
// disjoint, so workers never contend and the aggregate is order
// independent.
func (g *gateway) ScanUnits(sess *entity.Session, shards int) []ScanUnit {
	h := handleOf(sess)
	if shards < 1 {
		shards = 1
	}

	var units []ScanUnit
	n := len(h.idx.Entries)
	if n > 0 {
		per := (n + shards - 1) / shards
		for lo := 0; lo < n; lo += per {
			hi := lo + per
			if hi > n {
				hi = n
			}
			units = append(units, ScanUnit{Kind: KindTracked, Lo: lo, Hi: hi})
		}
	}

	entries, err := os.ReadDir(sess.Workdir)
	if err != nil {
		return units
	}
	for _, e := range entries {
		if e.Name() == gogitDirName {
			continue
		}
		units = append(units, ScanUnit{Kind: KindUntracked, Root: e.Name()})
	}
	return units
}

const gogitDirName = ".git"

// Scan runs one unit. Failures to read anything inside the unit count as
// "nothing found"; a scan must never take down its worker.
func (g *gateway) Scan(sess *entity.Session, unit ScanUnit) (bool, bool) {
	switch unit.Kind {
	case KindTracked:
		return g.scanTracked(sess, unit.Lo, unit.Hi), false
	case KindUntracked:
		return false, g.scanUntracked(sess, unit.Root)
	}
	return false, false
}

func (g *gateway) scanTracked(sess *entity.Session, lo, hi int) bool {
	h := handleOf(sess)
	if lo < 0 || hi > len(h.idx.Entries) {
		return false
	}
	for _, e := range h.idx.Entries[lo:hi] {
		if entryModified(sess.Workdir, e) {
			return true
		}
	}
	return false
}

// entryModified compares one index entry against the working tree. The
// stat fields decide the cheap cases; an mtime-only mismatch re-hashes the
// content so a bare touch does not report dirty.
func entryModified(workdir string, e *index.Entry) bool {
	if e.Stage != index.Merged {
		// Conflict entries always show as unstaged changes.
		return true
	}
	if e.Mode == filemode.Submodule {
		return false
	}

	path := filepath.Join(workdir, filepath.FromSlash(e.Name))
	fi, err := os.Lstat(path)
	if err != nil {
		return os.IsNotExist(err)
	}

	if e.Mode == filemode.Symlink {
		if fi.Mode()&os.ModeSymlink == 0 {
			return true
		}
		target, err := os.Readlink(path)
		if err != nil {
			return false
		}
		return plumbing.ComputeHash(plumbing.BlobObject, []byte(target)) != e.Hash
	}
	if fi.IsDir() || fi.Mode()&os.ModeSymlink != 0 {
		return true
	}

	execNow := fi.Mode()&0o100 != 0
	execThen := e.Mode == filemode.Executable
	if execNow != execThen {
		return true
	}
	if fi.Size() != int64(e.Size) {
		return true
	}
	if mtimeEqual(fi.ModTime(), e.ModifiedAt) {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return plumbing.ComputeHash(plumbing.BlobObject, data) != e.Hash
}

// mtimeEqual tolerates filesystems that drop sub-second precision on
// either side of the comparison.
func mtimeEqual(a, b time.Time) bool {
	if a.Equal(b) {
		return true
	}
	if a.Nanosecond() == 0 || b.Nanosecond() == 0 {
		return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
	}
	return false
}

func (g *gateway) scanUntracked(sess *entity.Session, root string) bool {
	h := handleOf(sess)
	h.initScanState(sess.Workdir)

	abs := filepath.Join(sess.Workdir, root)
	fi, err := os.Lstat(abs)
	if err != nil {
		return false
	}
	if !fi.IsDir() {
		return !h.isTracked(root) && !h.isIgnored(root, false)
	}
	if h.isIgnored(root, true) {
		return false
	}

	found := false
	filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(sess.Workdir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == gogitDirName {
				return filepath.SkipDir
			}
			if h.isIgnored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if h.isTracked(rel) || h.isIgnored(rel, false) {
			return nil
		}
		found = true
		return filepath.SkipAll
	})
	return found
}

// initScanState derives the tracked-path sets and ignore matcher once per
// session; subsequent scans of the same session reuse them.
func (h *repoHandle) initScanState(workdir string) {
	h.scanOnce.Do(func() {
		h.tracked = make(map[string]struct{}, len(h.idx.Entries))
		for _, e := range h.idx.Entries {
			h.tracked[e.Name] = struct{}{}
		}

		patterns, err := gitignore.ReadPatterns(osfs.New(workdir), nil)
		if err != nil {
			patterns = nil
		}
		h.ignore = gitignore.NewMatcher(patterns)
	})
}

func (h *repoHandle) isTracked(rel string) bool {
	_, ok := h.tracked[rel]
	return ok
}

func (h *repoHandle) isIgnored(rel string, isDir bool) bool {
	return h.ignore.Match(strings.Split(rel, "/"), isDir)
}
