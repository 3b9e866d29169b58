package git

import (
	"os"
	"path/filepath"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
)

// RepoAction probes the .git directory for in-progress operations. Names
// and precedence follow libgit2's repository-state detection, which is
// what shell prompts already expect.
func (g *gateway) RepoAction(sess *entity.Session) string {
	gitDir := sess.GitDir

	exists := func(elem ...string) bool {
		_, err := os.Stat(filepath.Join(append([]string{gitDir}, elem...)...))
		return err == nil
	}

	switch {
	case exists("rebase-merge", "interactive"):
		return "rebase-i"
	case exists("rebase-merge"):
		return "rebase-m"
	case exists("rebase-apply", "rebasing"):
		return "rebase"
	case exists("rebase-apply", "applying"):
		return "am"
	case exists("rebase-apply"):
		return "am/rebase"
	case exists("MERGE_HEAD"):
		return "merge"
	case exists("REVERT_HEAD"):
		return "revert"
	case exists("CHERRY_PICK_HEAD"):
		return "cherry-pick"
	case exists("BISECT_LOG"):
		return "bisect"
	}
	return ""
}
