package gitrepo

import (
	"fmt"
	"sort"

	gitlib "github.com/go-git/go-git/v5"
)

// TouchedFiles returns the sorted relative paths of every file Git reports
// as staged, unstaged, or untracked in the working tree.
func (r *Repository) TouchedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	var paths []string
	for path, st := range status {
		if st.Staging == gitlib.Unmodified && st.Worktree == gitlib.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
