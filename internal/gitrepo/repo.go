// Package gitrepo wraps repository access for the tidygit tools.
//
// Reads (commit walks, status, refs, remotes) go through go-git. A small git
// CLI runner covers the operations that must honor user-level git
// configuration: creating signed commits and pushing with the user's
// credential helpers.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// ErrBareRepository is reported when a tool needs a working tree.
	ErrBareRepository = errors.New("bare repository")
	// ErrDetachedHead is reported when a tool needs a current branch.
	ErrDetachedHead = errors.New("detached HEAD is not supported")
)

// Repository is an opened non-bare repository rooted at Path.
type Repository struct {
	repo *gitlib.Repository
	path string
	git  runner
}

// Open opens the repository at repoPath, searching parent directories the
// way git does. Bare repositories are rejected.
func Open(repoPath string) (*Repository, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gitlib.ErrIsBareRepository) {
			return nil, ErrBareRepository
		}
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	root := wt.Filesystem.Root()
	return &Repository{repo: repo, path: root, git: runner{path: root}}, nil
}

// Root returns the absolute path of the working tree.
func (r *Repository) Root() string {
	return r.path
}

// IsDirty reports whether the working tree has staged, unstaged, or
// untracked changes.
func (r *Repository) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

// CurrentBranch returns the short name and tip commit of the checked-out
// branch. A detached HEAD is a reported error.
func (r *Repository) CurrentBranch() (string, *object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil, ErrDetachedHead
	}
	tip, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", nil, fmt.Errorf("resolve branch tip: %w", err)
	}
	return head.Name().Short(), tip, nil
}

// HeadCommit returns the commit HEAD points at, branch or not.
func (r *Repository) HeadCommit() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	return r.repo.CommitObject(head.Hash())
}

// CommitObject looks up a commit by hash.
func (r *Repository) CommitObject(hash plumbing.Hash) (*object.Commit, error) {
	return r.repo.CommitObject(hash)
}
