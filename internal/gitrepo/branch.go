package gitrepo

import (
	"errors"
	"fmt"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// BranchExists reports whether a local branch with the given name exists.
func (r *Repository) BranchExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, err
}

// CreateBranch creates a local branch pointing at the given commit.
func (r *Repository) CreateBranch(name string, target plumbing.Hash) error {
	exists, err := r.BranchExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("branch %s already exists", name)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), target)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// Checkout switches the working tree to the named local branch.
func (r *Repository) Checkout(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	err = wt.Checkout(&gitlib.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)})
	if err != nil {
		return fmt.Errorf("checkout %s: %w", name, err)
	}
	return nil
}

// setBranchTip moves the branch ref to the given commit without touching the
// working tree.
func (r *Repository) setBranchTip(name string, target plumbing.Hash) error {
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), target)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("move branch %s: %w", name, err)
	}
	return nil
}
