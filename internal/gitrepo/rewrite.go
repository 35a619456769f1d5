package gitrepo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNonLinearHistory is reported when the rewrite walk reaches a commit
// with more than one parent. Only linear history is supported.
var ErrNonLinearHistory = errors.New("commits with multiple parents are not supported")

// Author is a replacement identity stamped on rewritten commits.
type Author struct {
	Name  string
	Email string
}

// RewritePredicate decides whether a commit is rewritten. Once it returns
// false for a commit, that commit is kept verbatim and none of its ancestors
// are visited.
type RewritePredicate func(*object.Commit) bool

// RewriteResult reports what RewriteBranch did.
type RewriteResult struct {
	OldTip    plumbing.Hash
	NewTip    plumbing.Hash
	Rewritten int
	// Moved is true when the branch pointer was advanced to a new tip.
	Moved bool
}

// RewriteBranch rewrites the linear history of the named branch, newest
// commit first in the walk but oldest first in object creation, so every
// rewritten commit is created after its (rewritten) parent.
//
// Commits for which shouldRewrite returns false keep their original hash and
// anchor the rewritten chain. Rewritten commits copy the original tree,
// message, and both timestamps; the author and committer identity is
// replaced by newAuthor when non-nil; the commit is GPG-signed iff sign is
// set. The branch pointer moves only when the rewritten tip hash differs
// from the original.
func (r *Repository) RewriteBranch(branch string, newAuthor *Author, sign bool, shouldRewrite RewritePredicate) (RewriteResult, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return RewriteResult{}, fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	tip, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return RewriteResult{}, fmt.Errorf("resolve branch tip: %w", err)
	}
	result := RewriteResult{OldTip: tip.Hash, NewTip: tip.Hash}

	// Walk tip -> root collecting the commits to rewrite. The walk validates
	// linearity for the whole range before any object is written.
	var pending []*object.Commit
	var anchor *object.Commit
	current := tip
	for {
		if !shouldRewrite(current) {
			anchor = current
			break
		}
		if current.NumParents() > 1 {
			return RewriteResult{}, fmt.Errorf("commit %s: %w", current.Hash, ErrNonLinearHistory)
		}
		pending = append(pending, current)
		if current.NumParents() == 0 {
			break
		}
		parent, err := current.Parent(0)
		if err != nil {
			return RewriteResult{}, fmt.Errorf("resolve parent of %s: %w", current.Hash, err)
		}
		current = parent
	}

	if len(pending) == 0 {
		// Predicate excluded the tip itself; nothing to do.
		return result, nil
	}

	// Recreate the chain bottom-up, anchored at the first kept commit (or at
	// no parent when the walk reached the root).
	var parentHash *plumbing.Hash
	if anchor != nil {
		h := anchor.Hash
		parentHash = &h
	}
	for i := len(pending) - 1; i >= 0; i-- {
		original := pending[i]
		rewritten, err := r.commitTree(original, parentHash, newAuthor, sign)
		if err != nil {
			return RewriteResult{}, err
		}
		slog.Debug("rewrote commit", "old", original.Hash.String(), "new", rewritten.String())
		fmt.Printf("Rewrote commit %s -> %s\n", original.Hash, rewritten)
		result.Rewritten++
		parentHash = &rewritten
	}

	result.NewTip = *parentHash
	if result.NewTip != result.OldTip {
		if err := r.setBranchTip(branch, result.NewTip); err != nil {
			return RewriteResult{}, err
		}
		result.Moved = true
	}
	return result, nil
}

// commitTree creates a replacement commit for original via git commit-tree,
// reusing the original tree and copying its message and timestamps. Identity
// and signing come from the user's git/gpg configuration, which is why this
// goes through the CLI runner.
func (r *Repository) commitTree(original *object.Commit, parent *plumbing.Hash, newAuthor *Author, sign bool) (plumbing.Hash, error) {
	authorName, authorEmail := original.Author.Name, original.Author.Email
	committerName, committerEmail := original.Committer.Name, original.Committer.Email
	if newAuthor != nil {
		authorName, authorEmail = newAuthor.Name, newAuthor.Email
		committerName, committerEmail = newAuthor.Name, newAuthor.Email
	}

	args := []string{"commit-tree"}
	if parent != nil {
		args = append(args, "-p", parent.String())
	}
	if sign {
		args = append(args, "-S")
	}
	args = append(args, "-m", original.Message, original.TreeHash.String())

	env := []string{
		"GIT_AUTHOR_NAME=" + authorName,
		"GIT_AUTHOR_EMAIL=" + authorEmail,
		"GIT_AUTHOR_DATE=" + original.Author.When.Format(time.RFC3339),
		"GIT_COMMITTER_NAME=" + committerName,
		"GIT_COMMITTER_EMAIL=" + committerEmail,
		"GIT_COMMITTER_DATE=" + original.Committer.When.Format(time.RFC3339),
	}

	out, err := r.git.run(args, env, "git commit-tree")
	if err != nil {
		return plumbing.ZeroHash, err
	}
	hash := strings.TrimSpace(out)
	if !plumbing.IsHash(hash) {
		return plumbing.ZeroHash, fmt.Errorf("git commit-tree: unexpected output %q", hash)
	}
	return plumbing.NewHash(hash), nil
}

// IsSigned reports whether the commit carries a GPG signature.
func IsSigned(c *object.Commit) bool {
	return c.PGPSignature != ""
}
