package gitrepo

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ResolveCommit resolves a revision (branch, remote branch, tag, or hash) to
// its commit object.
func (r *Repository) ResolveCommit(revision string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	return r.repo.CommitObject(*hash)
}

// MergeBase returns the best common ancestor of a and b, or an error when
// the histories are unrelated.
func (r *Repository) MergeBase(a, b *object.Commit) (*object.Commit, error) {
	bases, err := a.MergeBase(b)
	if err != nil {
		return nil, fmt.Errorf("merge base: %w", err)
	}
	if len(bases) == 0 {
		return nil, fmt.Errorf("no common ancestor found between %s and %s", a.Hash, b.Hash)
	}
	return bases[0], nil
}

// CommitsBetween returns the commits reachable from head but not from
// target, newest first (the target..head range).
func (r *Repository) CommitsBetween(target, head *object.Commit) ([]*object.Commit, error) {
	reachable := map[plumbing.Hash]bool{}
	iter := object.NewCommitPreorderIter(target, nil, nil)
	err := iter.ForEach(func(c *object.Commit) error {
		reachable[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", target.Hash, err)
	}

	var commits []*object.Commit
	iter = object.NewCommitPreorderIter(head, reachable, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", head.Hash, err)
	}
	return commits, nil
}

// RecentCommits returns up to limit commits reachable from the given commit,
// newest first.
func (r *Repository) RecentCommits(from *object.Commit, limit int) ([]*object.Commit, error) {
	var commits []*object.Commit
	iter := object.NewCommitPreorderIter(from, nil, nil)
	err := iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		if len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", from.Hash, err)
	}
	return commits, nil
}

// CommitMessages extracts trimmed commit messages, preserving order.
func CommitMessages(commits []*object.Commit) []string {
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, strings.TrimSpace(c.Message))
	}
	return messages
}
