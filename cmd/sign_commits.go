package cmd

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/gitrepo"
)

var signCommitsOpts struct {
	repoPath    string
	remoteName  string
	pushChanges bool
	baseBranch  string
}

var signCommitsCmd = &cobra.Command{
	Use:   "sign-commits",
	Short: "Rewrite recent unsigned commits, signing them",
	Long: `Rewrite recent unsigned commits, signing them. Requires a clean
working tree. By default the rewrite stops at the first signed commit; with
--base-branch it rewrites every commit down to the merge base instead.`,
	Args: cobra.NoArgs,
	RunE: runSignCommits,
}

func init() {
	signCommitsCmd.Flags().StringVar(&signCommitsOpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	signCommitsCmd.Flags().StringVar(&signCommitsOpts.remoteName, "remote-name", "origin", "name of the remote to push changes to")
	signCommitsCmd.Flags().BoolVar(&signCommitsOpts.pushChanges, "push-changes", false, "push the rewritten branch to the remote")
	signCommitsCmd.Flags().StringVar(&signCommitsOpts.baseBranch, "base-branch", "", "base branch to rewrite until (e.g. origin/main); rewrites all commits down to the merge base instead of stopping at the first signed commit")
	rootCmd.AddCommand(signCommitsCmd)
}

func runSignCommits(cmd *cobra.Command, args []string) error {
	repo, err := openCleanRepo(signCommitsOpts.repoPath)
	if err != nil {
		return err
	}
	branch, tip, err := repo.CurrentBranch()
	if err != nil {
		return err
	}

	var shouldRewrite gitrepo.RewritePredicate
	if signCommitsOpts.baseBranch != "" {
		baseCommit, err := repo.ResolveCommit(signCommitsOpts.baseBranch)
		if err != nil {
			return fmt.Errorf("could not find base branch %s", signCommitsOpts.baseBranch)
		}
		mergeBase, err := repo.MergeBase(tip, baseCommit)
		if err != nil {
			return fmt.Errorf("no common ancestor found between %s and %s", branch, signCommitsOpts.baseBranch)
		}
		fmt.Printf("Will rewrite commits until merge base: %s\n", mergeBase.Hash.String()[:8])
		shouldRewrite = func(c *object.Commit) bool { return c.Hash != mergeBase.Hash }
	} else {
		fmt.Println("Will rewrite all unsigned commits until the first signed commit.")
		shouldRewrite = func(c *object.Commit) bool { return !gitrepo.IsSigned(c) }
	}

	if _, err := repo.RewriteBranch(branch, nil, true, shouldRewrite); err != nil {
		return err
	}
	fmt.Println("Successfully signed all unsigned commits.")

	if signCommitsOpts.pushChanges {
		if err := repo.ForcePush(signCommitsOpts.remoteName, branch); err != nil {
			return err
		}
		fmt.Printf("Pushed rewritten branch %s to remote.\n", branch)
	}
	return nil
}

// openCleanRepo opens a non-bare repository and rejects a dirty working
// tree, the shared precondition of the rewriting tools.
func openCleanRepo(repoPath string) (*gitrepo.Repository, error) {
	repo, err := gitrepo.Open(repoPath)
	if err != nil {
		return nil, err
	}
	dirty, err := repo.IsDirty()
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, fmt.Errorf("working tree is dirty, commit or stash your changes")
	}
	return repo, nil
}
