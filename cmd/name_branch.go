package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/config"
	"github.com/tidygit/tidygit/internal/gitrepo"
	"github.com/tidygit/tidygit/internal/namer"
)

// previousCommitLimit bounds how much merged history is fed to the model as
// contrast for the unmerged commits.
const previousCommitLimit = 8

var nameBranchOpts struct {
	repoPath     string
	targetBranch string
	noSwitch     bool
}

var nameBranchCmd = &cobra.Command{
	Use:   "name-branch",
	Short: "Name a feature branch from its commits using OpenAI and switch to it",
	Args:  cobra.NoArgs,
	RunE:  runNameBranch,
}

func init() {
	nameBranchCmd.Flags().StringVar(&nameBranchOpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	nameBranchCmd.Flags().StringVar(&nameBranchOpts.targetBranch, "target-branch", "origin/main", "target branch to compare against")
	nameBranchCmd.Flags().BoolVar(&nameBranchOpts.noSwitch, "no-switch", false, "do not switch to the new branch after creating it")
	rootCmd.AddCommand(nameBranchCmd)
}

func runNameBranch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	apiKey, err := cfg.RequireOpenAIKey()
	if err != nil {
		return err
	}
	branchNamer, err := namer.New(apiKey)
	if err != nil {
		return err
	}

	repo, err := gitrepo.Open(nameBranchOpts.repoPath)
	if err != nil {
		return err
	}
	headCommit, err := repo.HeadCommit()
	if err != nil {
		return err
	}
	targetCommit, err := repo.ResolveCommit(nameBranchOpts.targetBranch)
	if err != nil {
		return fmt.Errorf("target branch %s does not exist", nameBranchOpts.targetBranch)
	}

	newCommits, err := repo.CommitsBetween(targetCommit, headCommit)
	if err != nil {
		return err
	}
	previousCommits, err := repo.RecentCommits(targetCommit, previousCommitLimit)
	if err != nil {
		return err
	}

	branchName, err := branchNamer.GenerateBranchName(cmd.Context(),
		gitrepo.CommitMessages(newCommits), gitrepo.CommitMessages(previousCommits))
	if err != nil {
		return err
	}
	fmt.Printf("Generated feature branch name: %s\n", branchName)

	if err := repo.CreateBranch(branchName, headCommit.Hash); err != nil {
		return err
	}
	if nameBranchOpts.noSwitch {
		fmt.Printf("Created new branch: %s\n", branchName)
		return nil
	}
	if err := repo.Checkout(branchName); err != nil {
		return err
	}
	fmt.Printf("Checked out new branch: %s\n", branchName)
	return nil
}
