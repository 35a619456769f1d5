package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/config"
	"github.com/tidygit/tidygit/internal/githubclient"
	"github.com/tidygit/tidygit/internal/gitrepo"
	"github.com/tidygit/tidygit/internal/namer"
	"github.com/tidygit/tidygit/internal/remoteurl"
)

var createPROpts struct {
	repoPath        string
	remote          string
	targetBranch    string
	noSwitch        bool
	enableAutoMerge bool
}

var createPRCmd = &cobra.Command{
	Use:   "create-pr",
	Short: "Create an automatically named branch and GitHub pull request",
	Long: `Create a new automatically named branch and an automatically
filled GitHub pull request based on the unmerged commits. Uses the OpenAI
API for the branch name and PR title.`,
	Args: cobra.NoArgs,
	RunE: runCreatePR,
}

func init() {
	createPRCmd.Flags().StringVar(&createPROpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	createPRCmd.Flags().StringVar(&createPROpts.remote, "remote", "origin", "remote name to use")
	createPRCmd.Flags().StringVar(&createPROpts.targetBranch, "target-branch", "main", "target branch to compare against")
	createPRCmd.Flags().BoolVar(&createPROpts.noSwitch, "no-switch", false, "do not switch to the new feature branch after creating it")
	createPRCmd.Flags().BoolVar(&createPROpts.enableAutoMerge, "enable-auto-merge", false, "enable auto-merge for the created pull request")
	rootCmd.AddCommand(createPRCmd)
}

func runCreatePR(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	apiKey, err := cfg.RequireOpenAIKey()
	if err != nil {
		return err
	}
	token, err := cfg.RequireGitHubToken()
	if err != nil {
		return err
	}
	prNamer, err := namer.New(apiKey)
	if err != nil {
		return err
	}
	github, err := githubclient.New(token)
	if err != nil {
		return err
	}

	repo, err := gitrepo.Open(createPROpts.repoPath)
	if err != nil {
		return err
	}
	remoteURL, err := repo.RemoteURL(createPROpts.remote)
	if err != nil {
		return err
	}
	locator, err := remoteurl.Parse(remoteURL)
	if err != nil {
		return err
	}
	if locator.RepoHost() != githubclient.Host {
		return fmt.Errorf("remote host %s is not supported, only %s is", locator.RepoHost(), githubclient.Host)
	}
	owner, repoName, err := githubclient.SplitRepoPath(locator.RepoPath())
	if err != nil {
		return err
	}

	headCommit, err := repo.HeadCommit()
	if err != nil {
		return err
	}
	remoteTarget := createPROpts.remote + "/" + createPROpts.targetBranch
	targetCommit, err := repo.ResolveCommit(remoteTarget)
	if err != nil {
		return fmt.Errorf("target branch %s does not exist", remoteTarget)
	}

	newCommits, err := repo.CommitsBetween(targetCommit, headCommit)
	if err != nil {
		return err
	}
	previousCommits, err := repo.RecentCommits(targetCommit, previousCommitLimit)
	if err != nil {
		return err
	}

	details, err := prNamer.GeneratePullRequestDetails(ctx,
		gitrepo.CommitMessages(newCommits), gitrepo.CommitMessages(previousCommits))
	if err != nil {
		return err
	}

	fmt.Printf("Creating branch: %s\n", details.BranchName)
	if err := repo.CreateBranch(details.BranchName, headCommit.Hash); err != nil {
		return err
	}
	if !createPROpts.noSwitch {
		if err := repo.Checkout(details.BranchName); err != nil {
			return err
		}
		fmt.Printf("Checked out new branch: %s\n", details.BranchName)
	}

	fmt.Printf("Pushing branch %s to %s...\n", details.BranchName, createPROpts.remote)
	if err := repo.PushUpstream(createPROpts.remote, details.BranchName); err != nil {
		return err
	}

	fmt.Printf("Generated PR title: %s\n", details.Title)
	fmt.Println("Creating pull request...")
	body := fmt.Sprintf("Auto-generated pull request for changes in the `%s` branch.", details.BranchName)
	pr, err := github.CreatePullRequest(ctx, owner, repoName, details.Title, body,
		details.BranchName, createPROpts.targetBranch)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully created pull request: %s\n", pr.GetHTMLURL())

	if createPROpts.enableAutoMerge {
		fmt.Println("Enabling auto-merge for the pull request...")
		if err := github.EnableAutoMerge(ctx, pr.GetNodeID()); err != nil {
			return err
		}
		fmt.Println("Auto-merge enabled.")
	}
	return nil
}
