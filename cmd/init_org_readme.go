package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/config"
	"github.com/tidygit/tidygit/internal/githubclient"
	"github.com/tidygit/tidygit/internal/gitrepo"
	"github.com/tidygit/tidygit/internal/orgprofile"
	"github.com/tidygit/tidygit/internal/remoteurl"
)

const orgProfileRepo = ".github"

var initOrgReadmeOpts struct {
	repoPath         string
	remote           string
	organizationName string
}

var initOrgReadmeCmd = &cobra.Command{
	Use:   "init-org-readme",
	Short: "Initialize the GitHub organization profile repository (.github)",
	Args:  cobra.NoArgs,
	RunE:  runInitOrgReadme,
}

func init() {
	initOrgReadmeCmd.Flags().StringVar(&initOrgReadmeOpts.repoPath, "repo-path", ".", "path to a repository that belongs to the organization (used for inference)")
	initOrgReadmeCmd.Flags().StringVar(&initOrgReadmeOpts.remote, "remote", "origin", "remote name used to infer the organization")
	initOrgReadmeCmd.Flags().StringVar(&initOrgReadmeOpts.organizationName, "organization-name", "", "override the organization that owns the repository")
	rootCmd.AddCommand(initOrgReadmeCmd)
}

var (
	successf = color.New(color.FgGreen).PrintfFunc()
	warningf = color.New(color.FgYellow).PrintfFunc()
)

func runInitOrgReadme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, err := gitrepo.Open(initOrgReadmeOpts.repoPath)
	if err != nil {
		return err
	}
	remoteURL, err := repo.RemoteURL(initOrgReadmeOpts.remote)
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

	organization := initOrgReadmeOpts.organizationName
	if organization == "" {
		organization, _, _ = strings.Cut(locator.RepoPath(), "/")
	}
	if organization == "" {
		return fmt.Errorf("could not infer an organization name from the remote, provide --organization-name")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	token, err := cfg.RequireGitHubToken()
	if err != nil {
		return err
	}
	github, err := githubclient.New(token)
	if err != nil {
		return err
	}

	if err := github.OrganizationExists(ctx, organization); err != nil {
		if errors.Is(err, githubclient.ErrNotFound) {
			return fmt.Errorf("organization %s was not found, verify the name", organization)
		}
		return err
	}

	exists, err := github.RepoExists(ctx, organization, orgProfileRepo)
	if err != nil {
		return err
	}
	if exists {
		successf("Organization repository %s/%s already exists. Nothing to do.\n", organization, orgProfileRepo)
		return nil
	}

	warningf("%s/%s does not exist. Creating it now...\n", organization, orgProfileRepo)
	if err := github.CreateOrgRepo(ctx, organization, orgProfileRepo); err != nil {
		return err
	}
	successf("Created GitHub repository %s/%s.\n", organization, orgProfileRepo)

	warningf("Preparing a temporary repository to push the initial profile README...\n")
	err = orgprofile.Run(orgprofile.Options{Organization: organization, Token: token})
	if err != nil {
		return err
	}
	successf("Initial profile README pushed to %s/%s.\n", organization, orgProfileRepo)
	return nil
}
