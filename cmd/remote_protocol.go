package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/gitrepo"
	"github.com/tidygit/tidygit/internal/remoteurl"
)

var remoteProtocolOpts struct {
	repoPath string
	remote   string
	protocol string
	user     string
}

var remoteProtocolCmd = &cobra.Command{
	Use:   "remote-protocol",
	Short: "Change the URL protocol for a Git remote (https <-> ssh)",
	Args:  cobra.NoArgs,
	RunE:  runRemoteProtocol,
}

func init() {
	remoteProtocolCmd.Flags().StringVar(&remoteProtocolOpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	remoteProtocolCmd.Flags().StringVar(&remoteProtocolOpts.remote, "remote", "origin", "remote name to adjust")
	remoteProtocolCmd.Flags().StringVar(&remoteProtocolOpts.protocol, "protocol", "", "target protocol to use (https or ssh)")
	remoteProtocolCmd.Flags().StringVar(&remoteProtocolOpts.user, "user", "git", "username for the SSH protocol")
	remoteProtocolCmd.MarkFlagRequired("protocol")
	rootCmd.AddCommand(remoteProtocolCmd)
}

func runRemoteProtocol(cmd *cobra.Command, args []string) error {
	target, err := remoteurl.ParseProtocol(remoteProtocolOpts.protocol)
	if err != nil {
		return err
	}

	repo, err := gitrepo.Open(remoteProtocolOpts.repoPath)
	if err != nil {
		return err
	}
	currentURL, err := repo.RemoteURL(remoteProtocolOpts.remote)
	if err != nil {
		return err
	}
	locator, err := remoteurl.Parse(currentURL)
	if err != nil {
		return err
	}

	converted, err := remoteurl.Convert(locator, target, remoteProtocolOpts.user)
	if err != nil {
		return err
	}
	if converted == nil {
		fmt.Printf("Remote %s already uses %s protocol.\n", remoteProtocolOpts.remote, target)
		return nil
	}

	newURL := converted.URL()
	if err := repo.SetRemoteURL(remoteProtocolOpts.remote, newURL); err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s -> %s\n", remoteProtocolOpts.remote, currentURL, newURL)
	return nil
}
