package cmd

import (
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/gitrepo"
)

var changeAuthorOpts struct {
	repoPath    string
	authorName  string
	authorEmail string
	gpgSign     bool
}

var changeAuthorCmd = &cobra.Command{
	Use:   "change-author",
	Short: "Rewrite a branch so every commit uses a new author identity",
	Long: `Rewrite the current branch so every commit uses a new author
identity. Requires a clean working tree.`,
	Args: cobra.NoArgs,
	RunE: runChangeAuthor,
}

func init() {
	changeAuthorCmd.Flags().StringVar(&changeAuthorOpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	changeAuthorCmd.Flags().StringVar(&changeAuthorOpts.authorName, "author-name", "", "new author name")
	changeAuthorCmd.Flags().StringVar(&changeAuthorOpts.authorEmail, "author-email", "", "new author email")
	changeAuthorCmd.Flags().BoolVar(&changeAuthorOpts.gpgSign, "gpg-sign", false, "sign rewritten commits with GPG")
	changeAuthorCmd.MarkFlagRequired("author-name")
	changeAuthorCmd.MarkFlagRequired("author-email")
	rootCmd.AddCommand(changeAuthorCmd)
}

func runChangeAuthor(cmd *cobra.Command, args []string) error {
	repo, err := openCleanRepo(changeAuthorOpts.repoPath)
	if err != nil {
		return err
	}
	branch, _, err := repo.CurrentBranch()
	if err != nil {
		return err
	}

	newAuthor := &gitrepo.Author{
		Name:  changeAuthorOpts.authorName,
		Email: changeAuthorOpts.authorEmail,
	}
	_, err = repo.RewriteBranch(branch, newAuthor, changeAuthorOpts.gpgSign,
		func(*object.Commit) bool { return true })
	return err
}
