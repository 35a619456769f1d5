package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/gitrepo"
	"github.com/tidygit/tidygit/internal/newline"
)

var normalizeNewlinesOpts struct {
	repoPath string
	showDiff bool
}

var normalizeNewlinesCmd = &cobra.Command{
	Use:   "normalize-newlines",
	Short: "Ensure all touched text files end in exactly one newline",
	Long: `Ensure every file Git reports as touched (staged, unstaged, or
untracked) ends in exactly one trailing newline. Binary files are skipped.`,
	Args: cobra.NoArgs,
	RunE: runNormalizeNewlines,
}

func init() {
	normalizeNewlinesCmd.Flags().StringVar(&normalizeNewlinesOpts.repoPath, "repo-path", ".", "path to the root of the Git repository")
	normalizeNewlinesCmd.Flags().BoolVar(&normalizeNewlinesOpts.showDiff, "show-diff", false, "print a unified diff for each normalized file")
	rootCmd.AddCommand(normalizeNewlinesCmd)
}

func runNormalizeNewlines(cmd *cobra.Command, args []string) error {
	repo, err := gitrepo.Open(normalizeNewlinesOpts.repoPath)
	if err != nil {
		return err
	}
	touched, err := repo.TouchedFiles()
	if err != nil {
		return err
	}

	for _, relPath := range touched {
		absPath := filepath.Join(repo.Root(), relPath)
		// Git can report deleted files here; only regular files are candidates.
		info, err := os.Stat(absPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		result, err := newline.NormalizeFile(absPath)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", relPath, result.Status)

		if normalizeNewlinesOpts.showDiff && result.Status == newline.StatusNormalized {
			diff, err := result.Diff(relPath)
			if err != nil {
				return fmt.Errorf("render diff for %s: %w", relPath, err)
			}
			fmt.Print(diff)
		}
	}
	return nil
}
