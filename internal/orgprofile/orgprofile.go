// Package orgprofile pushes the initial profile README of a GitHub
// organization's .github repository from a throwaway local repository.
package orgprofile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gitlib "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TokenUsername is the username GitHub expects alongside an installation or
// personal access token in HTTP basic auth.
const TokenUsername = "x-access-token"

// Options configures a profile bootstrap run.
type Options struct {
	Organization string
	Token        string
	// RemoteURL overrides the default https://github.com/<org>/.github.git
	// target. Tests point it at a local repository.
	RemoteURL string
	// Author overrides the committer identity; when nil the user's git
	// configuration applies.
	Author *object.Signature
}

func (o Options) remoteURL() string {
	if o.RemoteURL != "" {
		return o.RemoteURL
	}
	return fmt.Sprintf("https://github.com/%s/.github.git", o.Organization)
}

func (o Options) auth() transport.AuthMethod {
	if o.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: TokenUsername, Password: o.Token}
}

// Run builds a temporary repository containing profile/README.md on a main
// branch and pushes it to the organization's .github repository. The
// temporary directory is removed afterwards.
func Run(opts Options) error {
	if opts.Organization == "" {
		return fmt.Errorf("bootstrap org profile: organization must be set")
	}

	dir, err := os.MkdirTemp("", "tidygit-orgprofile-*")
	if err != nil {
		return fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	repo, err := buildProfileRepo(dir, opts.Organization, opts.Author)
	if err != nil {
		return err
	}

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{opts.remoteURL()},
	})
	if err != nil {
		return fmt.Errorf("configure remote: %w", err)
	}

	err = repo.Push(&gitlib.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{"refs/heads/main:refs/heads/main"},
		Auth:       opts.auth(),
	})
	if err != nil && !errors.Is(err, gitlib.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push to %s: %w", opts.remoteURL(), err)
	}
	return nil
}

// buildProfileRepo initializes a repository at dir with a single commit
// adding profile/README.md on main.
func buildProfileRepo(dir, organization string, author *object.Signature) (*gitlib.Repository, error) {
	repo, err := gitlib.PlainInitWithOptions(dir, &gitlib.PlainInitOptions{
		InitOptions: gitlib.InitOptions{DefaultBranch: plumbing.Main},
	})
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	profileDir := filepath.Join(dir, "profile")
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}
	readme := fmt.Sprintf("# %s\n", organization)
	if err := os.WriteFile(filepath.Join(profileDir, "README.md"), []byte(readme), 0o644); err != nil {
		return nil, fmt.Errorf("write README: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	if _, err := wt.Add("profile/README.md"); err != nil {
		return nil, fmt.Errorf("stage README: %w", err)
	}
	_, err = wt.Commit("Add organization profile README", &gitlib.CommitOptions{Author: author})
	if err != nil {
		return nil, fmt.Errorf("commit README: %w", err)
	}
	return repo, nil
}
