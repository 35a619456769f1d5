package gitrepo

import (
	"errors"
	"fmt"

	gitlib "github.com/go-git/go-git/v5"
)

// ErrRemoteNotFound is reported when the named remote does not exist.
var ErrRemoteNotFound = errors.New("remote not found")

// RemoteURL returns the first fetch URL of the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		if errors.Is(err, gitlib.ErrRemoteNotFound) {
			return "", fmt.Errorf("remote %s does not exist: %w", name, ErrRemoteNotFound)
		}
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL configured", name)
	}
	return urls[0], nil
}

// SetRemoteURL replaces the first URL of the named remote.
func (r *Repository) SetRemoteURL(name, url string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("read repository config: %w", err)
	}
	remote, ok := cfg.Remotes[name]
	if !ok {
		return fmt.Errorf("remote %s does not exist: %w", name, ErrRemoteNotFound)
	}
	if len(remote.URLs) == 0 {
		remote.URLs = []string{url}
	} else {
		remote.URLs[0] = url
	}
	if err := r.repo.Storer.SetConfig(cfg); err != nil {
		return fmt.Errorf("write repository config: %w", err)
	}
	return nil
}

// ForcePush force-pushes the branch to the remote, overwriting the remote
// ref. Runs through the git CLI so the user's credential setup applies.
func (r *Repository) ForcePush(remote, branch string) error {
	refspec := fmt.Sprintf("+%s:%s", branch, branch)
	_, err := r.git.run([]string{"push", remote, refspec}, nil, "git push")
	return err
}

// PushUpstream pushes the branch to the remote and sets it as upstream.
func (r *Repository) PushUpstream(remote, branch string) error {
	refspec := fmt.Sprintf("%s:%s", branch, branch)
	_, err := r.git.run([]string{"push", "--set-upstream", remote, refspec}, nil, "git push")
	return err
}
