package gitrepo

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runner invokes the git binary inside the repository. Only operations that
// depend on user-level git configuration (GPG keys, credential helpers) go
// through here; everything else uses go-git.
type runner struct {
	path string
}

func (r runner) run(args []string, extraEnv []string, context string) (string, error) {
	if r.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmdArgs := append([]string{"-C", r.path}, args...)
	cmd := exec.Command("git", cmdArgs...)
	if len(extraEnv) > 0 {
		cmd.Env = append(environWithoutGitIdentity(), extraEnv...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s: %v: %s", context, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%s: %w", context, err)
	}
	return stdout.String(), nil
}

// environWithoutGitIdentity strips any inherited GIT_AUTHOR_*/GIT_COMMITTER_*
// variables so the identity stamped by the caller is the only one in effect.
func environWithoutGitIdentity() []string {
	env := os.Environ()
	filtered := env[:0]
	for _, kv := range env {
		if strings.HasPrefix(kv, "GIT_AUTHOR_") || strings.HasPrefix(kv, "GIT_COMMITTER_") {
			continue
		}
		filtered = append(filtered, kv)
	}
	return filtered
}
