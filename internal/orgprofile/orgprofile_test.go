package orgprofile

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %s: %v: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

func testAuthor() *object.Signature {
	return &object.Signature{Name: "Alice", Email: "alice@example.com", When: time.Now()}
}

func TestRun_PushesProfileReadme(t *testing.T) {
	t.Parallel()

	remote := t.TempDir()
	gitCmd(t, remote, "init", "--bare", "--initial-branch=main")

	err := Run(Options{
		Organization: "octo",
		RemoteURL:    remote,
		Author:       testAuthor(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := gitCmd(t, remote, "show", "main:profile/README.md"); got != "# octo" {
		t.Fatalf("profile/README.md = %q, want %q", got, "# octo")
	}
	if got := gitCmd(t, remote, "log", "-1", "--format=%s", "main"); got != "Add organization profile README" {
		t.Fatalf("commit subject = %q", got)
	}
	if got := gitCmd(t, remote, "log", "-1", "--format=%an <%ae>", "main"); got != "Alice <alice@example.com>" {
		t.Fatalf("commit author = %q", got)
	}
}

func TestRun_RequiresOrganization(t *testing.T) {
	t.Parallel()

	if err := Run(Options{}); err == nil {
		t.Fatal("expected error for missing organization")
	}
}

func TestOptionsRemoteURL(t *testing.T) {
	t.Parallel()

	opts := Options{Organization: "octo"}
	if got := opts.remoteURL(); got != "https://github.com/octo/.github.git" {
		t.Fatalf("remoteURL() = %q", got)
	}

	opts.RemoteURL = "/tmp/elsewhere"
	if got := opts.remoteURL(); got != "/tmp/elsewhere" {
		t.Fatalf("remoteURL() = %q", got)
	}
}

func TestOptionsAuth(t *testing.T) {
	t.Parallel()

	if auth := (Options{}).auth(); auth != nil {
		t.Fatalf("auth() = %v, want nil without a token", auth)
	}

	auth := Options{Token: "tok"}.auth()
	basic, ok := auth.(*githttp.BasicAuth)
	if !ok {
		t.Fatalf("auth() = %T, want *githttp.BasicAuth", auth)
	}
	if basic.Username != TokenUsername || basic.Password != "tok" {
		t.Fatalf("unexpected auth: %+v", basic)
	}
}
