package gitrepo

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// gitCmd runs git in dir with a fixed identity so fixture repositories do not
// depend on the machine's git configuration.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Alice",
		"GIT_AUTHOR_EMAIL=alice@example.com",
		"GIT_COMMITTER_NAME=Alice",
		"GIT_COMMITTER_EMAIL=alice@example.com",
		"GIT_CONFIG_GLOBAL=/dev/null",
		"GIT_CONFIG_SYSTEM=/dev/null",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %s: %v: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

// initTestRepo creates a repository with a main branch and no commits.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitCmd(t, dir, "init", "--initial-branch=main")
	return dir
}

// commitFile writes content to name, stages it, and commits with message.
func commitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	gitCmd(t, dir, "add", name)
	gitCmd(t, dir, "commit", "-m", message)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")

	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if repo.Root() == "" {
		t.Fatal("Root() is empty")
	}
}

func TestOpen_DetectsRootFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")
	sub := filepath.Join(dir, "nested", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	repo, err := Open(sub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rootInfo, err := os.Stat(repo.Root())
	if err != nil {
		t.Fatalf("stat root: %v", err)
	}
	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat fixture: %v", err)
	}
	if !os.SameFile(rootInfo, dirInfo) {
		t.Fatalf("Root() = %q, want %q", repo.Root(), dir)
	}
}

func TestOpen_RejectsBareRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gitCmd(t, dir, "init", "--bare")
	if _, err := Open(dir); err != ErrBareRepository {
		t.Fatalf("Open bare = %v, want %v", err, ErrBareRepository)
	}
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without a repository")
	}
}

func TestIsDirty(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	dirty, err := repo.IsDirty()
	if err != nil {
		t.Fatalf("IsDirty: %v", err)
	}
	if dirty {
		t.Fatal("fresh commit should leave a clean tree")
	}

	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dirty, err = repo.IsDirty()
	if err != nil {
		t.Fatalf("IsDirty: %v", err)
	}
	if !dirty {
		t.Fatal("untracked file should make the tree dirty")
	}
}

func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	name, tip, err := repo.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if name != "main" {
		t.Fatalf("branch = %q, want %q", name, "main")
	}
	if strings.TrimSpace(tip.Message) != "first" {
		t.Fatalf("tip message = %q, want %q", tip.Message, "first")
	}
}

func TestCurrentBranch_DetachedHead(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")
	gitCmd(t, dir, "checkout", "--detach", "HEAD")
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, _, err := repo.CurrentBranch(); err != ErrDetachedHead {
		t.Fatalf("CurrentBranch = %v, want %v", err, ErrDetachedHead)
	}
}

func TestTouchedFiles(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t)
	commitFile(t, dir, "a.txt", "a\n", "first")
	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// One modified tracked file plus one untracked file, created in reverse
	// lexical order to check sorting.
	if err := os.WriteFile(filepath.Join(dir, "z.txt"), []byte("z\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := repo.TouchedFiles()
	if err != nil {
		t.Fatalf("TouchedFiles: %v", err)
	}
	want := []string{"a.txt", "z.txt"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}
}
