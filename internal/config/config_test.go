package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadFrom_FileValues(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "")
	t.Setenv(EnvGitHubToken, "")

	path := writeConfigFile(t, `
openai_api_key = "sk-from-file"
github_token = "ghp-from-file"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.OpenAIAPIKey != (Value{Value: "sk-from-file", Source: SourceFile}) {
		t.Fatalf("unexpected OpenAI key: %+v", cfg.OpenAIAPIKey)
	}
	if cfg.GitHubToken != (Value{Value: "ghp-from-file", Source: SourceFile}) {
		t.Fatalf("unexpected GitHub token: %+v", cfg.GitHubToken)
	}
}

func TestLoadFrom_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "sk-from-env")
	t.Setenv(EnvGitHubToken, "")

	path := writeConfigFile(t, `
openai_api_key = "sk-from-file"
github_token = "ghp-from-file"
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.OpenAIAPIKey != (Value{Value: "sk-from-env", Source: SourceEnvironment}) {
		t.Fatalf("unexpected OpenAI key: %+v", cfg.OpenAIAPIKey)
	}
	// The other key still comes from the file.
	if cfg.GitHubToken.Source != SourceFile {
		t.Fatalf("unexpected GitHub token source: %v", cfg.GitHubToken.Source)
	}
}

func TestLoadFrom_MissingFileIsEmpty(t *testing.T) {
	t.Setenv(EnvOpenAIAPIKey, "")
	t.Setenv(EnvGitHubToken, "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.OpenAIAPIKey.IsSet() || cfg.GitHubToken.IsSet() {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "openai_api_key = [broken")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestRequireOpenAIKey(t *testing.T) {
	t.Parallel()

	cfg := Config{OpenAIAPIKey: Value{Value: "sk-test", Source: SourceEnvironment}}
	key, err := cfg.RequireOpenAIKey()
	if err != nil {
		t.Fatalf("RequireOpenAIKey: %v", err)
	}
	if key != "sk-test" {
		t.Fatalf("key = %q, want %q", key, "sk-test")
	}

	_, err = Config{}.RequireOpenAIKey()
	if err == nil {
		t.Fatal("expected error for unset OpenAI key")
	}
	if !strings.Contains(err.Error(), EnvOpenAIAPIKey) || !strings.Contains(err.Error(), DisplayPath) {
		t.Fatalf("error should name both configuration paths: %v", err)
	}
}

func TestRequireGitHubToken(t *testing.T) {
	t.Parallel()

	_, err := Config{}.RequireGitHubToken()
	if err == nil {
		t.Fatal("expected error for unset GitHub token")
	}
	if !strings.Contains(err.Error(), EnvGitHubToken) {
		t.Fatalf("error should name %s: %v", EnvGitHubToken, err)
	}
}

func TestSourceString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source Source
		want   string
	}{
		{SourceUnset, "unset"},
		{SourceEnvironment, "environment"},
		{SourceFile, "config file"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Fatalf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}
