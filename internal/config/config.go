// Package config loads the per-user tidygit configuration.
//
// Keys live in ~/.config/tidygit/config.toml and are all optional; a missing
// file yields an empty configuration, not an error. Environment variables
// override file values for every tool uniformly, and an optional .env in the
// working directory is honored before the environment is consulted.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// EnvOpenAIAPIKey overrides the openai_api_key file value.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	// EnvGitHubToken overrides the github_token file value.
	EnvGitHubToken = "GITHUB_TOKEN"

	relativePath = ".config/tidygit/config.toml"
)

// DisplayPath is the conventional config location shown in messages.
const DisplayPath = "~/" + relativePath

// Source says where a configuration value was resolved from.
type Source int

const (
	SourceUnset Source = iota
	SourceEnvironment
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourceEnvironment:
		return "environment"
	case SourceFile:
		return "config file"
	default:
		return "unset"
	}
}

// Value is a resolved configuration value plus its origin.
type Value struct {
	Value  string
	Source Source
}

// IsSet reports whether the value was configured anywhere.
func (v Value) IsSet() bool { return v.Source != SourceUnset }

// Config holds every key tidygit understands, resolved once at startup and
// threaded into collaborator constructors.
type Config struct {
	OpenAIAPIKey Value
	GitHubToken  Value
}

type fileConfig struct {
	OpenAIAPIKey string `toml:"openai_api_key"`
	GitHubToken  string `toml:"github_token"`
}

// Load reads the conventional per-user config file, after loading a .env
// file from the working directory when one exists.
func Load() (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return LoadFrom(filepath.Join(home, filepath.FromSlash(relativePath)))
}

// LoadFrom reads the config file at path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return Config{
		OpenAIAPIKey: resolve(EnvOpenAIAPIKey, fc.OpenAIAPIKey),
		GitHubToken:  resolve(EnvGitHubToken, fc.GitHubToken),
	}, nil
}

func resolve(envVar, fileValue string) Value {
	if v := os.Getenv(envVar); v != "" {
		return Value{Value: v, Source: SourceEnvironment}
	}
	if fileValue != "" {
		return Value{Value: fileValue, Source: SourceFile}
	}
	return Value{}
}

// RequireOpenAIKey returns the OpenAI API key or a configuration error
// naming both ways to set it.
func (c Config) RequireOpenAIKey() (string, error) {
	if !c.OpenAIAPIKey.IsSet() {
		return "", fmt.Errorf("OpenAI API key is not configured: set %s or openai_api_key in %s", EnvOpenAIAPIKey, DisplayPath)
	}
	return c.OpenAIAPIKey.Value, nil
}

// RequireGitHubToken returns the GitHub token or a configuration error
// naming both ways to set it.
func (c Config) RequireGitHubToken() (string, error) {
	if !c.GitHubToken.IsSet() {
		return "", fmt.Errorf("GitHub token is not configured: set %s or github_token in %s", EnvGitHubToken, DisplayPath)
	}
	return c.GitHubToken.Value, nil
}
