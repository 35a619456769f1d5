// Package githubclient wraps the GitHub REST API operations tidygit needs.
package githubclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// Host is the only remote host the GitHub-backed tools support.
const Host = "github.com"

// ErrNotFound is reported when an organization or repository lookup misses.
var ErrNotFound = errors.New("not found")

// Client is a token-authenticated GitHub API client.
type Client struct {
	gh *gh.Client
}

// New returns a client authenticated with the given token.
func New(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("creating github client: access token must be set")
	}
	return &Client{gh: gh.NewClient(nil).WithAuthToken(token)}, nil
}

// NewFromGitHub wraps an existing go-github client. Used by tests to point
// the wrapper at a fake server.
func NewFromGitHub(client *gh.Client) *Client {
	return &Client{gh: client}
}

// SplitRepoPath splits an "owner/name" repository path.
func SplitRepoPath(path string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("repository path %q is not owner/name", path)
	}
	return owner, name, nil
}

// CreatePullRequest opens a pull request from head into base and returns it.
func (c *Client) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (*gh.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, owner, repo, &gh.NewPullRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
		Head:  gh.Ptr(head),
		Base:  gh.Ptr(base),
	})
	if err != nil {
		return nil, fmt.Errorf("create pull request: %w", err)
	}
	slog.Debug("created pull request", "url", pr.GetHTMLURL())
	return pr, nil
}

const enableAutoMergeMutation = `mutation($id: ID!) {
  enablePullRequestAutoMerge(input: {pullRequestId: $id}) {
    pullRequest { number }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// EnableAutoMerge turns on auto-merge for a pull request. The REST API has
// no endpoint for this, so the GraphQL mutation is issued through the same
// authenticated client.
func (c *Client) EnableAutoMerge(ctx context.Context, pullRequestNodeID string) error {
	req, err := c.gh.NewRequest(http.MethodPost, "graphql", graphQLRequest{
		Query:     enableAutoMergeMutation,
		Variables: map[string]any{"id": pullRequestNodeID},
	})
	if err != nil {
		return fmt.Errorf("enable auto-merge: %w", err)
	}
	var resp graphQLResponse
	if _, err := c.gh.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("enable auto-merge: %w", err)
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("enable auto-merge: %s", resp.Errors[0].Message)
	}
	return nil
}

// OrganizationExists reports whether the named organization is visible to
// the token. A missing organization maps to ErrNotFound.
func (c *Client) OrganizationExists(ctx context.Context, org string) error {
	_, resp, err := c.gh.Organizations.Get(ctx, org)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("organization %s: %w", org, ErrNotFound)
		}
		return fmt.Errorf("fetch organization %s: %w", org, err)
	}
	return nil
}

// RepoExists reports whether owner/name exists.
func (c *Client) RepoExists(ctx context.Context, owner, name string) (bool, error) {
	_, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("fetch repository %s/%s: %w", owner, name, err)
	}
	return true, nil
}

// CreateOrgRepo creates a public, uninitialized repository in the
// organization.
func (c *Client) CreateOrgRepo(ctx context.Context, org, name string) error {
	_, _, err := c.gh.Repositories.Create(ctx, org, &gh.Repository{
		Name:     gh.Ptr(name),
		Private:  gh.Ptr(false),
		AutoInit: gh.Ptr(false),
	})
	if err != nil {
		return fmt.Errorf("create repository %s/%s: %w", org, name, err)
	}
	return nil
}
