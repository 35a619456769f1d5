// Package namer derives branch names and pull request titles from commit
// history using the OpenAI chat completion API with structured output.
package namer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	branchNameModel = openai.GPT4o
	prDetailsModel  = "gpt-5-mini"

	messageSeparator = "\n----\n"
)

const branchNameSystemPrompt = "You are a helpful assistant that generates concise, descriptive branch names " +
	"based on the recent Git commit history. The branch name should describe the changes that aren't " +
	"merged-in (yet). Don't try to describe all changes - if the unmerged commits include both important " +
	"and less relevant changes, focus on the important ones. Use kebab-case format (lowercase words " +
	"separated by hyphens)."

const prDetailsSystemPrompt = "You are a helpful assistant that generates pull request titles and feature " +
	"branch names based on Git commit history. Analyze the unmerged commits and determine which ones are " +
	"important. Generate a PR title that covers all important commits together - ignore unimportant " +
	"commits (like formatting, typos, minor fixes) entirely. If there's only one obviously important " +
	"commit, you can use its message as the PR title as-is. The branch name should be a kebab-case " +
	"version summarizing the same changes (lowercase words separated by hyphens)."

// BranchName is the structured completion result for branch naming.
type BranchName struct {
	BranchName string `json:"branch_name"`
}

// PullRequestDetails is the structured completion result for PR creation.
type PullRequestDetails struct {
	Title      string `json:"pull_request_title"`
	BranchName string `json:"feature_branch_name"`
}

// Namer asks the model to summarize unmerged commits into names.
type Namer struct {
	client *openai.Client
}

// New returns a Namer backed by the OpenAI API.
func New(apiKey string) (*Namer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("creating namer: API key must be set")
	}
	return &Namer{client: openai.NewClient(apiKey)}, nil
}

// NewWithClient wraps an existing client. Used by tests to point the Namer
// at a fake server.
func NewWithClient(client *openai.Client) *Namer {
	return &Namer{client: client}
}

// GenerateBranchName names a feature branch from the unmerged commit
// messages, with the already-merged ones as contrast.
func (n *Namer) GenerateBranchName(ctx context.Context, unmerged, merged []string) (string, error) {
	var out BranchName
	err := n.complete(ctx, branchNameModel, branchNameSystemPrompt, "branch_name", BranchName{}, unmerged, merged, &out)
	if err != nil {
		return "", err
	}
	if out.BranchName == "" {
		return "", fmt.Errorf("model returned an empty branch name")
	}
	return out.BranchName, nil
}

// GeneratePullRequestDetails produces a PR title and branch name pair.
func (n *Namer) GeneratePullRequestDetails(ctx context.Context, unmerged, merged []string) (PullRequestDetails, error) {
	var out PullRequestDetails
	err := n.complete(ctx, prDetailsModel, prDetailsSystemPrompt, "pull_request_details", PullRequestDetails{}, unmerged, merged, &out)
	if err != nil {
		return PullRequestDetails{}, err
	}
	if out.Title == "" || out.BranchName == "" {
		return PullRequestDetails{}, fmt.Errorf("model returned incomplete pull request details")
	}
	return out, nil
}

func (n *Namer) complete(ctx context.Context, model, systemPrompt, schemaName string, shape any, unmerged, merged []string, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(shape)
	if err != nil {
		return fmt.Errorf("build response schema: %w", err)
	}

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(unmerged, merged)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion returned no choices")
	}
	message := resp.Choices[0].Message
	if message.Refusal != "" {
		return fmt.Errorf("model refused: %s", message.Refusal)
	}
	if err := json.Unmarshal([]byte(message.Content), out); err != nil {
		return fmt.Errorf("decode completion %q: %w", message.Content, err)
	}
	return nil
}

// UserPrompt renders the two-part commit history prompt.
func UserPrompt(unmerged, merged []string) string {
	var b strings.Builder
	b.WriteString("%%%% New Git commits (not merged-in) %%%%\n")
	b.WriteString(strings.Join(unmerged, messageSeparator))
	b.WriteString("\n%%%% Previous Git commits (already merged-in) %%%%\n")
	b.WriteString(strings.Join(merged, messageSeparator))
	b.WriteString("\n")
	return b.String()
}
