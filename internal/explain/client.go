package explain

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	openai "github.com/sashabaranov/go-openai"
)

// Client is the interface every explanation provider satisfies.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ── Anthropic Provider ─────────────────────────────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(model string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: param.NewOpt(0.7),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in API response")
}

func (c *AnthropicClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			select {
			case <-time.After(sleepDuration):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── OpenRouter Provider ────────────────────────────────────

const openRouterBaseURL = "https://openrouter.ai/api/v1"

type OpenRouterClient struct {
	client *openai.Client
	model  string
}

func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = openRouterBaseURL
	return &OpenRouterClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no explanation returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ── Mock Provider ──────────────────────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return `<p>[Mock] Good attempt — your reasoning started from the right place. ` +
		`The <span class="highlight">key detail</span> is in [Option A]: it matches what ` +
		`[Question text: "the question"] is actually asking, while your pick only covers part of it.</p>`, nil
}
