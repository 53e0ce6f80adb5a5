package genai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator produces a completion for a prompt. The relay depends on
// this interface so tests can stub the remote service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config defines configuration options for the Gemini text client.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultBaseURL is Gemini's OpenAI-compatible chat completion endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Client calls the Gemini API through its OpenAI-compatible surface.
type Client struct {
	client *openai.Client
	cfg    Config
}

// NewClient builds a text generation client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Client{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}, nil
}

// Disabled is a TextGenerator for deployments without an API key. Every
// call fails, which pushes callers onto their fallback path.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("text generation is not configured")
}

// Generate sends the prompt and returns the first completion text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model %s", c.cfg.Model)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion returned from model %s", c.cfg.Model)
	}

	return content, nil
}
