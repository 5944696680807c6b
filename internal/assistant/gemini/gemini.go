// Package gemini answers prompts with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/termas-hotel-service/internal/assistant"
	"google.golang.org/genai"
)

const (
	defaultModel     = "gemini-2.0-flash"
	maxOutputTokens  = 500
	replyTemperature = 0.7
)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

func (c *Client) Generate(ctx context.Context, system, prompt string) (*assistant.Completion, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](replyTemperature),
		MaxOutputTokens: maxOutputTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	out := &assistant.Completion{Text: strings.TrimSpace(res.Text()), Model: c.model}
	if u := res.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.CompletionTokens = int(u.CandidatesTokenCount)
	}
	if out.Text == "" {
		return out, errors.New("gemini returned an empty answer")
	}
	return out, nil
}
