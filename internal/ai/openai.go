package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openAIDefaultModel = "gpt-4o-mini"

// openAIProvider calls the chat completions API (POST /chat/completions).
// Any OpenAI-compatible endpoint works through BaseURL.
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Generate asks for a JSON object reply, which is what the drafter parses.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.chat(ctx, "openai", systemPrompt, userPrompt)
}

// chat posts one system and one user message to /chat/completions. provider
// labels errors, since Mistral shares this wire format.
func (p *openAIProvider) chat(ctx context.Context, provider, systemPrompt, userPrompt string) (string, error) {
	body := openAIRequest{
		Model: p.config.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &openAIResponseFormat{Type: "json_object"},
	}
	if p.config.MaxTokens > 0 {
		body.MaxTokens = p.config.MaxTokens
	}
	if p.config.Temperature > 0 {
		body.Temperature = &p.config.Temperature
	}

	var result openAIResponse
	err := postJSON(ctx, p.client, provider, strings.TrimRight(p.config.BaseURL, "/")+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + p.config.APIKey,
	}, body, &result)
	if err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", provider)
	}
	return result.Choices[0].Message.Content, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Temperature    *float64              `json:"temperature,omitempty"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}
