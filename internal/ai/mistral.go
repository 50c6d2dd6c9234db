// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "context"

const mistralDefaultModel = "mistral-small-latest"

// mistralProvider talks to Mistral's chat completions API, which speaks the
// OpenAI wire format at a different base URL.
type mistralProvider struct {
	inner *openAIProvider
}

func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = mistralDefaultModel
	}
	return &mistralProvider{inner: newOpenAI(cfg)}
}

func (p *mistralProvider) Name() string { return "mistral" }

func (p *mistralProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.inner.chat(ctx, "mistral", systemPrompt, userPrompt)
}
