// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pocsclinic/internal/ai"
	"pocsclinic/internal/drafting"
	"pocsclinic/internal/models"
	"pocsclinic/internal/output"
	"pocsclinic/internal/store"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		fromFeed bool
		provider string
	)

	cmd := &cobra.Command{
		Use:   "generate-draft [keyword]",
		Short: "Write a new Markdown draft",
		Long: `Write a new Markdown draft into the drafts directory and add it to the
draft index with status "draft".

Without --from-feed the draft is rendered from the built-in topic catalog.
The optional keyword is matched against topic ids and subjects; when
nothing matches, a random topic is used.

With --from-feed the latest health news feeds are scanned for a topic cue
and the configured AI provider (AI_PROVIDER plus CLAUDE_API_KEY,
OPENAI_API_KEY, GEMINI_API_KEY or MISTRAL_API_KEY) writes the article.
--provider picks another configured provider for a single run. With an
OpenAI or Mistral key the article is screened by moderation before it is
written.

The suggested registry record is printed for review; it is added to the
registry by publish-draft.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFeed {
				if len(args) > 0 {
					return &output.CLIError{Summary: "--from-feed does not take a keyword", ExitCode: output.ExitUsage}
				}
				return a.generateFromFeed(cmd.Context(), provider)
			}
			if provider != "" {
				return &output.CLIError{Summary: "--provider requires --from-feed", ExitCode: output.ExitUsage}
			}
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}
			return a.generate(keyword)
		},
	}
	cmd.Flags().BoolVar(&fromFeed, "from-feed", false, "draft from health news feeds with the AI provider")
	cmd.Flags().StringVar(&provider, "provider", "", "AI provider for --from-feed (claude, openai, gemini, mistral)")
	return cmd
}

func (a *app) generate(keyword string) error {
	gen := drafting.NewGenerator(a.cfg.DraftsDir(), store.NewDraftStore(a.cfg.DraftIndexPath()))
	res, err := gen.Generate(keyword)
	if err != nil {
		return draftWriteError(err)
	}

	if keyword != "" && !res.Matched {
		a.printer.Warning("No topic matches %q, picked %q instead", keyword, res.Draft.Title)
	}
	return a.reportDraft(&res.Draft, res.Path, res.Record)
}

func (a *app) generateFromFeed(ctx context.Context, provider string) error {
	model := ai.NewRegistry(a.cfg.AIProvider, map[string]ai.ProviderConfig{
		"claude":  {APIKey: a.cfg.ClaudeAPIKey, Model: a.cfg.ClaudeModel, BaseURL: a.cfg.ClaudeBaseURL},
		"openai":  {APIKey: a.cfg.OpenAIAPIKey, Model: a.cfg.OpenAIModel, BaseURL: a.cfg.OpenAIBaseURL},
		"gemini":  {APIKey: a.cfg.GeminiAPIKey, Model: a.cfg.GeminiModel, BaseURL: a.cfg.GeminiBaseURL},
		"mistral": {APIKey: a.cfg.MistralAPIKey, Model: a.cfg.MistralModel, BaseURL: a.cfg.MistralBaseURL},
	})
	if provider != "" {
		if err := model.SetActive(provider); err != nil {
			suggestion := "No provider has an API key set"
			if names := model.Available(); len(names) > 0 {
				suggestion = "Configured providers: " + strings.Join(names, ", ")
			}
			return &output.CLIError{
				Summary:    fmt.Sprintf("AI provider %q is not configured", provider),
				Suggestion: suggestion,
				ExitCode:   output.ExitUsage,
			}
		}
	}
	if _, err := model.Active(); err != nil {
		return &output.CLIError{
			Summary:    "no AI provider configured",
			Detail:     err.Error(),
			Suggestion: "Set CLAUDE_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or MISTRAL_API_KEY, and AI_PROVIDER to choose between them",
			ExitCode:   output.ExitFailure,
		}
	}

	a.printer.Info("Drafting with %s", model.ActiveName())
	drafter := drafting.NewFeedDrafter(model, a.cfg.DraftsDir(), store.NewDraftStore(a.cfg.DraftIndexPath()))
	if model.Moderated() {
		drafter.Safety = model
	} else {
		a.printer.Warning("No moderation API configured (OPENAI_API_KEY or MISTRAL_API_KEY); the draft is not screened")
	}
	if len(a.cfg.FeedURLs) > 0 {
		drafter.Feeds = a.cfg.FeedURLs
	}

	res, err := drafter.Generate(ctx)
	switch {
	case errors.Is(err, drafting.ErrNoEntries):
		return &output.CLIError{
			Summary:    "no feed entries could be fetched",
			Detail:     strings.Join(drafter.Feeds, ", "),
			Suggestion: "Check network access or set FEED_URLS",
			ExitCode:   output.ExitFailure,
		}
	case errors.Is(err, drafting.ErrFlagged):
		return &output.CLIError{
			Summary:    "the generated draft was flagged by moderation",
			Detail:     err.Error(),
			Suggestion: "Run generate-draft --from-feed again to pick up a different cue",
			ExitCode:   output.ExitRefused,
		}
	case errors.Is(err, drafting.ErrBadReply):
		return &output.CLIError{Summary: "the AI provider returned an unusable draft", Detail: err.Error(), ExitCode: output.ExitFailure}
	case err != nil:
		return draftWriteError(err)
	}

	a.printer.Info("Topic cue: %s", res.Source.Title)
	a.printer.Info("Source: %s", res.Source.Link)
	if len(res.Tags) > 0 {
		a.printer.Info("Tags: %s", strings.Join(res.Tags, ", "))
	}
	return a.reportDraft(&res.Draft, res.Path, res.Record)
}

func draftWriteError(err error) error {
	if errors.Is(err, drafting.ErrDraftExists) || errors.Is(err, store.ErrDuplicateID) {
		return &output.CLIError{
			Summary:    "a draft with this id already exists",
			Detail:     err.Error(),
			Suggestion: "Run the command again; catalog draft ids include the current time",
			ExitCode:   output.ExitRefused,
		}
	}
	return fmt.Errorf("generate draft: %w", err)
}

// reportDraft prints the written file and the registry record it will
// become once published.
func (a *app) reportDraft(d *models.Draft, path string, record models.Post) error {
	snippet, err := drafting.RecordSnippet(record)
	if err != nil {
		return err
	}
	a.printer.Success("Draft written to %s", path)
	a.printer.Header("Suggested registry record")
	a.printer.Print("%s", snippet)
	a.printer.Info("Publish it with: blogctl publish-draft %s", d.Filename())
	return nil
}
