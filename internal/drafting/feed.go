// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"pocsclinic/internal/ai"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
	"pocsclinic/internal/publish"
	"pocsclinic/internal/slug"
)

var (
	// ErrNoEntries is returned when none of the feeds yielded an entry.
	ErrNoEntries = errors.New("drafting: no feed entries fetched")

	// ErrBadReply is returned when the model reply is not the expected JSON.
	ErrBadReply = errors.New("drafting: model reply is not a valid draft")

	// ErrFlagged is returned when moderation flags the generated article.
	ErrFlagged = errors.New("drafting: generated draft flagged by moderation")
)

// DefaultFeeds are the health news feeds scanned for topic cues.
var DefaultFeeds = []string{
	"https://www.sciencedaily.com/rss/health_medicine.xml",
	"https://www.medicalnewstoday.com/rss",
}

// FocusKeywords steer entry selection and the generated article.
var FocusKeywords = []string{
	"gallstones", "cholecystectomy", "post-cholecystectomy nutrition",
	"bile acids", "fat-soluble vitamins", "ERCP", "POCS",
	"fatty liver", "liver health",
}

const (
	maxEntriesPerFeed = 20
	maxSummaryRunes   = 600
	maxSlugRunes      = 60
	maxTags           = 6
)

const feedSystemPrompt = `You are a senior physician writing a public medical education blog draft.
Rules:
- Educational only, not medical diagnosis or personal medical advice.
- Avoid fear-based language, absolute claims, or overpromising.
- Use clear structure, short paragraphs, and practical guidance.
- When evidence is uncertain, say so.
- Include a short "When to seek medical care" section.
Output MUST be valid JSON only with keys:
title, excerpt, tags, markdown`

const feedUserPrompt = `Create a blog draft based on this news/topic cue.

Topic cue:
- headline: %s
- source_url: %s
- source_summary: %s

Site focus keywords (prefer integrating 2-4 naturally):
%s

Requirements:
- Audience: general public
- Language: Chinese
- Length: ~900-1400 Chinese characters
- Structure:
  1) Hook (1-2 lines)
  2) What happened / what it means
  3) Practical takeaways (3-6 bullets)
  4) When to seek medical care (bullets)
  5) Disclaimer (1 line)
- Tags: 3-6 short tags
Return JSON only.`

// Entry is a news item used as a topic cue.
type Entry struct {
	Title   string
	Link    string
	Summary string
	Feed    string
}

// TextGenerator is the text model the feed drafter talks to. Implemented by
// ai.Registry.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SafetyChecker screens generated text. Implemented by ai.Registry.
type SafetyChecker interface {
	CheckSafety(ctx context.Context, text string) (*ai.ModerationResult, error)
}

// FeedDraft is the structured reply expected from the model.
type FeedDraft struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Tags     []string `json:"tags"`
	Markdown string   `json:"markdown"`
}

// FeedResult describes a draft written from a feed entry.
type FeedResult struct {
	Result
	Source Entry
	Tags   []string
}

// FeedDrafter writes drafts from news feed entries.
type FeedDrafter struct {
	Feeds  []string
	Focus  []string
	Model  TextGenerator
	Safety SafetyChecker // optional
	Dir    string
	Index  DraftIndex
	Client *http.Client
	Now    func() time.Time
}

// NewFeedDrafter returns a FeedDrafter with the default feeds and focus
// keywords.
func NewFeedDrafter(model TextGenerator, dir string, index DraftIndex) *FeedDrafter {
	return &FeedDrafter{
		Feeds:  DefaultFeeds,
		Focus:  FocusKeywords,
		Model:  model,
		Dir:    dir,
		Index:  index,
		Client: &http.Client{Timeout: 20 * time.Second},
		Now:    time.Now,
	}
}

// screen runs the article through moderation before anything is written.
// A failed check is logged and the draft kept.
func (d *FeedDrafter) screen(ctx context.Context, fd *FeedDraft) error {
	if d.Safety == nil {
		return nil
	}
	res, err := d.Safety.CheckSafety(ctx, fd.Title+"\n\n"+fd.Markdown)
	if err != nil {
		slog.Warn("moderation check failed, keeping draft", "title", fd.Title, "error", err)
		return nil
	}
	if !res.Safe {
		categories := strings.Join(res.Categories, ", ")
		slog.Warn("generated draft flagged by moderation", "title", fd.Title, "categories", categories)
		return fmt.Errorf("%w: %s", ErrFlagged, categories)
	}
	return nil
}

// FetchEntries fetches all feeds concurrently. A feed that fails is logged
// and skipped; entries keep the order of the feed list.
func (d *FeedDrafter) FetchEntries(ctx context.Context) []Entry {
	perFeed := make([][]Entry, len(d.Feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, feedURL := range d.Feeds {
		g.Go(func() error {
			entries, err := d.fetchFeed(gctx, feedURL)
			if err != nil {
				slog.Warn("feed fetch failed", "feed", feedURL, "error", err)
				return nil
			}
			perFeed[i] = entries
			return nil
		})
	}
	_ = g.Wait()

	var all []Entry
	for _, entries := range perFeed {
		all = append(all, entries...)
	}
	return all
}

var whitespace = regexp.MustCompile(`\s+`)

func (d *FeedDrafter) fetchFeed(ctx context.Context, feedURL string) ([]Entry, error) {
	fp := gofeed.NewParser()
	if d.Client != nil {
		fp.Client = d.Client
	}
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, item := range feed.Items {
		if len(entries) == maxEntriesPerFeed {
			break
		}
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entries = append(entries, Entry{
			Title:   title,
			Link:    link,
			Summary: whitespace.ReplaceAllString(strings.TrimSpace(summary), " "),
			Feed:    feedURL,
		})
	}
	return entries, nil
}

// PickEntry returns the first entry whose title contains a focus keyword,
// ignoring case, or the first entry when none does.
func PickEntry(entries []Entry, focus []string) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrNoEntries
	}
	for _, e := range entries {
		title := strings.ToLower(e.Title)
		for _, k := range focus {
			if strings.Contains(title, strings.ToLower(k)) {
				return e, nil
			}
		}
	}
	return entries[0], nil
}

// ParseReply extracts the draft JSON from a model reply. Text around the
// outermost JSON object is ignored.
func ParseReply(reply string) (*FeedDraft, error) {
	reply = strings.TrimSpace(reply)
	var draft FeedDraft
	if err := json.Unmarshal([]byte(reply), &draft); err != nil {
		start, end := strings.Index(reply, "{"), strings.LastIndex(reply, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object found", ErrBadReply)
		}
		draft = FeedDraft{}
		if err := json.Unmarshal([]byte(reply[start:end+1]), &draft); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
		}
	}

	switch {
	case strings.TrimSpace(draft.Title) == "":
		return nil, fmt.Errorf("%w: missing title", ErrBadReply)
	case strings.TrimSpace(draft.Markdown) == "":
		return nil, fmt.Errorf("%w: missing markdown", ErrBadReply)
	case draft.Tags == nil:
		return nil, fmt.Errorf("%w: tags must be a list", ErrBadReply)
	}
	if len(draft.Tags) > maxTags {
		draft.Tags = draft.Tags[:maxTags]
	}
	return &draft, nil
}

// FeedDraftID returns "<date>-<slug>" from the generated title, falling
// back to the headline and then to "post".
func FeedDraftID(date, title, headline string) string {
	base := slug.Truncate(slug.Generate(title), maxSlugRunes)
	if base == "" {
		base = slug.Truncate(slug.Generate(headline), maxSlugRunes)
	}
	if base == "" {
		base = "post"
	}
	return date + "-" + base
}

// Generate fetches the feeds, picks an entry, asks the model for a draft
// and writes it.
func (d *FeedDrafter) Generate(ctx context.Context) (*FeedResult, error) {
	entry, err := PickEntry(d.FetchEntries(ctx), d.Focus)
	if err != nil {
		return nil, err
	}

	summary := entry.Summary
	if rs := []rune(summary); len(rs) > maxSummaryRunes {
		summary = string(rs[:maxSummaryRunes])
	}
	prompt := fmt.Sprintf(feedUserPrompt, entry.Title, entry.Link, summary, strings.Join(d.Focus, ", "))

	reply, err := d.Model.Generate(ctx, feedSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}
	fd, err := ParseReply(reply)
	if err != nil {
		return nil, err
	}
	if err := d.screen(ctx, fd); err != nil {
		return nil, err
	}

	category := publish.InferCategory(fd.Markdown)
	date := d.Now().Format(models.DateLayout)
	id := FeedDraftID(date, fd.Title, entry.Title)
	path, err := writeDraft(d.Dir, id, strings.TrimSpace(fd.Markdown)+"\n")
	if err != nil {
		return nil, err
	}

	draft := models.Draft{
		ID:      id,
		Title:   fd.Title,
		Date:    date,
		Status:  models.DraftStatusDraft,
		Preview: preview(fd.Excerpt),
	}
	if err := d.Index.Create(draft); err != nil {
		return nil, fmt.Errorf("index draft %s: %w", id, err)
	}

	return &FeedResult{
		Result: Result{
			Draft:   draft,
			Path:    path,
			Matched: true,
			Record: models.Post{
				ID:         id,
				Title:      fd.Title,
				TitleEn:    fd.Title,
				Excerpt:    fd.Excerpt,
				ExcerptEn:  fd.Excerpt,
				Date:       date,
				Category:   category,
				CategoryEn: i18n.CategoryEn(category),
				ImageURL:   models.DefaultImageURL,
				Author:     models.DefaultAuthor,
			},
		},
		Source: entry,
		Tags:   fd.Tags,
	}, nil
}
