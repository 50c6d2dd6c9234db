// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records shared by the registry, the loader,
// the draft tooling and the HTTP handlers.
package models

import (
	"time"
)

// Language selects which half of a bilingual record is displayed.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

// IsEnglish reports whether l selects the English strings.
func (l Language) IsEnglish() bool {
	return l == LanguageEN
}

// ParseLanguage maps a loose language tag ("en", "en-US", "zh-CN") onto a
// supported Language. Anything that is not English falls back to Chinese,
// which is the site's primary language.
func ParseLanguage(s string) Language {
	if len(s) >= 2 && (s[:2] == "en" || s[:2] == "EN") {
		return LanguageEN
	}
	return LanguageZH
}

const (
	// DateLayout is the on-disk format of Post.Date. It sorts lexically.
	DateLayout = "2006-01-02"

	// DefaultImageURL is used when a post has no imageUrl.
	DefaultImageURL = "/images/pocs-surgery.jpg"

	// DefaultAuthor is used when a post has no author.
	DefaultAuthor = "刘波主任"

	// DefaultAuthorEn is the English display name of DefaultAuthor.
	DefaultAuthorEn = "Dr. Liu Bo"
)

// Post is the metadata of one published article. The body lives in a
// separate Markdown document named <ID>.md.
type Post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TitleEn    string `json:"titleEn"`
	Excerpt    string `json:"excerpt"`
	ExcerptEn  string `json:"excerptEn"`
	Date       string `json:"date"`
	Category   string `json:"category"`
	CategoryEn string `json:"categoryEn"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Author     string `json:"author,omitempty"`
}

// LocalizedTitle returns the title in the given language.
func (p *Post) LocalizedTitle(lang Language) string {
	if lang.IsEnglish() {
		return p.TitleEn
	}
	return p.Title
}

// LocalizedExcerpt returns the excerpt in the given language.
func (p *Post) LocalizedExcerpt(lang Language) string {
	if lang.IsEnglish() {
		return p.ExcerptEn
	}
	return p.Excerpt
}

// LocalizedCategory returns the category label in the given language.
func (p *Post) LocalizedCategory(lang Language) string {
	if lang.IsEnglish() {
		return p.CategoryEn
	}
	return p.Category
}

// Image returns the image URL, falling back to the shared placeholder.
func (p *Post) Image() string {
	if p.ImageURL == "" {
		return DefaultImageURL
	}
	return p.ImageURL
}

// LocalizedAuthor returns the author name for display. The default author
// has a fixed English rendering; custom authors are shown as written.
func (p *Post) LocalizedAuthor(lang Language) string {
	if p.Author == "" || p.Author == DefaultAuthor {
		if lang.IsEnglish() {
			return DefaultAuthorEn
		}
		return DefaultAuthor
	}
	return p.Author
}

// PublishedAt parses Date. ok is false when the date is malformed.
func (p *Post) PublishedAt() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WithDefaults returns a copy of p with the optional fields filled in.
func (p Post) WithDefaults() Post {
	if p.ImageURL == "" {
		p.ImageURL = DefaultImageURL
	}
	if p.Author == "" {
		p.Author = DefaultAuthor
	}
	return p
}
