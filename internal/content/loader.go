// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content loads the Markdown body of a published post. When the
// document cannot be fetched the loader synthesizes a short placeholder
// article from the post metadata, so a registered post always has a body.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// Document is a loaded article body.
type Document struct {
	Markdown string
	// Fallback is true when Markdown was synthesized from metadata.
	Fallback bool
}

// Loader fetches post bodies from a Source.
type Loader struct {
	src   Source
	table *i18n.Table
}

// NewLoader returns a Loader reading from src. A nil table uses the
// embedded localization table.
func NewLoader(src Source, table *i18n.Table) *Loader {
	if table == nil {
		table = i18n.Default()
	}
	return &Loader{src: src, table: table}
}

// Load returns the published Markdown of post verbatim, or the fallback
// document in lang when the fetch fails for any reason.
func (l *Loader) Load(ctx context.Context, post models.Post, lang models.Language) Document {
	data, err := l.src.Fetch(ctx, post.ID)
	if err == nil {
		return Document{Markdown: string(data)}
	}

	if errors.Is(err, ErrNotFound) {
		slog.Warn("article body missing, using fallback", "id", post.ID)
	} else {
		slog.Warn("article body fetch failed, using fallback", "id", post.ID, "error", err)
	}
	return Document{Markdown: FallbackDocument(l.table, post, lang), Fallback: true}
}

// FallbackDocument builds the placeholder article for post in lang.
func FallbackDocument(table *i18n.Table, post models.Post, lang models.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", post.LocalizedTitle(lang))
	fmt.Fprintf(&b, "> **%s** • %s\n\n", post.LocalizedCategory(lang), FormatDate(post.Date, lang))
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## %s\n\n%s\n\n", table.T(lang, "article.introHeading"), post.LocalizedExcerpt(lang))
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", table.T(lang, "article.authorHeading"), table.T(lang, "article.authorBio"))

	fmt.Fprintf(&b, "## %s\n\n", table.T(lang, "article.consultHeading"))
	fmt.Fprintf(&b, "- %s\n- %s\n\n", table.T(lang, "article.clinicHours"), table.T(lang, "article.clinicAddress"))

	fmt.Fprintf(&b, "## %s\n\n%s\n\n", table.T(lang, "article.readMoreHeading"), table.T(lang, "article.readMoreBody"))

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*%s*\n", table.T(lang, "article.disclaimer"))
	return b.String()
}
