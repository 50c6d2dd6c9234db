// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pocsclinic/internal/cache"
	"pocsclinic/internal/content"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/markdown"
	"pocsclinic/internal/metrics"
	"pocsclinic/internal/models"
	"pocsclinic/internal/registry"
	"pocsclinic/internal/render"
)

// relatedCount is how many other articles are linked under an article.
const relatedCount = 3

// Public groups handlers for the public-facing blog. Article pages are
// checked against the Valkey page cache before loading and rendering the
// Markdown body, and stored on miss unless the body was a fallback.
type Public struct {
	registry  *registry.Registry
	source    content.Source
	loader    *content.Loader
	markdown  *markdown.Renderer
	renderer  *render.Renderer
	pageCache *cache.PageCache
	table     *i18n.Table
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured.
func NewPublic(reg *registry.Registry, src content.Source, md *markdown.Renderer, renderer *render.Renderer, pageCache *cache.PageCache, table *i18n.Table) *Public {
	if table == nil {
		table = i18n.Default()
	}
	return &Public{
		registry:  reg,
		source:    src,
		loader:    content.NewLoader(src, table),
		markdown:  md,
		renderer:  renderer,
		pageCache: pageCache,
		table:     table,
	}
}

// Homepage renders the landing page with the latest articles.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	p.renderer.Page(w, r, http.StatusOK, "home", &render.PageData{
		Title: p.table.T(lang, "common.home"),
		Lang:  lang,
		Data: map[string]any{
			"Posts": viewsOf(p.registry.Latest(relatedCount), lang),
		},
	})
}

// BlogList renders the article list, optionally narrowed by ?q= and
// ?category=. Both filters apply to the language being displayed.
func (p *Public) BlogList(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := r.URL.Query().Get("category")

	// Over-long queries are ignored on the page; the API rejects them.
	if validateQuery(query) != "" {
		query = ""
	}

	posts := filterPosts(p.registry, query, category, lang)

	p.renderer.Page(w, r, http.StatusOK, "blog_list", &render.PageData{
		Title: p.table.T(lang, "blog.title"),
		Lang:  lang,
		Data: map[string]any{
			"Posts":      viewsOf(posts, lang),
			"Categories": p.registry.ListCategories(lang),
			"Category":   category,
			"Query":      query,
		},
	})
}

// filterPosts applies the search and category filters in registry order.
func filterPosts(reg *registry.Registry, query, category string, lang models.Language) []models.Post {
	posts := reg.Search(query, lang)
	if category == "" {
		return posts
	}
	out := posts[:0:0]
	for _, post := range posts {
		if post.LocalizedCategory(lang) == category {
			out = append(out, post)
		}
	}
	return out
}

// BlogDetail renders one article. Unknown ids redirect to the list.
func (p *Public) BlogDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	lang := language(r)

	post, ok := p.registry.GetByID(id)
	if !ok {
		http.Redirect(w, r, localPath("/blog", lang), http.StatusFound)
		return
	}

	key := cache.ArticleKey(id, lang)
	if p.pageCache != nil {
		cached, hit := p.pageCache.Get(ctx, key)
		metrics.ObserveCacheLookup(hit)
		if hit {
			render.HTML(w, http.StatusOK, cached)
			return
		}
	}

	doc := p.loader.Load(ctx, post, lang)
	metrics.ObserveArticleLoad(string(lang), doc.Fallback)

	body, err := p.markdown.Render(doc.Markdown)
	if err != nil {
		slog.Error("render article markdown", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page, err := p.renderer.Bytes("blog_detail", &render.PageData{
		Title: post.LocalizedTitle(lang),
		Lang:  lang,
		Path:  r.URL.Path,
		Data: map[string]any{
			"Post":     viewOf(post, lang),
			"Body":     template.HTML(body),
			"ReadTime": content.ReadTimeLabel(p.table, doc.Markdown, lang),
			"Related":  viewsOf(related(p.registry, id), lang),
			"Fallback": doc.Fallback,
		},
	})
	if err != nil {
		slog.Error("render article page", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// A fallback body is a placeholder; caching it would hide the real
	// document once it becomes reachable.
	if p.pageCache != nil && !doc.Fallback {
		p.pageCache.Set(ctx, key, page)
	}

	render.HTML(w, http.StatusOK, page)
}

// related returns the newest articles other than id.
func related(reg *registry.Registry, id string) []models.Post {
	var out []models.Post
	for _, post := range reg.Latest(relatedCount + 1) {
		if post.ID != id && len(out) < relatedCount {
			out = append(out, post)
		}
	}
	return out
}

// RawDocument serves the Markdown source of a published article at
// /blog-posts/<id>.md.
func (p *Public) RawDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id, ok := strings.CutSuffix(name, ".md")
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := p.source.Fetch(r.Context(), id)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			slog.Warn("raw document fetch failed", "id", id, "error", err)
		}
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(data)
}
