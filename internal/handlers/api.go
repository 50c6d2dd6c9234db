// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pocsclinic/internal/assessment"
	"pocsclinic/internal/content"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/metrics"
	"pocsclinic/internal/models"
	"pocsclinic/internal/registry"
)

// API serves the read-only registry and the assessment evaluator as JSON.
type API struct {
	registry *registry.Registry
	loader   *content.Loader
	table    *i18n.Table
}

// NewAPI creates the JSON API handler group.
func NewAPI(reg *registry.Registry, src content.Source, table *i18n.Table) *API {
	if table == nil {
		table = i18n.Default()
	}
	return &API{registry: reg, loader: content.NewLoader(src, table), table: table}
}

// ListPosts returns the registry records, filtered by ?q= and ?category=
// in the ?lang= language. Records are returned in both languages.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if msg := validateQuery(query); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	posts := filterPosts(a.registry, query, r.URL.Query().Get("category"), lang)
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"count": len(posts),
	})
}

// GetPost returns one record together with its Markdown body. The body is
// the fallback document when the published file cannot be loaded.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lang := language(r)

	post, ok := a.registry.GetByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	doc := a.loader.Load(r.Context(), post, lang)
	metrics.ObserveArticleLoad(string(lang), doc.Fallback)

	writeJSON(w, http.StatusOK, map[string]any{
		"post":            post,
		"lang":            lang,
		"markdown":        doc.Markdown,
		"fallback":        doc.Fallback,
		"readTimeMinutes": content.ReadTime(doc.Markdown, lang),
	})
}

// Categories returns the distinct categories in the requested language.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	cats := a.registry.ListCategories(lang)
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lang": lang, "categories": cats})
}

// Questions returns the assessment questionnaire in the requested language.
func (a *API) Questions(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"lang":      lang,
		"questions": a.table.Questions(lang),
	})
}

type assessmentRequest struct {
	Answers []int `json:"answers"`
}

// Evaluate maps a complete answer set to a verdict and its localized
// recommendation. Incomplete or out-of-range answers are rejected.
func (a *API) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict, err := assessment.Evaluate(req.Answers)
	if err != nil {
		if errors.Is(err, assessment.ErrIncomplete) || errors.Is(err, assessment.ErrInvalidOption) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	metrics.AssessmentVerdicts.WithLabelValues(string(verdict)).Inc()

	lang := language(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"verdict": verdict,
		"message": verdict.Message(a.table, lang),
	})
}
