// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public site pages and the JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// PostView is a post record flattened into one language for display.
type PostView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Image    string `json:"imageUrl"`
	Author   string `json:"author"`
}

func viewOf(p models.Post, lang models.Language) PostView {
	return PostView{
		ID:       p.ID,
		Title:    p.LocalizedTitle(lang),
		Excerpt:  p.LocalizedExcerpt(lang),
		Category: p.LocalizedCategory(lang),
		Date:     p.Date,
		Image:    p.Image(),
		Author:   p.LocalizedAuthor(lang),
	}
}

func viewsOf(posts []models.Post, lang models.Language) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, viewOf(p, lang))
	}
	return out
}

// language resolves the display language from ?lang= or Accept-Language.
func language(r *http.Request) models.Language {
	return i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

// localPath returns path with the lang query parameter set.
func localPath(path string, lang models.Language) string {
	return path + "?lang=" + url.QueryEscape(string(lang))
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
