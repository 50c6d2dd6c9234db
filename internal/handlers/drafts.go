// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-chi/chi/v5"

	"pocsclinic/internal/drafting"
	"pocsclinic/internal/models"
	"pocsclinic/internal/store"
)

// Drafts exposes the draft index over JSON. It shares the index with
// blogctl, so drafts created here can be published from the command line.
type Drafts struct {
	store *store.DraftStore
	dir   string

	mu  sync.Mutex // serialises gen, whose random source is not goroutine-safe
	gen *drafting.Generator
}

// NewDrafts creates the draft API over the given index and drafts directory.
func NewDrafts(drafts *store.DraftStore, dir string) *Drafts {
	return &Drafts{
		store: drafts,
		dir:   dir,
		gen:   drafting.NewGenerator(dir, drafts),
	}
}

// List returns every indexed draft, optionally filtered by ?status=.
func (d *Drafts) List(w http.ResponseWriter, r *http.Request) {
	drafts, err := d.store.List()
	if err != nil {
		slog.Error("list drafts", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if s := r.URL.Query().Get("status"); s != "" {
		want := models.DraftStatus(s)
		if !want.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown status.")
			return
		}
		filtered := drafts[:0]
		for _, dr := range drafts {
			if dr.Status == want {
				filtered = append(filtered, dr)
			}
		}
		drafts = filtered
	}
	if drafts == nil {
		drafts = []models.Draft{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"drafts": drafts, "count": len(drafts)})
}

type createDraftRequest struct {
	Keyword string `json:"keyword"`
}

// Create generates a catalog draft. The keyword is optional; without a
// match a random topic is used and "matched" is false.
func (d *Drafts) Create(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if msg := validateKeyword(req.Keyword); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	d.mu.Lock()
	res, err := d.gen.Generate(req.Keyword)
	d.mu.Unlock()
	if err != nil {
		if errors.Is(err, drafting.ErrDraftExists) || errors.Is(err, store.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "A draft with this id already exists, try again.")
			return
		}
		slog.Error("generate draft", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("draft generated", "id", res.Draft.ID, "matched", res.Matched)
	writeJSON(w, http.StatusCreated, map[string]any{
		"draft":   res.Draft,
		"record":  res.Record,
		"matched": res.Matched,
	})
}

// Get returns one draft and its Markdown.
func (d *Drafts) Get(w http.ResponseWriter, r *http.Request) {
	draft, ok := d.find(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	body, err := os.ReadFile(filepath.Join(d.dir, draft.Filename()))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("read draft", "id", draft.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"draft":    draft,
		"markdown": string(body),
	})
}

type updateDraftRequest struct {
	Status string `json:"status"`
}

// Update changes a draft's status (draft <-> review).
func (d *Drafts) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateDraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, msg := parseStatus(req.Status)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := d.store.SetStatus(id, status); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Draft not found.")
		case errors.Is(err, store.ErrInvalidTransition):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, store.ErrLocked):
			writeError(w, http.StatusServiceUnavailable, "Draft index is busy, try again.")
		default:
			slog.Error("update draft", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	draft, ok := d.find(w, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draft": draft})
}

// Delete removes a draft from the index and deletes its Markdown file.
// Published drafts keep their file, which is a copy of the published one.
func (d *Drafts) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := drafting.Discard(d.store, d.dir, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Draft not found.")
			return
		}
		if errors.Is(err, store.ErrLocked) {
			writeError(w, http.StatusServiceUnavailable, "Draft index is busy, try again.")
			return
		}
		slog.Error("delete draft", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// find loads a draft or writes a 404/500 response.
func (d *Drafts) find(w http.ResponseWriter, id string) (*models.Draft, bool) {
	draft, err := d.store.Get(id)
	if err != nil {
		slog.Error("get draft", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return nil, false
	}
	if draft == nil {
		writeError(w, http.StatusNotFound, "Draft not found.")
		return nil, false
	}
	return draft, true
}
