// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pocsclinic/internal/models"
)

// createDraft generates a draft through the API and returns its id.
func createDraft(t *testing.T, env *testEnv, keyword string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/drafts", strings.NewReader(`{"keyword":"`+keyword+`"}`))
	rr := httptest.NewRecorder()
	env.Drafts.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d (%s)", rr.Code, rr.Body.String())
	}
	var resp struct {
		Draft   models.Draft `json:"draft"`
		Record  models.Post  `json:"record"`
		Matched bool         `json:"matched"`
	}
	decodeBody(t, rr.Body.Bytes(), &resp)
	if resp.Draft.Status != models.DraftStatusDraft {
		t.Errorf("status: got %q, want draft", resp.Draft.Status)
	}
	if resp.Record.ID != resp.Draft.ID {
		t.Errorf("record id %q != draft id %q", resp.Record.ID, resp.Draft.ID)
	}
	return resp.Draft.ID
}

func TestDraftsCreate(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/drafts", strings.NewReader(`{"keyword":"fatty"}`))
	rr := httptest.NewRecorder()
	env.Drafts.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rr.Code)
	}
	var resp struct {
		Draft   models.Draft `json:"draft"`
		Matched bool         `json:"matched"`
	}
	decodeBody(t, rr.Body.Bytes(), &resp)
	if !resp.Matched || !strings.HasPrefix(resp.Draft.ID, "fatty-liver-") {
		t.Errorf("expected matched fatty-liver draft, got %+v matched=%v", resp.Draft, resp.Matched)
	}
	if _, err := os.Stat(filepath.Join(env.DraftsDir, resp.Draft.Filename())); err != nil {
		t.Errorf("draft file: %v", err)
	}
}

func TestDraftsCreateRejectsBadKeyword(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`{"keyword":"a\nb"}`, `{"keyword":"` + strings.Repeat("x", 101) + `"}`, `{"topic":"x"}`} {
		rr := httptest.NewRecorder()
		env.Drafts.Create(rr, httptest.NewRequest(http.MethodPost, "/api/drafts", strings.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", body, rr.Code)
		}
	}
}

func TestDraftsListAndGet(t *testing.T) {
	env := newTestEnv(t)
	id := createDraft(t, env, "diet")

	rr := httptest.NewRecorder()
	env.Drafts.List(rr, httptest.NewRequest(http.MethodGet, "/api/drafts", nil))
	var list struct {
		Drafts []models.Draft `json:"drafts"`
		Count  int            `json:"count"`
	}
	decodeBody(t, rr.Body.Bytes(), &list)
	if list.Count != 1 || list.Drafts[0].ID != id {
		t.Fatalf("list: got %+v", list)
	}

	rr = httptest.NewRecorder()
	env.Drafts.List(rr, httptest.NewRequest(http.MethodGet, "/api/drafts?status=review", nil))
	decodeBody(t, rr.Body.Bytes(), &list)
	if list.Count != 0 {
		t.Errorf("review filter: got %d drafts", list.Count)
	}

	rr = httptest.NewRecorder()
	env.Drafts.List(rr, httptest.NewRequest(http.MethodGet, "/api/drafts?status=bogus", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bogus filter: got %d, want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	env.Drafts.Get(rr, withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/drafts/"+id, nil), "id", id))
	var one struct {
		Draft    models.Draft `json:"draft"`
		Markdown string       `json:"markdown"`
	}
	decodeBody(t, rr.Body.Bytes(), &one)
	if !strings.HasPrefix(one.Markdown, "# ") {
		t.Errorf("markdown: got %q", one.Markdown)
	}
}

func TestDraftsUpdate(t *testing.T) {
	env := newTestEnv(t)
	id := createDraft(t, env, "fatty")

	patch := func(target, body string) *httptest.ResponseRecorder {
		req := withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/drafts/"+target, strings.NewReader(body)), "id", target)
		rr := httptest.NewRecorder()
		env.Drafts.Update(rr, req)
		return rr
	}

	if rr := patch(id, `{"status":"review"}`); rr.Code != http.StatusOK {
		t.Fatalf("to review: got %d (%s)", rr.Code, rr.Body.String())
	}
	d, err := env.DraftStore.Get(id)
	if err != nil || d == nil || d.Status != models.DraftStatusReview {
		t.Fatalf("stored status: %+v, %v", d, err)
	}

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
	}{
		{"same status", id, `{"status":"review"}`, http.StatusConflict},
		{"published is not settable", id, `{"status":"published"}`, http.StatusBadRequest},
		{"unknown status", id, `{"status":"archived"}`, http.StatusBadRequest},
		{"unknown draft", "nope", `{"status":"draft"}`, http.StatusNotFound},
		{"back to draft", id, `{"status":"draft"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := patch(tt.target, tt.body); rr.Code != tt.wantCode {
				t.Errorf("got %d, want %d (%s)", rr.Code, tt.wantCode, rr.Body.String())
			}
		})
	}
}

func TestDraftsDelete(t *testing.T) {
	env := newTestEnv(t)
	id := createDraft(t, env, "fatty")

	d, _ := env.DraftStore.Get(id)
	path := filepath.Join(env.DraftsDir, d.Filename())

	rr := httptest.NewRecorder()
	env.Drafts.Delete(rr, withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/drafts/"+id, nil), "id", id))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rr.Code)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("draft file should be removed, stat err = %v", err)
	}

	rr = httptest.NewRecorder()
	env.Drafts.Delete(rr, withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/drafts/"+id, nil), "id", id))
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rr.Code)
	}
}
