// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// a temporary content tree, a seeded registry and an in-memory Valkey.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"pocsclinic/internal/cache"
	"pocsclinic/internal/contact"
	"pocsclinic/internal/content"
	"pocsclinic/internal/markdown"
	"pocsclinic/internal/models"
	"pocsclinic/internal/registry"
	"pocsclinic/internal/render"
	"pocsclinic/internal/store"
)

// fakeRelay records submissions and returns err.
type fakeRelay struct {
	mu   sync.Mutex
	got  []contact.Submission
	err  error
}

func (f *fakeRelay) Send(_ context.Context, s contact.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, s)
	return f.err
}

func (f *fakeRelay) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

var seedPosts = []models.Post{
	{
		ID: "pocs-vs-traditional", Title: "POCS保胆取石与传统胆囊切除的对比",
		TitleEn: "POCS vs Traditional Cholecystectomy", Excerpt: "比较两种手术方式的优缺点。",
		ExcerptEn: "Comparing the two surgical approaches.", Date: "2025-03-01",
		Category: "技术介绍", CategoryEn: "Technology Introduction",
	},
	{
		ID: "gallstone-diet", Title: "胆结石患者的饮食建议",
		TitleEn: "Diet Advice for Gallstone Patients", Excerpt: "科学饮食有助于预防结石复发。",
		ExcerptEn: "A sensible diet helps prevent recurrence.", Date: "2025-02-10",
		Category: "饮食指导", CategoryEn: "Dietary Guidance",
	},
	{
		ID: "missing-body", Title: "胆结石的早期信号",
		TitleEn: "Early Signs of Gallstones", Excerpt: "了解胆结石的早期症状。",
		ExcerptEn: "Learn the early symptoms.", Date: "2025-01-05",
		Category: "胆结石预防", CategoryEn: "Gallstone Prevention",
	},
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Dir          string
	PublishedDir string
	DraftsDir    string
	Registry     *registry.Registry
	DraftStore   *store.DraftStore
	Valkey       *miniredis.Miniredis
	PageCache    *cache.PageCache
	Relay        *fakeRelay
	Renderer     *render.Renderer
	Public       *Public
	API          *API
	Assessment   *Assessment
	Contact      *Contact
	Drafts       *Drafts
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Two of the three seeded posts have a published document.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	published := filepath.Join(dir, "blog-posts")
	drafts := filepath.Join(dir, "drafts")
	if err := os.MkdirAll(published, 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, published, "pocs-vs-traditional", "# POCS保胆取石与传统胆囊切除的对比\n\n## 手术方式\n\n保胆取石保留了胆囊功能。\n")
	writeDoc(t, published, "gallstone-diet", "# 胆结石患者的饮食建议\n\n少油少糖，规律三餐。\n")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	pageCache := cache.NewPageCache(client, time.Minute)

	renderer, err := render.New(nil)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	md, err := markdown.NewRenderer(16)
	if err != nil {
		t.Fatalf("markdown.NewRenderer: %v", err)
	}

	reg := registry.New(seedPosts)
	src := content.FileSource{Dir: published}
	draftStore := store.NewDraftStore(filepath.Join(drafts, "index.jsonl"))
	relay := &fakeRelay{}

	return &testEnv{
		Dir:          dir,
		PublishedDir: published,
		DraftsDir:    drafts,
		Registry:     reg,
		DraftStore:   draftStore,
		Valkey:       mr,
		PageCache:    pageCache,
		Relay:        relay,
		Renderer:     renderer,
		Public:       NewPublic(reg, src, md, renderer, pageCache, nil),
		API:          NewAPI(reg, src, nil),
		Assessment:   NewAssessment(renderer, nil),
		Contact:      NewContact(relay, renderer, nil),
		Drafts:       NewDrafts(draftStore, drafts),
	}
}

func writeDoc(t *testing.T, dir, id, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+".md"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals a JSON response body.
func decodeBody(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
}
