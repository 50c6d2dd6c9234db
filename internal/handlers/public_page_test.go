// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomepage(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.Public.Homepage(rr, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	// Latest first.
	first := strings.Index(body, "POCS vs Traditional Cholecystectomy")
	second := strings.Index(body, "Diet Advice for Gallstone Patients")
	if first == -1 || second == -1 || first > second {
		t.Errorf("expected newest posts in date order, got indexes %d, %d", first, second)
	}
}

func TestBlogList(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		target  string
		want    []string
		notWant []string
	}{
		{
			name:   "all posts in chinese",
			target: "/blog",
			want:   []string{"POCS保胆取石与传统胆囊切除的对比", "胆结石患者的饮食建议", "胆结石的早期信号", "全部分类"},
		},
		{
			name:    "category filter",
			target:  "/blog?category=" + "%E9%A5%AE%E9%A3%9F%E6%8C%87%E5%AF%BC", // 饮食指导
			want:    []string{"胆结石患者的饮食建议"},
			notWant: []string{"胆结石的早期信号"},
		},
		{
			name:    "english search",
			target:  "/blog?lang=en&q=early",
			want:    []string{"Early Signs of Gallstones"},
			notWant: []string{"Diet Advice for Gallstone Patients"},
		},
		{
			name:   "no results",
			target: "/blog?lang=en&q=zzz",
			want:   []string{"No matching articles found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			env.Public.BlogList(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rr.Code)
			}
			body := rr.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(body, ">"+nw+"<") {
					t.Errorf("body should not list %q", nw)
				}
			}
		})
	}
}

func TestBlogListAcceptLanguage(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rr := httptest.NewRecorder()
	env.Public.BlogList(rr, req)

	if !strings.Contains(rr.Body.String(), "All Categories") {
		t.Error("expected English page from Accept-Language")
	}
}

func TestBlogDetail(t *testing.T) {
	t.Run("renders document and caches it", func(t *testing.T) {
		env := newTestEnv(t)

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/pocs-vs-traditional", nil), "id", "pocs-vs-traditional")
		rr := httptest.NewRecorder()
		env.Public.BlogDetail(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"保胆取石保留了胆囊功能。", "<h2", "1 分钟阅读", "2025年3月1日"} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if !env.Valkey.Exists("pocs:page:article:zh:pocs-vs-traditional") {
			t.Fatal("expected rendered page in cache")
		}

		// The cached copy is served even after the document changes.
		writeDoc(t, env.PublishedDir, "pocs-vs-traditional", "# changed\n")
		rr = httptest.NewRecorder()
		env.Public.BlogDetail(rr, withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/pocs-vs-traditional", nil), "id", "pocs-vs-traditional"))
		if !strings.Contains(rr.Body.String(), "保胆取石保留了胆囊功能。") {
			t.Error("expected cached page on second request")
		}
	})

	t.Run("fallback document is not cached", func(t *testing.T) {
		env := newTestEnv(t)

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/missing-body?lang=en", nil), "id", "missing-body")
		rr := httptest.NewRecorder()
		env.Public.BlogDetail(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		body := rr.Body.String()
		for _, want := range []string{"Early Signs of Gallstones", "Learn the early symptoms.", "Disclaimer"} {
			if !strings.Contains(body, want) {
				t.Errorf("fallback body missing %q", want)
			}
		}
		if env.Valkey.Exists("pocs:page:article:en:missing-body") {
			t.Error("fallback page must not be cached")
		}
	})

	t.Run("unknown id redirects to list", func(t *testing.T) {
		env := newTestEnv(t)

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/nope?lang=en", nil), "id", "nope")
		rr := httptest.NewRecorder()
		env.Public.BlogDetail(rr, req)

		if rr.Code != http.StatusFound {
			t.Fatalf("status: got %d, want 302", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/blog?lang=en" {
			t.Errorf("Location: got %q", loc)
		}
	})

	t.Run("works without page cache", func(t *testing.T) {
		env := newTestEnv(t)
		env.Public.pageCache = nil

		req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/gallstone-diet", nil), "id", "gallstone-diet")
		rr := httptest.NewRecorder()
		env.Public.BlogDetail(rr, req)

		if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "少油少糖") {
			t.Errorf("got %d", rr.Code)
		}
	})
}

func TestRawDocument(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		param    string
		wantCode int
	}{
		{"published document", "gallstone-diet.md", http.StatusOK},
		{"missing document", "missing-body.md", http.StatusNotFound},
		{"no extension", "gallstone-diet", http.StatusNotFound},
		{"traversal", "..%2Fsecret.md", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog-posts/x", nil), "name", tt.param)
			rr := httptest.NewRecorder()
			env.Public.RawDocument(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				if ct := rr.Header().Get("Content-Type"); ct != "text/markdown; charset=utf-8" {
					t.Errorf("Content-Type: got %q", ct)
				}
				if !strings.HasPrefix(rr.Body.String(), "# 胆结石患者的饮食建议") {
					t.Errorf("body: got %q", rr.Body.String())
				}
			}
		})
	}
}
