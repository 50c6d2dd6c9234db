// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package registry holds the in-memory list of published posts and the
// queries the blog pages run against it. Queries never fail; unknown ids,
// categories and queries degrade to empty results.
package registry

import (
	"sort"
	"strings"
	"sync"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// Registry is a read-mostly, ordered collection of posts. It is safe for
// concurrent use; Replace swaps the whole set atomically.
type Registry struct {
	mu    sync.RWMutex
	posts []models.Post
	byID  map[string]int
}

// New returns a registry holding posts in the given order. When two posts
// share an id, the first one wins lookups.
func New(posts []models.Post) *Registry {
	r := &Registry{}
	r.Replace(posts)
	return r
}

// Replace swaps the registry contents.
func (r *Registry) Replace(posts []models.Post) {
	cp := make([]models.Post, len(posts))
	byID := make(map[string]int, len(posts))
	for i, p := range posts {
		cp[i] = p.WithDefaults()
		if cp[i].CategoryEn == "" {
			cp[i].CategoryEn = i18n.CategoryEn(p.Category)
		}
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}

	r.mu.Lock()
	r.posts = cp
	r.byID = byID
	r.mu.Unlock()
}

// Len returns the number of posts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}

// All returns every post in insertion order.
func (r *Registry) All() []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Post(nil), r.posts...)
}

// GetByID returns the post with the given id.
func (r *Registry) GetByID(id string) (models.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return models.Post{}, false
	}
	return r.posts[i], true
}

// ListCategories returns the distinct categories in lang, ordered by first
// occurrence.
func (r *Registry) ListCategories(lang models.Language) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range r.posts {
		c := p.LocalizedCategory(lang)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// FilterByCategory returns the posts whose category in lang equals
// category exactly.
func (r *Registry) FilterByCategory(category string, lang models.Language) []models.Post {
	return r.filter(func(p models.Post) bool {
		return p.LocalizedCategory(lang) == category
	})
}

// Search returns the posts whose title, excerpt or category in lang
// contains query, ignoring case. An empty query matches every post.
func (r *Registry) Search(query string, lang models.Language) []models.Post {
	q := strings.ToLower(query)
	return r.filter(func(p models.Post) bool {
		return strings.Contains(strings.ToLower(p.LocalizedTitle(lang)), q) ||
			strings.Contains(strings.ToLower(p.LocalizedExcerpt(lang)), q) ||
			strings.Contains(strings.ToLower(p.LocalizedCategory(lang)), q)
	})
}

// Latest returns up to n posts, newest first. Posts with the same date keep
// their insertion order. n <= 0 returns all posts.
func (r *Registry) Latest(n int) []models.Post {
	posts := r.All()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	if n > 0 && n < len(posts) {
		posts = posts[:n]
	}
	return posts
}

func (r *Registry) filter(keep func(models.Post) bool) []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Post
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
