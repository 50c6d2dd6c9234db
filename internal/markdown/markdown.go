// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts article Markdown into sanitized HTML using
// goldmark and bluemonday, and memoises the result per source text.
package markdown

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultCacheSize is the number of rendered documents kept in memory.
const DefaultCacheSize = 256

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(), // raw HTML survives here and is cleaned by the policy
	),
)

// newPolicy returns the UGC policy extended with the inline styles the
// highlighter emits.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles("color", "background-color", "font-weight", "font-style").OnElements("span", "pre")
	p.AllowAttrs("tabindex").OnElements("pre")
	return p
}

func toHTML(policy *bluemonday.Policy, source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Renderer converts Markdown to sanitized HTML and keeps recent results in
// an LRU cache keyed by the SHA-256 of the source. Safe for concurrent use.
type Renderer struct {
	policy *bluemonday.Policy
	cache  *lru.Cache[string, string]
}

// NewRenderer creates a Renderer caching up to size documents. A size of
// zero or less uses DefaultCacheSize.
func NewRenderer(size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Renderer{policy: newPolicy(), cache: c}, nil
}

// Render returns the HTML for source, converting it on a cache miss.
func (r *Renderer) Render(source string) (string, error) {
	sum := sha256.Sum256([]byte(source))
	key := hex.EncodeToString(sum[:])
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}
	out, err := toHTML(r.policy, source)
	if err != nil {
		return "", err
	}
	r.cache.Add(key, out)
	return out, nil
}

// Len returns the number of cached documents.
func (r *Renderer) Len() int {
	return r.cache.Len()
}
