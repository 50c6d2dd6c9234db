// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for draft and post
// ids. Chinese titles keep their characters; Latin accents are folded.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes characters and drops combining marks: "é" → "e".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate creates a slug from s. Letters and digits of any script are
// kept and lower-cased, whitespace, underscores and hyphens become single
// hyphens, everything else is dropped.
// Example: "POCS 保胆取石: What's New?" → "pocs-保胆取石-whats-new"
func Generate(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// Truncate shortens slug to at most n runes without leaving a trailing
// hyphen.
func Truncate(slug string, n int) string {
	rs := []rune(slug)
	if len(rs) <= n {
		return slug
	}
	return strings.TrimRight(string(rs[:n]), "-")
}
