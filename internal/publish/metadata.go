// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publish

import (
	"strings"
	"unicode/utf8"

	"pocsclinic/internal/i18n"
)

const (
	titleScanLines  = 20
	excerptGather   = 100
	excerptMaxRunes = 80
)

// ParseMetadata extracts the title and excerpt of a Markdown draft.
//
// The title is the first line starting with "#" within the first 20
// lines, with the hashes stripped. The excerpt concatenates the first
// lines that are not headings, quotes, list items, rules or table rows
// until it exceeds 100 runes, then keeps the first 80.
func ParseMetadata(content string) (title, excerpt string) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines) && i < titleScanLines; i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "#") {
			title = strings.TrimSpace(strings.TrimLeft(line, "#"))
			break
		}
	}

	var b strings.Builder
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") ||
			strings.HasPrefix(line, "-") || strings.HasPrefix(line, "|") {
			continue
		}
		b.WriteString(line)
		if utf8.RuneCountInString(b.String()) > excerptGather {
			break
		}
	}
	excerpt = strings.TrimSpace(b.String())
	if rs := []rune(excerpt); len(rs) > excerptMaxRunes {
		excerpt = string(rs[:excerptMaxRunes])
	}
	return title, excerpt
}

// categoryRules are checked in order; the first rule with a keyword
// present in the document wins.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{i18n.CategoryGallstonePrevention, []string{"胆结石", "结石", "gallstone"}},
	{i18n.CategoryDietaryGuidance, []string{"饮食", "营养", "diet", "nutrition"}},
	{i18n.CategoryHepatobiliaryHealth, []string{"肝胆", "肝", "liver"}},
}

// InferCategory classifies a document by keyword. Latin keywords match
// case-insensitively. Documents matching no rule are technology articles.
func InferCategory(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range categoryRules {
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				return rule.category
			}
		}
	}
	return i18n.CategoryTechnology
}
