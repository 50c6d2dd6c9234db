// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n holds the static Chinese and English string tables. Both
// tables are embedded YAML trees looked up by dotted keys such as
// "assessment.verdicts.high".
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"pocsclinic/internal/models"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Question is one assessment question with its ordered options.
type Question struct {
	Question string   `yaml:"question" json:"question"`
	Options  []string `yaml:"options" json:"options"`
}

// Table is a pair of parsed string trees, one per supported language.
type Table struct {
	trees map[models.Language]map[string]any
}

var defaultTable = mustLoad()

// Default returns the table built from the embedded locale files.
func Default() *Table {
	return defaultTable
}

func mustLoad() *Table {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// Load parses the embedded locale files.
func Load() (*Table, error) {
	t := &Table{trees: make(map[models.Language]map[string]any)}
	for _, lang := range []models.Language{models.LanguageZH, models.LanguageEN} {
		raw, err := localeFS.ReadFile("locales/" + string(lang) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		tree := make(map[string]any)
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		t.trees[lang] = tree
	}
	return t, nil
}

// lookup walks the dotted key through the language tree.
func (t *Table) lookup(lang models.Language, key string) (any, bool) {
	var node any = t.trees[lang]
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// T returns the string stored under key. Missing keys return the key itself
// so a gap in a table shows up on the page instead of as an empty string.
func (t *Table) T(lang models.Language, key string) string {
	v, ok := t.lookup(lang, key)
	if !ok {
		return key
	}
	s, ok := v.(string)
	if !ok {
		return key
	}
	return s
}

// Format is T with {{name}} placeholders replaced from vars.
func (t *Table) Format(lang models.Language, key string, vars map[string]string) string {
	s := t.T(lang, key)
	for name, val := range vars {
		s = strings.ReplaceAll(s, "{{"+name+"}}", val)
	}
	return s
}

// List returns the string array stored under key, or nil.
func (t *Table) List(lang models.Language, key string) []string {
	v, ok := t.lookup(lang, key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// Questions returns the assessment questions in display order.
func (t *Table) Questions(lang models.Language) []Question {
	v, ok := t.lookup(lang, "assessment.questions")
	if !ok {
		return nil
	}
	// Re-encode the generic subtree so yaml.v3 can fill the typed slice.
	raw, err := yaml.Marshal(v)
	if err != nil {
		return nil
	}
	var qs []Question
	if err := yaml.Unmarshal(raw, &qs); err != nil {
		return nil
	}
	return qs
}

var matcher = language.NewMatcher([]language.Tag{
	language.Chinese,
	language.English,
})

// Negotiate picks the display language. An explicit choice ("en", "zh")
// wins; otherwise the Accept-Language header is matched against the
// supported tags, defaulting to Chinese.
func Negotiate(explicit, acceptLanguage string) models.Language {
	if explicit != "" {
		return models.ParseLanguage(explicit)
	}
	if acceptLanguage == "" {
		return models.LanguageZH
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return models.LanguageZH
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return models.LanguageZH
	}
	if idx == 1 {
		return models.LanguageEN
	}
	return models.LanguageZH
}
