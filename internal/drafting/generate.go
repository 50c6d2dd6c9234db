// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

// ErrDraftExists is returned when a draft file with the same id exists.
var ErrDraftExists = errors.New("drafting: draft file already exists")

// previewRunes is the length of the preview kept in the draft index.
const previewRunes = 120

// DraftIndex records new drafts. Implemented by store.DraftStore.
type DraftIndex interface {
	Create(d models.Draft) error
}

// Result describes a written draft.
type Result struct {
	Draft models.Draft
	Path  string
	// Record is the registry entry the draft becomes once published.
	Record models.Post
	// Matched is false when the topic was chosen at random.
	Matched bool
}

// Generator writes catalog-based drafts.
type Generator struct {
	Dir    string
	Index  DraftIndex
	Topics []Topic
	Table  *i18n.Table
	Now    func() time.Time
	Rand   *rand.Rand
}

// NewGenerator returns a Generator over the built-in catalog.
func NewGenerator(dir string, index DraftIndex) *Generator {
	return &Generator{
		Dir:    dir,
		Index:  index,
		Topics: Catalog,
		Table:  i18n.Default(),
		Now:    time.Now,
		Rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// NewDraftID returns "<topicID>-<base36 unix millis>".
func NewDraftID(topicID string, now time.Time) string {
	return topicID + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}

// Generate selects a topic by keyword, renders it, writes <id>.md into the
// drafts directory and records it in the draft index.
func (g *Generator) Generate(keyword string) (*Result, error) {
	if len(g.Topics) == 0 {
		return nil, errors.New("drafting: no topics configured")
	}
	topic, matched := SelectTopic(g.Topics, keyword, g.Rand)

	now := g.Now()
	date := now.Format(models.DateLayout)
	id := NewDraftID(topic.ID, now)
	doc := Render(g.Table, topic, date)

	path, err := writeDraft(g.Dir, id, doc)
	if err != nil {
		return nil, err
	}

	draft := models.Draft{
		ID:      id,
		Title:   topic.Title,
		Date:    date,
		Status:  models.DraftStatusDraft,
		Preview: preview(topic.Excerpt),
	}
	if err := g.Index.Create(draft); err != nil {
		return nil, fmt.Errorf("index draft %s: %w", id, err)
	}

	return &Result{
		Draft:   draft,
		Path:    path,
		Matched: matched,
		Record: models.Post{
			ID:         id,
			Title:      topic.Title,
			TitleEn:    topic.TitleEn,
			Excerpt:    topic.Excerpt,
			ExcerptEn:  topic.ExcerptEn,
			Date:       date,
			Category:   topic.Category,
			CategoryEn: topic.CategoryEn(),
			ImageURL:   models.DefaultImageURL,
			Author:     models.DefaultAuthor,
		},
	}, nil
}

// RecordSnippet returns p as a single JSON line ready to append to the
// registry file.
func RecordSnippet(p models.Post) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeDraft creates <dir>/<id>.md, refusing to overwrite.
func writeDraft(dir, id, doc string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create drafts dir: %w", err)
	}
	path := filepath.Join(dir, id+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrDraftExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("create draft %s: %w", path, err)
	}
	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		return "", fmt.Errorf("write draft %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close draft %s: %w", path, err)
	}
	return path, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewRunes {
		return s
	}
	return string([]rune(s)[:previewRunes]) + "…"
}
