// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish promotes a draft into the published site: it copies the
// Markdown file into the published directory, appends a registry record
// and marks the draft as published.
//
// The steps are not transactional. When a later step fails the earlier
// ones are not rolled back; the returned *PartialError says which steps
// completed so the operator can finish or undo them by hand.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
	"pocsclinic/internal/store"
)

var (
	// ErrDraftMissing is returned when the named draft file does not exist.
	ErrDraftMissing = errors.New("publish: draft file not found")

	// ErrAlreadyPublished is returned when a published file of the same
	// name exists.
	ErrAlreadyPublished = errors.New("publish: published file already exists")

	// ErrDuplicateID is returned when the registry already holds the id.
	ErrDuplicateID = errors.New("publish: post id already registered")

	// ErrInvalidName is returned for names that are not plain file names.
	ErrInvalidName = errors.New("publish: invalid draft name")
)

// IsRefusal reports whether err is a pre-flight refusal that left every
// file untouched.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrDraftMissing) || errors.Is(err, ErrAlreadyPublished) ||
		errors.Is(err, ErrDuplicateID) || errors.Is(err, ErrInvalidName)
}

// PartialError reports a failure after the published file was written.
type PartialError struct {
	Step     string
	Copied   string // path of the published copy left in place
	Appended bool
	Err      error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("publish: %s failed after partial publish (copied=%s appended=%t): %v",
		e.Step, e.Copied, e.Appended, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// Registry is the persisted post registry.
type Registry interface {
	Exists(id string) (bool, error)
	Append(p models.Post) error
}

// DraftIndex is the draft index.
type DraftIndex interface {
	List() ([]models.Draft, error)
	MarkPublished(d models.Draft) error
}

// Mirror receives a copy of every published document.
type Mirror interface {
	Upload(ctx context.Context, name, contentType string, data []byte) error
	FileURL(name string) string
}

// CacheInvalidator drops the rendered pages of a newly published article.
type CacheInvalidator interface {
	InvalidateArticle(ctx context.Context, id string)
}

// Publisher runs the publish pipeline. Mirror and Cache are optional.
type Publisher struct {
	DraftsDir    string
	PublishedDir string
	Registry     Registry
	Drafts       DraftIndex
	Mirror       Mirror
	Cache        CacheInvalidator
	Now          func() time.Time
}

// Outcome describes a completed publish.
type Outcome struct {
	Record        models.Post
	PublishedPath string
	Mirrored      bool
	MirrorURL     string
	// Warnings lists optional steps that failed without failing the publish.
	Warnings []string
}

// DraftFile is a Markdown file in the drafts directory with its index
// entry, when it has one.
type DraftFile struct {
	Name  string
	Entry *models.Draft
}

// NormalizeName appends ".md" when missing and rejects path components.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return name, nil
}

// ListDrafts returns the Markdown files in the drafts directory sorted by
// name, joined with their index entries.
func (p *Publisher) ListDrafts() ([]DraftFile, error) {
	entries, err := os.ReadDir(p.DraftsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drafts dir: %w", err)
	}

	index := map[string]models.Draft{}
	if p.Drafts != nil {
		drafts, err := p.Drafts.List()
		if err != nil {
			return nil, err
		}
		for _, d := range drafts {
			index[d.Filename()] = d
		}
	}

	var files []DraftFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		f := DraftFile{Name: e.Name()}
		if d, ok := index[e.Name()]; ok {
			f.Entry = &d
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Publish promotes the named draft. Refusals (see IsRefusal) happen before
// any file is touched.
func (p *Publisher) Publish(ctx context.Context, name string) (*Outcome, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSuffix(name, ".md")
	draftPath := filepath.Join(p.DraftsDir, name)
	publishedPath := filepath.Join(p.PublishedDir, name)

	content, err := os.ReadFile(draftPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDraftMissing, draftPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	if _, err := os.Stat(publishedPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyPublished, publishedPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat published file: %w", err)
	}
	exists, err := p.Registry.Exists(id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	title, excerpt := ParseMetadata(string(content))
	if title == "" {
		title = id
	}
	category := InferCategory(string(content))
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	record := models.Post{
		ID:         id,
		Title:      title,
		TitleEn:    title,
		Excerpt:    excerpt,
		ExcerptEn:  excerpt,
		Date:       now().Format(models.DateLayout),
		Category:   category,
		CategoryEn: i18n.CategoryEn(category),
		ImageURL:   models.DefaultImageURL,
		Author:     models.DefaultAuthor,
	}

	if err := writeNew(publishedPath, content); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPublished, publishedPath)
		}
		return nil, fmt.Errorf("copy draft: %w", err)
	}
	slog.Info("draft copied", "from", draftPath, "to", publishedPath)

	if err := p.Registry.Append(record); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			err = fmt.Errorf("%w: %w", ErrDuplicateID, err)
		}
		return nil, &PartialError{Step: "registry append", Copied: publishedPath, Err: err}
	}
	slog.Info("registry record appended", "id", id)

	if p.Drafts != nil {
		entry := models.Draft{ID: id, Title: title, Date: record.Date, Preview: excerpt}
		if err := p.Drafts.MarkPublished(entry); err != nil {
			return nil, &PartialError{Step: "draft index update", Copied: publishedPath, Appended: true, Err: err}
		}
	}

	out := &Outcome{Record: record, PublishedPath: publishedPath}

	if p.Mirror != nil {
		if err := p.Mirror.Upload(ctx, name, "text/markdown; charset=utf-8", content); err != nil {
			slog.Warn("object storage mirror failed", "name", name, "error", err)
			out.Warnings = append(out.Warnings, "mirror: "+err.Error())
		} else {
			out.Mirrored = true
			out.MirrorURL = p.Mirror.FileURL(name)
		}
	}
	if p.Cache != nil {
		p.Cache.InvalidateArticle(ctx, id)
	}
	return out, nil
}

// writeNew creates path with data, failing if it exists.
func writeNew(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
