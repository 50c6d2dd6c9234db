// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pocsclinic/internal/storage"
)

var (
	// ErrNotFound is returned by a Source when no document exists for an id.
	ErrNotFound = errors.New("content: document not found")

	// ErrTooLarge is returned when a document exceeds maxDocumentSize.
	ErrTooLarge = errors.New("content: document too large")
)

// maxDocumentSize bounds a fetched document.
const maxDocumentSize = 4 << 20

// Source fetches the raw Markdown document published under an id.
type Source interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// DocumentName returns the file name a post's body is published under.
func DocumentName(id string) string {
	return id + ".md"
}

// validID rejects ids that could escape the published root.
func validID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("content: invalid document id %q", id)
	}
	return nil
}

// FileSource reads documents from a local directory.
type FileSource struct {
	Dir string
}

// Fetch reads <Dir>/<id>.md.
func (s FileSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := filepath.Join(s.Dir, DocumentName(id))
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", p, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// HTTPSource fetches documents from <BaseURL>/<id>.md.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns an HTTPSource with a bounded client timeout.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch issues a GET tied to ctx. A 404 maps to ErrNotFound; any other
// non-2xx status is an error.
func (s *HTTPSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	u := s.BaseURL + "/" + url.PathEscape(DocumentName(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", u, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", u, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("fetch %s: %w (over %d bytes)", u, ErrTooLarge, maxDocumentSize)
	}
	return data, nil
}

// objectDownloader is the subset of the storage client S3Source needs.
type objectDownloader interface {
	Download(ctx context.Context, name string) ([]byte, error)
}

// S3Source reads documents from object storage.
type S3Source struct {
	client objectDownloader
}

// NewS3Source wraps an object storage client.
func NewS3Source(client objectDownloader) *S3Source {
	return &S3Source{client: client}
}

// Fetch downloads <id>.md from the bucket.
func (s *S3Source) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Download(ctx, DocumentName(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return data, err
}
