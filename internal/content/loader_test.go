package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
	"pocsclinic/internal/storage"
)

func samplePost() models.Post {
	return models.Post{
		ID:         "pocs-vs-traditional",
		Title:      "POCS与传统胆囊切除对比",
		TitleEn:    "POCS vs Traditional Cholecystectomy",
		Excerpt:    "保胆取石保留胆囊功能",
		ExcerptEn:  "Gallbladder-preserving surgery keeps the gallbladder working",
		Date:       "2025-01-15",
		Category:   "技术介绍",
		CategoryEn: "Technology",
	}
}

type stubSource struct {
	data []byte
	err  error
}

func (s stubSource) Fetch(ctx context.Context, id string) ([]byte, error) {
	return s.data, s.err
}

func TestLoadReturnsSourceVerbatim(t *testing.T) {
	raw := "# 标题\n\n  正文 with trailing spaces  \n"
	l := NewLoader(stubSource{data: []byte(raw)}, nil)
	doc := l.Load(context.Background(), samplePost(), models.LanguageZH)
	assert.False(t, doc.Fallback)
	assert.Equal(t, raw, doc.Markdown)
}

func TestLoadFallback(t *testing.T) {
	errs := map[string]error{
		"not found": ErrNotFound,
		"transport": errors.New("connection refused"),
	}
	for name, err := range errs {
		t.Run(name, func(t *testing.T) {
			l := NewLoader(stubSource{err: err}, nil)
			for _, lang := range []models.Language{models.LanguageZH, models.LanguageEN} {
				post := samplePost()
				doc := l.Load(context.Background(), post, lang)
				require.True(t, doc.Fallback)
				assert.NotEmpty(t, doc.Markdown)
				assert.True(t, strings.HasPrefix(doc.Markdown, "# "+post.LocalizedTitle(lang)+"\n"))
				assert.Contains(t, doc.Markdown, i18n.Default().T(lang, "article.disclaimer"))
				assert.Contains(t, doc.Markdown, post.LocalizedExcerpt(lang))
			}
		})
	}
}

func TestFallbackDeterministic(t *testing.T) {
	table := i18n.Default()
	a := FallbackDocument(table, samplePost(), models.LanguageEN)
	b := FallbackDocument(table, samplePost(), models.LanguageEN)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "> **Technology** • January 15, 2025")

	zh := FallbackDocument(table, samplePost(), models.LanguageZH)
	assert.Contains(t, zh, "> **技术介绍** • 2025年1月15日")
	assert.Contains(t, zh, "刘波主任")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	src := FileSource{Dir: dir}

	data, err := src.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))

	_, err = src.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, bad := range []string{"", "..", "../etc/passwd", `a\b`} {
		_, err := src.Fetch(context.Background(), bad)
		assert.Error(t, err, bad)
		assert.NotErrorIs(t, err, ErrNotFound, bad)
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blog-posts/a.md":
			fmt.Fprint(w, "# A\n")
		case "/blog-posts/broken.md":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/blog-posts/")
	data, err := src.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))

	_, err = src.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestHTTPSourceTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exact.md":
			w.Write([]byte(strings.Repeat("a", maxDocumentSize)))
		case "/big.md":
			w.Write([]byte(strings.Repeat("a", maxDocumentSize+1<<20)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	src := NewHTTPSource(srv.URL)

	data, err := src.Fetch(context.Background(), "exact")
	require.NoError(t, err)
	assert.Len(t, data, maxDocumentSize)

	_, err = src.Fetch(context.Background(), "big")
	assert.ErrorIs(t, err, ErrTooLarge)

	// An oversized document is never shown cut short.
	post := samplePost()
	post.ID = "big"
	doc := NewLoader(src, nil).Load(context.Background(), post, models.LanguageEN)
	assert.True(t, doc.Fallback)
	assert.Contains(t, doc.Markdown, post.TitleEn)
}

func TestHTTPSourceCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPSource(srv.URL).Fetch(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

type stubDownloader struct {
	objects map[string]string
}

func (s stubDownloader) Download(ctx context.Context, name string) ([]byte, error) {
	v, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("s3 download %s: %w", name, storage.ErrNotFound)
	}
	return []byte(v), nil
}

func TestS3Source(t *testing.T) {
	src := NewS3Source(stubDownloader{objects: map[string]string{"a.md": "# A\n"}})
	data, err := src.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))

	_, err = src.Fetch(context.Background(), "b")
	assert.ErrorIs(t, err, ErrNotFound)
}
