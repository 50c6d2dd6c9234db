// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package drafting

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"pocsclinic/internal/models"
	"pocsclinic/internal/store"
)

// DraftRemover looks up and removes index entries. Implemented by
// store.DraftStore.
type DraftRemover interface {
	Get(id string) (*models.Draft, error)
	Delete(id string) error
}

// Discard removes the draft from the index and deletes its Markdown file
// from dir. A published draft keeps its file, which is the source of the
// published copy. Unknown ids return store.ErrNotFound.
func Discard(index DraftRemover, dir, id string) (*models.Draft, error) {
	draft, err := index.Get(id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s: %w", id, store.ErrNotFound)
	}
	if err := index.Delete(id); err != nil {
		return nil, err
	}

	if draft.Status != models.DraftStatusPublished {
		path := filepath.Join(dir, draft.Filename())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("remove draft file", "path", path, "error", err)
		}
	}
	return draft, nil
}
