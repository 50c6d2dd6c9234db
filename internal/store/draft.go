// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"sync"
	"time"

	"pocsclinic/internal/models"
)

// DraftStore is the draft index kept next to the draft Markdown files. It
// is the single record of which drafts exist and where each one sits in the
// editorial workflow; the generator, the publisher and the HTTP API all go
// through it.
//
// Writes hold both an in-process mutex and the index lock file, so blogctl
// and the server's drafts API never overwrite each other's changes.
type DraftStore struct {
	mu       sync.Mutex
	path     string
	lockWait time.Duration // how long a write waits for another process
}

// NewDraftStore returns a DraftStore backed by the index file at path.
func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path, lockWait: 2 * time.Second}
}

// List returns all drafts in creation order.
func (s *DraftStore) List() ([]models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := readLines[models.Draft](s.path)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

// Get returns the draft with the given id. Returns nil if not found.
func (s *DraftStore) Get(id string) (*models.Draft, error) {
	drafts, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range drafts {
		if drafts[i].ID == id {
			return &drafts[i], nil
		}
	}
	return nil, nil
}

// Create adds a new draft. New drafts always start in the draft state.
func (s *DraftStore) Create(d models.Draft) error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty draft id", ErrInvalidRecord)
	}
	d.Status = models.DraftStatusDraft

	return s.mutate(func(drafts []models.Draft) ([]models.Draft, error) {
		for _, existing := range drafts {
			if existing.ID == d.ID {
				return nil, fmt.Errorf("create draft %q: %w", d.ID, ErrDuplicateID)
			}
		}
		return append(drafts, d), nil
	})
}

// SetStatus applies a user-triggered status change.
func (s *DraftStore) SetStatus(id string, next models.DraftStatus) error {
	return s.mutate(func(drafts []models.Draft) ([]models.Draft, error) {
		for i := range drafts {
			if drafts[i].ID != id {
				continue
			}
			if !drafts[i].Status.CanTransitionTo(next) {
				return nil, fmt.Errorf("draft %q %s -> %s: %w", id, drafts[i].Status, next, ErrInvalidTransition)
			}
			drafts[i].Status = next
			return drafts, nil
		}
		return nil, fmt.Errorf("draft %q: %w", id, ErrNotFound)
	})
}

// MarkPublished records that the publish pipeline promoted d. Drafts that
// were dropped into the directory by hand have no index entry yet; they
// are added in the published state.
func (s *DraftStore) MarkPublished(d models.Draft) error {
	return s.mutate(func(drafts []models.Draft) ([]models.Draft, error) {
		for i := range drafts {
			if drafts[i].ID == d.ID {
				drafts[i].Status = models.DraftStatusPublished
				return drafts, nil
			}
		}
		d.Status = models.DraftStatusPublished
		return append(drafts, d), nil
	})
}

// Delete removes a draft from the index. The Markdown file is left alone.
func (s *DraftStore) Delete(id string) error {
	return s.mutate(func(drafts []models.Draft) ([]models.Draft, error) {
		for i := range drafts {
			if drafts[i].ID == id {
				return append(drafts[:i], drafts[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("draft %q: %w", id, ErrNotFound)
	})
}

// mutate loads the index, applies fn and atomically writes the result.
func (s *DraftStore) mutate(fn func([]models.Draft) ([]models.Draft, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := acquireLock(s.path, s.lockWait)
	if err != nil {
		return err
	}
	defer unlock()

	drafts, err := readLines[models.Draft](s.path)
	if err != nil {
		return fmt.Errorf("load drafts: %w", err)
	}
	drafts, err = fn(drafts)
	if err != nil {
		return err
	}
	if err := rewriteLines(s.path, drafts); err != nil {
		return fmt.Errorf("save drafts: %w", err)
	}
	return nil
}
