// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strings"

	"pocsclinic/internal/models"
)

// PostStore is the persisted post registry: an append-only JSONL file in
// insertion order.
type PostStore struct {
	path string
}

// NewPostStore returns a PostStore backed by the file at path. The file is
// created on first append.
func NewPostStore(path string) *PostStore {
	return &PostStore{path: path}
}

// Path returns the registry file location.
func (s *PostStore) Path() string {
	return s.path
}

// LoadAll returns every record in insertion order.
func (s *PostStore) LoadAll() ([]models.Post, error) {
	posts, err := readLines[models.Post](s.path)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

// Exists reports whether a record with the given id is persisted.
func (s *PostStore) Exists(id string) (bool, error) {
	posts, err := s.LoadAll()
	if err != nil {
		return false, err
	}
	for _, p := range posts {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Append adds p to the end of the registry. It holds the registry lock for
// the duplicate check and the write, and returns ErrDuplicateID without
// touching the file when the id is already present.
func (s *PostStore) Append(p models.Post) error {
	if err := validatePost(p); err != nil {
		return err
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	exists, err := s.Exists(p.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("append post %q: %w", p.ID, ErrDuplicateID)
	}

	if err := appendLine(s.path, p); err != nil {
		return fmt.Errorf("append post %q: %w", p.ID, err)
	}
	return nil
}

// validatePost enforces the record invariants checked at write time.
func validatePost(p models.Post) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if strings.ContainsAny(p.ID, `/\`) {
		return fmt.Errorf("%w: id %q contains a path separator", ErrInvalidRecord, p.ID)
	}
	if _, ok := p.PublishedAt(); !ok {
		return fmt.Errorf("%w: malformed date %q", ErrInvalidRecord, p.Date)
	}
	return nil
}

// lock takes an exclusive lock file next to the registry. A second holder
// gets ErrLocked; a lock left behind by a crashed process must be removed
// by hand.
func (s *PostStore) lock() (func(), error) {
	return acquireLock(s.path, 0)
}
