// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists the post registry and the draft index as
// line-delimited JSON files. Each line holds one complete record, so an
// append never needs to splice text into the middle of a file.
package store

import "errors"

var (
	// ErrDuplicateID is returned when a record with the same id exists.
	ErrDuplicateID = errors.New("store: duplicate id")

	// ErrNotFound is returned when an id has no record.
	ErrNotFound = errors.New("store: not found")

	// ErrLocked is returned when another process holds the registry or
	// draft index lock.
	ErrLocked = errors.New("store: file is locked by another process")

	// ErrInvalidRecord is returned for records that violate an invariant.
	ErrInvalidRecord = errors.New("store: invalid record")

	// ErrInvalidTransition is returned for a disallowed draft status change.
	ErrInvalidTransition = errors.New("store: invalid status transition")
)
