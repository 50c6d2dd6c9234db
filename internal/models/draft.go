// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DraftStatus represents where a draft sits in the editorial workflow.
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusReview    DraftStatus = "review"
	DraftStatusPublished DraftStatus = "published"
)

// Valid reports whether s is one of the known statuses.
func (s DraftStatus) Valid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusReview, DraftStatusPublished:
		return true
	}
	return false
}

// CanTransitionTo reports whether a user may move a draft from s to next.
// Publishing is reserved for the publish pipeline, which promotes the file
// into the registry; it never goes through this check.
func (s DraftStatus) CanTransitionTo(next DraftStatus) bool {
	switch s {
	case DraftStatusDraft:
		return next == DraftStatusReview
	case DraftStatusReview:
		return next == DraftStatusDraft
	}
	return false
}

// Draft is an unpublished article tracked in the draft index. Its ID is
// also the stem of the Markdown file in the drafts directory.
type Draft struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Date    string      `json:"date"`
	Status  DraftStatus `json:"status"`
	Preview string      `json:"preview,omitempty"`
}

// Filename returns the Markdown file name backing the draft.
func (d *Draft) Filename() string {
	return d.ID + ".md"
}
