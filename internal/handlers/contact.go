// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"pocsclinic/internal/contact"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/metrics"
	"pocsclinic/internal/render"
)

// Relayer forwards a consultation request. Implemented by contact.Relay.
type Relayer interface {
	Send(ctx context.Context, s contact.Submission) error
}

// Contact handles the consultation form. Submissions are validated and
// passed to the external relay; nothing is stored.
type Contact struct {
	relay     Relayer
	validator *contact.Validator
	renderer  *render.Renderer
	table     *i18n.Table
}

// NewContact creates the contact handler group.
func NewContact(relay Relayer, renderer *render.Renderer, table *i18n.Table) *Contact {
	if table == nil {
		table = i18n.Default()
	}
	return &Contact{
		relay:     relay,
		validator: contact.NewValidator(),
		renderer:  renderer,
		table:     table,
	}
}

// Show renders the empty contact form.
func (c *Contact) Show(w http.ResponseWriter, r *http.Request) {
	c.page(w, r, http.StatusOK, contact.Submission{}, nil, "", "")
}

// Submit handles the HTML form post.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	if err := r.ParseForm(); err != nil {
		c.page(w, r, http.StatusBadRequest, contact.Submission{}, nil, c.table.T(lang, "contact.invalid"), "error")
		return
	}

	sub := contact.Submission{
		Name:      r.PostFormValue("name"),
		Phone:     r.PostFormValue("phone"),
		Condition: r.PostFormValue("condition"),
		Question:  r.PostFormValue("question"),
	}
	sub.Normalize()

	if err := c.validator.Validate(sub); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			c.page(w, r, http.StatusUnprocessableEntity, sub, verr.Errors, c.table.T(lang, "contact.invalid"), "error")
			return
		}
		c.page(w, r, http.StatusBadRequest, sub, nil, err.Error(), "error")
		return
	}

	if err := c.send(r.Context(), sub); err != nil {
		c.page(w, r, http.StatusBadGateway, sub, nil, c.table.T(lang, "contact.failure"), "error")
		return
	}
	c.page(w, r, http.StatusOK, contact.Submission{}, nil, c.table.T(lang, "contact.success"), "success")
}

// SubmitJSON handles POST /api/contact. A relay failure is reported as 502.
func (c *Contact) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	lang := language(r)

	var sub contact.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub.Normalize()

	if err := c.validator.Validate(sub); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  c.table.T(lang, "contact.invalid"),
				"fields": verr.Errors,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := c.send(r.Context(), sub); err != nil {
		writeError(w, http.StatusBadGateway, c.table.T(lang, "contact.failure"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": c.table.T(lang, "contact.success")})
}

func (c *Contact) send(ctx context.Context, sub contact.Submission) error {
	err := c.relay.Send(ctx, sub)
	metrics.ObserveRelay(err)
	if err != nil {
		slog.Warn("contact relay failed", "error", err)
	}
	return err
}

func (c *Contact) page(w http.ResponseWriter, r *http.Request, status int, sub contact.Submission, fieldErrs map[string]string, notice, kind string) {
	lang := language(r)
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	c.renderer.Page(w, r, status, "contact", &render.PageData{
		Title: c.table.T(lang, "contact.title"),
		Lang:  lang,
		Path:  "/contact",
		Data: map[string]any{
			"Form":       sub,
			"Errors":     fieldErrs,
			"Notice":     notice,
			"NoticeKind": kind,
		},
	})
}
