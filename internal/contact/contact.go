// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact validates consultation requests and forwards them to the
// external form relay. Nothing is stored locally.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultRelayURL is the hosted form endpoint the site posts to.
const DefaultRelayURL = "https://formspree.io/f/xeogleze"

// ErrRelay is returned when the relay rejects or cannot receive a message.
var ErrRelay = errors.New("contact: relay failed")

// Submission is a consultation request from the contact form.
type Submission struct {
	Name      string `json:"name" validate:"required,max=50"`
	Phone     string `json:"phone" validate:"required,phone|email"`
	Condition string `json:"condition" validate:"max=200"`
	Question  string `json:"question" validate:"required,max=2000"`
}

// Normalize trims surrounding whitespace from every field.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Condition = strings.TrimSpace(s.Condition)
	s.Question = strings.TrimSpace(s.Question)
}

// ValidationError maps JSON field names to messages.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = e.Errors[f]
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// phonePattern accepts mainland mobile numbers and international or
// landline formats with separators.
var phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9 \-()]{5,18}[0-9]$`)

// Validator checks submissions.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a validator that reports errors under JSON names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate returns a *ValidationError describing every invalid field.
func (v *Validator) Validate(s Submission) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out.Errors[field] = field + " is required"
		case "max":
			out.Errors[field] = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "phone|email":
			out.Errors[field] = field + " must be a phone number or email address"
		default:
			out.Errors[field] = field + " is invalid"
		}
	}
	return out
}

// Relay posts submissions to the form relay as JSON.
type Relay struct {
	url    string
	client *http.Client
}

// NewRelay returns a relay client for url.
func NewRelay(url string) *Relay {
	if url == "" {
		url = DefaultRelayURL
	}
	return &Relay{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

// Send forwards s. Any non-2xx response or transport error wraps ErrRelay.
func (r *Relay) Send(ctx context.Context, s Submission) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contact marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelay, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRelay, resp.StatusCode)
	}
	return nil
}
