// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pocsclinic/internal/contact"
)

func TestContactShow(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.Contact.Show(rr, httptest.NewRequest(http.MethodGet, "/contact?lang=en", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Online Consultation") {
		t.Error("expected form title")
	}
}

func TestContactSubmitForm(t *testing.T) {
	valid := url.Values{
		"name":     {"  张三 "},
		"phone":    {"138 0013 8000"},
		"question": {"胆总管结石能否保胆?"},
	}

	tests := []struct {
		name      string
		form      url.Values
		relayErr  error
		wantCode  int
		wantCalls int
		want      string
	}{
		{"success", valid, nil, http.StatusOK, 1, "Your message has been sent."},
		{"missing fields", url.Values{"name": {"张三"}}, nil, http.StatusUnprocessableEntity, 0, "field-error"},
		{"relay failure", valid, contact.ErrRelay, http.StatusBadGateway, 1, "Submission failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.Relay.err = tt.relayErr

			req := httptest.NewRequest(http.MethodPost, "/contact?lang=en", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()
			env.Contact.Submit(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if got := env.Relay.calls(); got != tt.wantCalls {
				t.Errorf("relay calls: got %d, want %d", got, tt.wantCalls)
			}
			if !strings.Contains(rr.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestContactSubmitFormTrimsFields(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"name": {"  张三 "}, "phone": {" a@b.cn "}, "question": {" 问题 "}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.Contact.Submit(httptest.NewRecorder(), req)

	if len(env.Relay.got) != 1 {
		t.Fatalf("relay calls: got %d, want 1", len(env.Relay.got))
	}
	got := env.Relay.got[0]
	if got.Name != "张三" || got.Phone != "a@b.cn" || got.Question != "问题" {
		t.Errorf("submission not trimmed: %+v", got)
	}
}

func TestContactSubmitJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		relayErr   error
		wantCode   int
		wantFields []string
	}{
		{"success", `{"name":"Li","phone":"+86 138 0013 8000","question":"Is POCS right for me?"}`, nil, http.StatusOK, nil},
		{"invalid", `{"name":"","phone":"abc","question":""}`, nil, http.StatusUnprocessableEntity, []string{"name", "phone", "question"}},
		{"bad json", `{"name":`, nil, http.StatusBadRequest, nil},
		{"relay down", `{"name":"Li","phone":"13800138000","question":"?"}`, errors.New("dial tcp: refused"), http.StatusBadGateway, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.Relay.err = tt.relayErr

			req := httptest.NewRequest(http.MethodPost, "/api/contact?lang=en", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			env.Contact.SubmitJSON(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d (%s)", rr.Code, tt.wantCode, rr.Body.String())
			}
			if tt.wantFields == nil {
				return
			}
			var resp struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			decodeBody(t, rr.Body.Bytes(), &resp)
			for _, f := range tt.wantFields {
				if resp.Fields[f] == "" {
					t.Errorf("expected error for field %q, got %v", f, resp.Fields)
				}
			}
		})
	}
}
