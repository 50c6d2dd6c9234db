// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func postAssessment(t *testing.T, env *testEnv, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/assessment?lang=en", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	env.Assessment.Step(rr, req)
	return rr
}

func TestAssessmentShow(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.Assessment.Show(rr, httptest.NewRequest(http.MethodGet, "/assessment?lang=en", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Have you been diagnosed with gallstones?") {
		t.Error("expected first question")
	}
	if !strings.Contains(body, "1/7") {
		t.Error("expected question counter")
	}
}

func TestAssessmentStep(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		want     []string
	}{
		{
			name:     "answer advances",
			form:     url.Values{"answers": {""}, "option": {"0"}},
			wantCode: http.StatusOK,
			want:     []string{"Where are the stones located?", `name="answers" value="0"`},
		},
		{
			name:     "back highlights previous answer",
			form:     url.Values{"answers": {"0,1"}, "action": {"back"}},
			wantCode: http.StatusOK,
			want:     []string{"Where are the stones located?", `name="answers" value="0"`, `value="1" class="selected"`},
		},
		{
			name:     "last answer completes",
			form:     url.Values{"answers": {"0,1,1,1,2,0"}, "option": {"1"}},
			wantCode: http.StatusOK,
			want:     []string{"Assessment Complete!", `name="answers" value="0,1,1,1,2,0,1"`},
		},
		{
			name:     "submit shows verdict",
			form:     url.Values{"answers": {"0,1,1,1,2,0,1"}, "action": {"submit"}},
			wantCode: http.StatusOK,
			want:     []string{"result-high", "may be highly suitable"},
		},
		{
			name:     "restart",
			form:     url.Values{"answers": {"0,1,1,1,2,0,1"}, "action": {"restart"}},
			wantCode: http.StatusOK,
			want:     []string{"Have you been diagnosed with gallstones?"},
		},
		{
			name:     "submit before complete",
			form:     url.Values{"answers": {"0,1"}, "action": {"submit"}},
			wantCode: http.StatusConflict,
		},
		{
			name:     "option out of range",
			form:     url.Values{"answers": {"0"}, "option": {"9"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing option",
			form:     url.Values{"answers": {"0"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "corrupt answers",
			form:     url.Values{"answers": {"0,x"}, "option": {"0"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "answer after complete",
			form:     url.Values{"answers": {"0,1,1,1,2,0,1"}, "option": {"0"}},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postAssessment(t, env, tt.form)

			if rr.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			body := rr.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q", w)
				}
			}
		})
	}
}
