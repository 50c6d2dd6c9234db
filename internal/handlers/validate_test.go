package handlers

import (
	"errors"
	"strings"
	"testing"

	"pocsclinic/internal/assessment"
	"pocsclinic/internal/models"
)

func TestValidateQuery(t *testing.T) {
	if msg := validateQuery(strings.Repeat("胆", 200)); msg != "" {
		t.Errorf("200 runes should pass, got %q", msg)
	}
	if msg := validateQuery(strings.Repeat("胆", 201)); msg == "" {
		t.Error("201 runes should fail")
	}
}

func TestValidateKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		wantErr bool
	}{
		{"", false},
		{"fatty liver", false},
		{"脂肪肝", false},
		{"a\nb", true},
		{strings.Repeat("k", 101), true},
	}
	for _, tt := range tests {
		if got := validateKeyword(tt.keyword) != ""; got != tt.wantErr {
			t.Errorf("validateKeyword(%q) error = %v, want %v", tt.keyword, got, tt.wantErr)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    models.DraftStatus
		wantErr bool
	}{
		{"draft", models.DraftStatusDraft, false},
		{" Review ", models.DraftStatusReview, false},
		{"published", "", true},
		{"", "", true},
		{"archived", "", true},
	}
	for _, tt := range tests {
		got, msg := parseStatus(tt.in)
		if (msg != "") != tt.wantErr || got != tt.want {
			t.Errorf("parseStatus(%q) = %q, %q", tt.in, got, msg)
		}
	}
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers(" 0, 1,2 ")
	if err != nil || formatAnswers(got) != "0,1,2" {
		t.Errorf("parseAnswers: got %v, %v", got, err)
	}

	if got, err := parseAnswers(""); err != nil || len(got) != 0 {
		t.Errorf("empty: got %v, %v", got, err)
	}

	if _, err := parseAnswers("0,0,0,0,0,0,0,0"); !errors.Is(err, assessment.ErrIncomplete) {
		t.Errorf("too many answers: got %v", err)
	}
	if _, err := parseAnswers("0,a"); !errors.Is(err, assessment.ErrInvalidOption) {
		t.Errorf("non-numeric: got %v", err)
	}
}
