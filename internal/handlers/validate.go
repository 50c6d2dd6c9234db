package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"pocsclinic/internal/assessment"
	"pocsclinic/internal/models"
)

// Validation limits for query and form inputs.
const (
	maxQueryLen   = 200
	maxKeywordLen = 100
)

// validateQuery checks a blog search query and returns the first error found.
func validateQuery(q string) string {
	if utf8.RuneCountInString(q) > maxQueryLen {
		return "Query is too long (max 200 characters)."
	}
	return ""
}

// validateKeyword checks the optional topic keyword of a draft request.
func validateKeyword(k string) string {
	if utf8.RuneCountInString(k) > maxKeywordLen {
		return "Keyword is too long (max 100 characters)."
	}
	if strings.ContainsAny(k, "\r\n") {
		return "Keyword must be a single line."
	}
	return ""
}

// parseStatus maps a requested draft status onto a known value. Publishing
// is not a status a client can set.
func parseStatus(s string) (models.DraftStatus, string) {
	status := models.DraftStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Sprintf("Unknown status %q.", s)
	}
	if status == models.DraftStatusPublished {
		return "", "Drafts are published with blogctl publish-draft."
	}
	return status, ""
}

// parseAnswers decodes the comma-separated answer prefix carried by the
// assessment form. An empty string is an empty prefix.
func parseAnswers(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > assessment.QuestionCount {
		return nil, fmt.Errorf("%w: %d answers", assessment.ErrIncomplete, len(parts))
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: answer %d is not a number", assessment.ErrInvalidOption, i+1)
		}
		out[i] = n
	}
	return out, nil
}

// formatAnswers is the inverse of parseAnswers.
func formatAnswers(answers []int) string {
	parts := make([]string, len(answers))
	for i, a := range answers {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}
