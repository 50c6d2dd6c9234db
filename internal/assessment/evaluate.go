// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assessment scores the seven-question POCS suitability
// questionnaire and drives the question-by-question wizard.
package assessment

import (
	"errors"
	"fmt"

	"pocsclinic/internal/i18n"
	"pocsclinic/internal/models"
)

var (
	// ErrIncomplete is returned when an answer set does not hold exactly
	// one answer per question.
	ErrIncomplete = errors.New("assessment: answer set must contain one answer per question")

	// ErrInvalidOption is returned when an answer is outside its question's
	// option range.
	ErrInvalidOption = errors.New("assessment: answer out of range")
)

// Question positions in an answer set.
const (
	QHasStones = iota
	QLocation
	QSize
	QPriorSurgery
	QSymptoms
	QAge
	QComorbidities

	QuestionCount
)

// optionCounts is the number of options offered for each question.
var optionCounts = [QuestionCount]int{3, 5, 5, 2, 5, 3, 3}

// OptionCount returns the number of options of question q.
func OptionCount(q int) int {
	if q < 0 || q >= QuestionCount {
		return 0
	}
	return optionCounts[q]
}

// Verdict is the suitability outcome.
type Verdict string

const (
	VerdictHigh          Verdict = "high"
	VerdictIndeterminate Verdict = "indeterminate"
	VerdictLow           Verdict = "low"
)

// Message returns the localized recommendation for v.
func (v Verdict) Message(table *i18n.Table, lang models.Language) string {
	return table.T(lang, "assessment.verdicts."+string(v))
}

// Validate checks that answers is a complete set of in-range indices.
func Validate(answers []int) error {
	if len(answers) != QuestionCount {
		return fmt.Errorf("%w: got %d, want %d", ErrIncomplete, len(answers), QuestionCount)
	}
	for q, a := range answers {
		if a < 0 || a >= optionCounts[q] {
			return fmt.Errorf("%w: question %d answer %d (options 0-%d)", ErrInvalidOption, q+1, a, optionCounts[q]-1)
		}
	}
	return nil
}

// Evaluate maps a complete answer set to a verdict. Rules are checked in
// order and the first match wins:
//
//   - High: confirmed stones in the common bile duct or intrahepatic
//     ducts, 5-20mm, with any symptoms.
//   - Indeterminate: confirmed stones with an unclear location or larger
//     than 20mm.
//   - Low: everything else.
//
// Prior surgery, age and comorbidities are collected but do not affect
// the verdict.
func Evaluate(answers []int) (Verdict, error) {
	if err := Validate(answers); err != nil {
		return "", err
	}

	hasStones := answers[QHasStones] == 0
	location := answers[QLocation]
	size := answers[QSize]
	symptomatic := answers[QSymptoms] > 0

	if hasStones && (location == 1 || location == 2) && (size == 1 || size == 2) && symptomatic {
		return VerdictHigh, nil
	}
	if hasStones && (location == 4 || size == 3) {
		return VerdictIndeterminate, nil
	}
	return VerdictLow, nil
}
