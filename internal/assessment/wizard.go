// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assessment

import (
	"errors"
	"fmt"
	"math"
)

// ErrWrongState is returned when a wizard action is not allowed in the
// current state.
var ErrWrongState = errors.New("assessment: action not allowed in current state")

// State is the wizard's position in the questionnaire.
type State int

const (
	StateInProgress State = iota
	StateCompleteAwaitingSubmit
	StateResultShown
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateCompleteAwaitingSubmit:
		return "complete"
	case StateResultShown:
		return "result"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Wizard walks a user through the questions one at a time. Each question
// has its own answer slot, so going back and answering again overwrites
// the earlier choice instead of appending.
type Wizard struct {
	answers  [QuestionCount]int
	answered [QuestionCount]bool
	current  int
	state    State
	verdict  Verdict
}

// NewWizard returns a wizard at the first question.
func NewWizard() *Wizard {
	return &Wizard{}
}

// Replay returns a wizard that has answered the given prefix in order.
// Used to rebuild wizard state carried in a form.
func Replay(answers []int) (*Wizard, error) {
	w := NewWizard()
	for _, a := range answers {
		if err := w.Answer(a); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// State returns the current state.
func (w *Wizard) State() State { return w.state }

// Current returns the zero-based index of the question being asked.
func (w *Wizard) Current() int { return w.current }

// Verdict returns the submitted verdict; empty before Submit.
func (w *Wizard) Verdict() Verdict { return w.verdict }

// Answers returns the answers given so far, in question order.
func (w *Wizard) Answers() []int {
	var out []int
	for i := 0; i < QuestionCount && w.answered[i]; i++ {
		out = append(out, w.answers[i])
	}
	return out
}

// Answer records option for the current question and advances. Answering
// the last question completes the questionnaire.
func (w *Wizard) Answer(option int) error {
	if w.state != StateInProgress {
		return fmt.Errorf("answer in state %s: %w", w.state, ErrWrongState)
	}
	if option < 0 || option >= optionCounts[w.current] {
		return fmt.Errorf("%w: question %d answer %d", ErrInvalidOption, w.current+1, option)
	}

	w.answers[w.current] = option
	w.answered[w.current] = true
	// Later answers were given under a different earlier choice.
	for i := w.current + 1; i < QuestionCount; i++ {
		w.answered[i] = false
	}

	if w.current < QuestionCount-1 {
		w.current++
	} else {
		w.state = StateCompleteAwaitingSubmit
	}
	return nil
}

// Back returns to the previous question. From the completed state it
// reopens the last question. It reports false when there is nowhere to
// go back to.
func (w *Wizard) Back() bool {
	switch w.state {
	case StateCompleteAwaitingSubmit:
		w.state = StateInProgress
		w.current = QuestionCount - 1
		return true
	case StateInProgress:
		if w.current == 0 {
			return false
		}
		w.current--
		return true
	}
	return false
}

// Submit evaluates the answers. Only allowed once every question has been
// answered.
func (w *Wizard) Submit() (Verdict, error) {
	if w.state != StateCompleteAwaitingSubmit {
		return "", fmt.Errorf("submit in state %s: %w", w.state, ErrWrongState)
	}
	v, err := Evaluate(w.answers[:])
	if err != nil {
		return "", err
	}
	w.verdict = v
	w.state = StateResultShown
	return v, nil
}

// Reset returns to the first question with no answers.
func (w *Wizard) Reset() {
	*w = Wizard{}
}

// Progress returns the completion percentage shown on the progress bar.
func (w *Wizard) Progress() int {
	done := w.current
	if w.state != StateInProgress {
		done = QuestionCount
	}
	return int(math.Round(float64(done) / float64(QuestionCount) * 100))
}
