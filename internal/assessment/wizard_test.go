package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardHappyPath(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StateInProgress, w.State())
	assert.Equal(t, 0, w.Current())
	assert.Equal(t, 0, w.Progress())

	_, err := w.Submit()
	assert.ErrorIs(t, err, ErrWrongState)

	for i, a := range []int{0, 1, 1, 1, 2, 0, 1} {
		require.Equal(t, i, w.Current())
		require.NoError(t, w.Answer(a))
	}
	assert.Equal(t, StateCompleteAwaitingSubmit, w.State())
	assert.Equal(t, 100, w.Progress())
	assert.ErrorIs(t, w.Answer(0), ErrWrongState)

	v, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, VerdictHigh, v)
	assert.Equal(t, StateResultShown, w.State())
	assert.Equal(t, VerdictHigh, w.Verdict())

	w.Reset()
	assert.Equal(t, StateInProgress, w.State())
	assert.Equal(t, 0, w.Current())
	assert.Empty(t, w.Answers())
	assert.Empty(t, w.Verdict())
}

func TestWizardProgress(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.Answer(0))
	assert.Equal(t, 14, w.Progress())
	require.NoError(t, w.Answer(0))
	require.NoError(t, w.Answer(0))
	assert.Equal(t, 43, w.Progress())
}

func TestWizardRejectsInvalidOption(t *testing.T) {
	w := NewWizard()
	assert.ErrorIs(t, w.Answer(3), ErrInvalidOption)
	assert.Equal(t, 0, w.Current(), "invalid answer must not advance")
	assert.Empty(t, w.Answers())
}

func TestWizardBackOverwritesSlot(t *testing.T) {
	w := NewWizard()
	assert.False(t, w.Back(), "no previous question at start")

	require.NoError(t, w.Answer(0))
	require.NoError(t, w.Answer(0))
	require.True(t, w.Back())
	assert.Equal(t, 1, w.Current())

	require.NoError(t, w.Answer(2))
	assert.Equal(t, []int{0, 2}, w.Answers())
	assert.Equal(t, 2, w.Current())
}

func TestWizardBackFromComplete(t *testing.T) {
	w, err := Replay([]int{0, 4, 3, 1, 0, 0, 1})
	require.NoError(t, err)
	require.Equal(t, StateCompleteAwaitingSubmit, w.State())

	require.True(t, w.Back())
	assert.Equal(t, StateInProgress, w.State())
	assert.Equal(t, QuestionCount-1, w.Current())

	require.NoError(t, w.Answer(0))
	v, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, VerdictIndeterminate, v)
	assert.Equal(t, []int{0, 4, 3, 1, 0, 0, 0}, w.Answers())

	assert.False(t, w.Back(), "no going back from the result")
}

func TestReplay(t *testing.T) {
	w, err := Replay([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, w.Current())
	assert.Equal(t, []int{0, 1}, w.Answers())

	_, err = Replay([]int{0, 9})
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = Replay([]int{0, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "in_progress", StateInProgress.String())
	assert.Equal(t, "complete", StateCompleteAwaitingSubmit.String())
	assert.Equal(t, "result", StateResultShown.String())
	assert.Equal(t, "State(9)", State(9).String())
}
