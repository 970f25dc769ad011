package rides

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmExitWarnOffClosesImmediately(t *testing.T) {
	dir := t.TempDir()
	collection := NewCollection(dirtyRecord(t, dir, "a.gc"))
	prompter := &fakePrompter{}
	workflow := NewExitWorkflow(NewSaver(memPrefs{PrefWarnOnExit: false}, prompter, &fakeWriter{}))

	result, err := workflow.ConfirmExit(collection)

	require.NoError(t, err)
	assert.Equal(t, ProceedClose, result)
	assert.Equal(t, StateImmediateClose, workflow.State())
	assert.Empty(t, prompter.exitCalls)
	assert.True(t, collection.At(0).IsDirty())
}

func TestConfirmExitNothingDirty(t *testing.T) {
	collection := NewCollection(NewRecord("", "/rides", "a.gc", nil))
	prompter := &fakePrompter{}
	workflow := NewExitWorkflow(NewSaver(memPrefs{PrefWarnOnExit: true}, prompter, &fakeWriter{}))

	result, err := workflow.ConfirmExit(collection)

	require.NoError(t, err)
	assert.Equal(t, ProceedClose, result)
	assert.Empty(t, prompter.exitCalls)
}

func TestConfirmExitSaveSelected(t *testing.T) {
	dir := t.TempDir()
	a := dirtyRecord(t, dir, "a.gc")
	clean := NewRecord("", dir, "clean.gc", nil)
	b := dirtyRecord(t, dir, "b.csv")
	c := dirtyRecord(t, dir, "c.csv")
	collection := NewCollection(a, clean, b, c)
	prompter := &fakePrompter{
		exit:       ExitDecision{Action: ExitSave, Selected: []bool{true, false, true}},
		conversion: []ConversionChoice{ChoiceSaveAndConvert},
	}
	writer := &fakeWriter{}
	workflow := NewExitWorkflow(NewSaver(memPrefs{}, prompter, writer))

	result, err := workflow.ConfirmExit(collection)

	require.NoError(t, err)
	assert.Equal(t, ProceedClose, result)
	assert.Equal(t, StateClosed, workflow.State())
	require.Len(t, prompter.exitCalls, 1)
	assert.Equal(t, []string{"a.gc", "b.csv", "c.csv"}, prompter.exitCalls[0])
	assert.Equal(t, []string{"c.csv"}, prompter.conversionCalls)
	assert.Equal(t, []string{filepath.Join(dir, "a.gc"), filepath.Join(dir, "c.gc")}, writer.paths)
	assert.False(t, a.IsDirty())
	assert.True(t, b.IsDirty())
	assert.False(t, c.IsDirty())
	assert.Equal(t, "c.gc", c.FileName())
}

func TestConfirmExitCancelInRowPromptStops(t *testing.T) {
	dir := t.TempDir()
	a := dirtyRecord(t, dir, "a.csv")
	b := dirtyRecord(t, dir, "b.gc")
	prompter := &fakePrompter{
		exit:       ExitDecision{Action: ExitSave, Selected: []bool{true, true}},
		conversion: []ConversionChoice{ChoiceCancel},
	}
	writer := &fakeWriter{}
	workflow := NewExitWorkflow(NewSaver(memPrefs{}, prompter, writer))

	result, err := workflow.ConfirmExit(NewCollection(a, b))

	require.NoError(t, err)
	assert.Equal(t, CancelClose, result)
	assert.Equal(t, StateCancelled, workflow.State())
	assert.True(t, a.IsDirty())
	assert.True(t, b.IsDirty())
	assert.Empty(t, writer.paths)
}

func TestConfirmExitSaveFailureKeepsAppOpen(t *testing.T) {
	dir := t.TempDir()
	a := dirtyRecord(t, dir, "a.gc")
	boom := errors.New("read-only file system")
	prompter := &fakePrompter{exit: ExitDecision{Action: ExitSave, Selected: []bool{true}}}
	workflow := NewExitWorkflow(NewSaver(memPrefs{}, prompter, &fakeWriter{err: boom}))

	result, err := workflow.ConfirmExit(NewCollection(a))

	require.ErrorIs(t, err, boom)
	assert.Equal(t, CancelClose, result)
	assert.True(t, a.IsDirty())
}

func TestConfirmExitDiscard(t *testing.T) {
	dir := t.TempDir()
	a := dirtyRecord(t, dir, "a.gc")
	b := dirtyRecord(t, dir, "b.csv")
	prompter := &fakePrompter{exit: ExitDecision{Action: ExitDiscard, Selected: []bool{true, false}}}
	writer := &fakeWriter{}
	workflow := NewExitWorkflow(NewSaver(memPrefs{}, prompter, writer))

	result, err := workflow.ConfirmExit(NewCollection(a, b))

	require.NoError(t, err)
	assert.Equal(t, ProceedClose, result)
	assert.Equal(t, StateDiscardClosed, workflow.State())
	assert.False(t, a.IsDirty())
	assert.False(t, b.IsDirty())
	assert.Empty(t, writer.paths)
}

func TestConfirmExitCancel(t *testing.T) {
	dir := t.TempDir()
	a := dirtyRecord(t, dir, "a.csv")
	prefs := memPrefs{}
	prompter := &fakePrompter{exit: ExitDecision{Action: ExitCancel}, toggleExit: boolPtr(false)}
	writer := &fakeWriter{}
	workflow := NewExitWorkflow(NewSaver(prefs, prompter, writer))

	result, err := workflow.ConfirmExit(NewCollection(a))

	require.NoError(t, err)
	assert.Equal(t, CancelClose, result)
	assert.True(t, a.IsDirty())
	assert.Empty(t, writer.paths)
	// the checkbox toggle is stored even though the exit was cancelled
	assert.True(t, MayCloseImmediately(prefs))
}

func TestExitStateString(t *testing.T) {
	assert.Equal(t, "discard-closed", StateDiscardClosed.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "unknown", ExitState(42).String())
	assert.Equal(t, "unknown", ExitState(-1).String())
}
