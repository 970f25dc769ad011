package rides

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiresConversionPrompt(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		warn     bool
		want     bool
	}{
		{"native lower case", "2009_08_29.gc", true, false},
		{"native upper case", "2009_08_29.GC", true, false},
		{"native warn off", "2009_08_29.gc", false, false},
		{"csv warn on", "ride.csv", true, true},
		{"csv warn off", "ride.csv", false, false},
		{"double suffix", "ride.gc.gz", true, true},
		{"no suffix", "ride", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := memPrefs{PrefWarnOnConvert: tt.warn}
			rec := NewRecord("", "/rides", tt.fileName, nil)
			assert.Equal(t, tt.want, RequiresConversionPrompt(rec, prefs))
		})
	}
}

func TestPreferencesDefaultToTrue(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	assert.True(t, WarnOnConvert(prefs))
	assert.True(t, WarnOnExit(prefs))
	assert.False(t, MayCloseImmediately(prefs))

	SetWarnOnExit(prefs, false)
	assert.True(t, MayCloseImmediately(prefs))
	assert.True(t, WarnOnConvert(prefs))
}

func TestSaveSingleCleanRecordIsSkipped(t *testing.T) {
	dir := t.TempDir()
	rec := NewRecord("", dir, "ride.csv", nil)
	prompter := &fakePrompter{}
	writer := &fakeWriter{}

	outcome, err := NewSaver(memPrefs{}, prompter, writer).SaveSingle(rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, prompter.conversionCalls)
	assert.Empty(t, writer.paths)
}

func TestSaveSingleNativeSavesWithoutPrompt(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.gc")
	prompter := &fakePrompter{}
	writer := &fakeWriter{}

	outcome, err := NewSaver(memPrefs{}, prompter, writer).SaveSingle(rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.Empty(t, prompter.conversionCalls)
	assert.Equal(t, []string{filepath.Join(dir, "ride.gc")}, writer.paths)
	assert.False(t, rec.IsDirty())
	assert.NoFileExists(t, filepath.Join(dir, "ride.gc"+BackupSuffix))
}

func TestSaveSingleWarnOffConvertsSilently(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.csv")
	prompter := &fakePrompter{}
	writer := &fakeWriter{}
	index := &fakeIndex{}
	saver := NewSaver(memPrefs{PrefWarnOnConvert: false}, prompter, writer)
	saver.SetIndex(index)

	outcome, err := saver.SaveSingle(rec)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.Empty(t, prompter.conversionCalls)
	assert.False(t, rec.IsDirty())
	assert.Equal(t, "ride.gc", rec.FileName())
	assert.FileExists(t, filepath.Join(dir, "ride.gc"))
	assert.FileExists(t, filepath.Join(dir, "ride.csv"+BackupSuffix))
	assert.NoFileExists(t, filepath.Join(dir, "ride.csv"))
	assert.Equal(t, filepath.Join(dir, "ride.gc"), index.renamed[rec.ID()])
}

func TestSaveSingleConversionPrompt(t *testing.T) {
	t.Run("save and convert", func(t *testing.T) {
		dir := t.TempDir()
		rec := dirtyRecord(t, dir, "ride.csv")
		prompter := &fakePrompter{conversion: []ConversionChoice{ChoiceSaveAndConvert}}
		writer := &fakeWriter{}

		outcome, err := NewSaver(memPrefs{}, prompter, writer).SaveSingle(rec)

		require.NoError(t, err)
		assert.Equal(t, OutcomeSaved, outcome)
		assert.Equal(t, []string{"ride.csv"}, prompter.conversionCalls)
		assert.Equal(t, "ride.gc", rec.FileName())
		assert.False(t, rec.IsDirty())
	})

	t.Run("discard", func(t *testing.T) {
		dir := t.TempDir()
		rec := dirtyRecord(t, dir, "ride.csv")
		prompter := &fakePrompter{conversion: []ConversionChoice{ChoiceDiscard}}
		writer := &fakeWriter{}

		outcome, err := NewSaver(memPrefs{}, prompter, writer).SaveSingle(rec)

		require.NoError(t, err)
		assert.Equal(t, OutcomeDiscarded, outcome)
		assert.False(t, rec.IsDirty())
		assert.Empty(t, writer.paths)
		assert.Equal(t, "ride.csv", rec.FileName())
		assert.FileExists(t, filepath.Join(dir, "ride.csv"))
	})

	t.Run("cancel", func(t *testing.T) {
		dir := t.TempDir()
		rec := dirtyRecord(t, dir, "ride.csv")
		prompter := &fakePrompter{conversion: []ConversionChoice{ChoiceCancel}}
		writer := &fakeWriter{}

		outcome, err := NewSaver(memPrefs{}, prompter, writer).SaveSingle(rec)

		require.NoError(t, err)
		assert.Equal(t, OutcomeCancelled, outcome)
		assert.True(t, rec.IsDirty())
		assert.Empty(t, writer.paths)
		assert.FileExists(t, filepath.Join(dir, "ride.csv"))
		assert.NoFileExists(t, filepath.Join(dir, "ride.csv"+BackupSuffix))
	})
}

func TestSaveSingleToggleSurvivesCancel(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.csv")
	prefs := memPrefs{}
	prompter := &fakePrompter{conversion: []ConversionChoice{ChoiceCancel}, toggleConvert: boolPtr(false)}

	_, err := NewSaver(prefs, prompter, &fakeWriter{}).SaveSingle(rec)

	require.NoError(t, err)
	assert.False(t, WarnOnConvert(prefs))
	assert.True(t, RequiresConversionPrompt(rec, memPrefs{}))
	assert.False(t, RequiresConversionPrompt(rec, prefs))
}

func TestSaveSilentWriterFailure(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.csv")
	boom := errors.New("disk full")

	err := NewSaver(memPrefs{}, &fakePrompter{}, &fakeWriter{err: boom}).SaveSilent(rec)

	require.ErrorIs(t, err, boom)
	assert.True(t, rec.IsDirty())
	assert.Equal(t, "ride.csv", rec.FileName())
	assert.NoFileExists(t, filepath.Join(dir, "ride.csv"+BackupSuffix))
}

func TestSaveSilentBackupFailure(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.csv")
	saver := NewSaver(memPrefs{}, &fakePrompter{}, &fakeWriter{})
	saver.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrPermission}
	}

	err := saver.SaveSilent(rec)

	require.ErrorIs(t, err, ErrBackupFailed)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.True(t, rec.IsDirty())
	assert.Equal(t, "ride.csv", rec.FileName())
	assert.FileExists(t, filepath.Join(dir, "ride.csv"))
	assert.FileExists(t, filepath.Join(dir, "ride.gc"))
}

func TestSaveSilentKeepsEarlierBackup(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.csv")
	earlier := filepath.Join(dir, "ride.csv"+BackupSuffix)
	require.NoError(t, os.WriteFile(earlier, []byte("earlier backup"), 0644))

	require.NoError(t, NewSaver(memPrefs{}, &fakePrompter{}, &fakeWriter{}).SaveSilent(rec))

	data, err := os.ReadFile(earlier)
	require.NoError(t, err)
	assert.Equal(t, "earlier backup", string(data))
	data, err = os.ReadFile(earlier + ".1")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.False(t, rec.IsDirty())
}

func TestSaveSilentDoesNotOverwriteOtherRide(t *testing.T) {
	dir := t.TempDir()
	other := NewRecord("", dir, "ride.gc", nil)
	otherPath := filepath.Join(dir, "ride.gc")
	require.NoError(t, os.WriteFile(otherPath, []byte("other ride"), 0644))
	rec := dirtyRecord(t, dir, "ride.csv")
	index := &fakeIndex{}
	saver := NewSaver(memPrefs{}, &fakePrompter{}, &fakeWriter{})
	saver.SetIndex(index)

	require.NoError(t, saver.SaveSilent(rec))

	data, err := os.ReadFile(otherPath)
	require.NoError(t, err)
	assert.Equal(t, "other ride", string(data))
	assert.Equal(t, "ride-1.gc", rec.FileName())
	assert.NotEqual(t, other.Path(), rec.Path())
	assert.FileExists(t, filepath.Join(dir, "ride-1.gc"))
	assert.Equal(t, filepath.Join(dir, "ride-1.gc"), index.renamed[rec.ID()])
	assert.False(t, rec.IsDirty())
}

func TestSaveSilentEditDuringWriteStaysDirty(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "ride.gc")
	writer := &fakeWriter{during: func() { rec.SetNotes("typed during save") }}

	require.NoError(t, NewSaver(memPrefs{}, &fakePrompter{}, writer).SaveSilent(rec))

	assert.Equal(t, []string{"edited"}, writer.notes, "the write uses the state at save time")
	assert.Equal(t, "typed during save", rec.Ride().Notes)
	assert.True(t, rec.IsDirty(), "the later edit is still unsaved")

	writer.during = nil
	require.NoError(t, NewSaver(memPrefs{}, &fakePrompter{}, writer).SaveSilent(rec))
	assert.Equal(t, []string{"edited", "typed during save"}, writer.notes)
	assert.False(t, rec.IsDirty())
}

func TestSaveSilentWithNativeWriter(t *testing.T) {
	dir := t.TempDir()
	rec := dirtyRecord(t, dir, "morning.csv")

	require.NoError(t, NewSaver(memPrefs{}, &fakePrompter{}, nil).SaveSilent(rec))

	reopened, err := Open("", filepath.Join(dir, "morning.gc"))
	require.NoError(t, err)
	assert.Equal(t, "edited", reopened.Ride().Notes)
	original, err := os.ReadFile(filepath.Join(dir, "morning.csv"+BackupSuffix))
	require.NoError(t, err)
	assert.Equal(t, "original", string(original))
}
