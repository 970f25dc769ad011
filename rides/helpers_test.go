package rides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type memPrefs map[string]bool

func (p memPrefs) BoolWithFallback(key string, fallback bool) bool {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

func (p memPrefs) SetBool(key string, value bool) {
	p[key] = value
}

type fakePrompter struct {
	conversion      []ConversionChoice
	conversionCalls []string
	toggleConvert   *bool

	exit       ExitDecision
	exitCalls  [][]string
	toggleExit *bool
}

func (p *fakePrompter) PromptConversion(prompt ConversionPrompt) ConversionChoice {
	p.conversionCalls = append(p.conversionCalls, prompt.FileName)
	if p.toggleConvert != nil {
		prompt.OnWarnToggled(*p.toggleConvert)
	}
	if len(p.conversion) == 0 {
		return ChoiceSaveAndConvert
	}
	choice := p.conversion[0]
	p.conversion = p.conversion[1:]
	return choice
}

func (p *fakePrompter) PromptExit(prompt ExitPrompt) ExitDecision {
	p.exitCalls = append(p.exitCalls, prompt.FileNames)
	if p.toggleExit != nil {
		prompt.OnWarnToggled(*p.toggleExit)
	}
	return p.exit
}

type fakeWriter struct {
	paths  []string
	notes  []string
	err    error
	during func()
}

func (w *fakeWriter) WriteRide(ride *Ride, path string) error {
	if w.during != nil {
		w.during()
	}
	if w.err != nil {
		return w.err
	}
	w.paths = append(w.paths, path)
	w.notes = append(w.notes, ride.Notes)
	return os.WriteFile(path, []byte("<ride/>"), 0644)
}

type fakeIndex struct {
	renamed map[string]string
}

func (i *fakeIndex) RenameRide(id, dir, fileName string) error {
	if i.renamed == nil {
		i.renamed = map[string]string{}
	}
	i.renamed[id] = filepath.Join(dir, fileName)
	return nil
}

// dirtyRecord creates a file named name in dir and returns a dirty record for it.
func dirtyRecord(t *testing.T, dir, name string) *Record {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("original"), 0644))
	rec := NewRecord("", dir, name, &Ride{Notes: "edited"})
	rec.SetDirty(true)
	return rec
}

func boolPtr(b bool) *bool {
	return &b
}
