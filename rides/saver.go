// rides/saver.go

package rides

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ErrBackupFailed is returned when the converted ride was written but the
// original file could not be moved aside.
var ErrBackupFailed = errors.New("failed to back up original ride file")

// maxNameAttempts bounds the search for a free target or backup name.
const maxNameAttempts = 1000

// Outcome is the result of SaveSingle.
type Outcome int

const (
	// OutcomeSaved means the ride was written.
	OutcomeSaved Outcome = iota
	// OutcomeSkipped means there was nothing to save.
	OutcomeSkipped
	// OutcomeDiscarded means the user dropped the changes.
	OutcomeDiscarded
	// OutcomeCancelled means the user backed out; the record is still dirty.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Logger is the logging surface the workflows need. *common.Logger satisfies it.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}

// Index is told when a conversion moves a ride to a new file name.
type Index interface {
	RenameRide(id, dir, fileName string) error
}

// Saver runs the single-record save workflow.
type Saver struct {
	prefs    Preferences
	prompter Prompter
	writer   Writer
	index    Index
	logger   Logger
	rename   func(oldpath, newpath string) error
}

// NewSaver creates a saver. A nil writer means NativeWriter.
func NewSaver(prefs Preferences, prompter Prompter, writer Writer) *Saver {
	if writer == nil {
		writer = NativeWriter{}
	}
	return &Saver{
		prefs:    prefs,
		prompter: prompter,
		writer:   writer,
		logger:   nopLogger{},
		rename:   os.Rename,
	}
}

// SetIndex attaches the library index updated after conversions.
func (s *Saver) SetIndex(index Index) {
	s.index = index
}

// SetLogger sets the logger. A nil logger disables logging.
func (s *Saver) SetLogger(logger Logger) {
	if logger == nil {
		logger = nopLogger{}
	}
	s.logger = logger
}

// SaveSingle saves one record, asking the user first when the save would
// convert the file and the user wants to be warned about that.
// When the save fails the record stays dirty and the outcome is OutcomeCancelled.
func (s *Saver) SaveSingle(record *Record) (Outcome, error) {
	if !record.IsDirty() {
		return OutcomeSkipped, nil
	}

	if !RequiresConversionPrompt(record, s.prefs) {
		if err := s.SaveSilent(record); err != nil {
			return OutcomeCancelled, err
		}
		return OutcomeSaved, nil
	}

	choice := s.prompter.PromptConversion(ConversionPrompt{
		FileName: record.FileName(),
		OnWarnToggled: func(warn bool) {
			SetWarnOnConvert(s.prefs, warn)
			s.logger.Info("Warn on convert set to %t", warn)
		},
	})
	s.logger.Info("Conversion prompt for %s answered: %s", record.FileName(), choice)

	switch choice {
	case ChoiceSaveAndConvert:
		if err := s.SaveSilent(record); err != nil {
			return OutcomeCancelled, err
		}
		return OutcomeSaved, nil
	case ChoiceDiscard:
		record.SetDirty(false)
		return OutcomeDiscarded, nil
	default:
		return OutcomeCancelled, nil
	}
}

// SaveSilent writes the record in native format without asking.
// A non-native file is written under its base name with the native suffix and
// the original is renamed to <name>.sav. Neither step replaces an existing file:
// a taken name gets a numbered variant ("ride-1.gc", "ride.csv.sav.1").
// The record is only marked clean when every step succeeded and it was not
// edited while the write was running.
func (s *Saver) SaveSilent(record *Record) error {
	ride, revision := record.Snapshot()
	source := record.Path()
	dir := record.Dir()
	fileName := record.FileName()
	convert := !record.IsNative()

	target := source
	if convert {
		base := baseName(fileName)
		var err error
		target, err = uniquePath(func(n int) string {
			if n == 0 {
				return filepath.Join(dir, base+"."+NativeFormat)
			}
			return filepath.Join(dir, base+"-"+strconv.Itoa(n)+"."+NativeFormat)
		})
		if err != nil {
			return fmt.Errorf("saving %s: %w", fileName, err)
		}
	}
	targetName := filepath.Base(target)

	if err := s.writer.WriteRide(ride, target); err != nil {
		s.logger.Error("Failed to write ride %s: %v", target, err)
		return fmt.Errorf("saving %s: %w", fileName, err)
	}

	if convert {
		backup, err := uniquePath(func(n int) string {
			if n == 0 {
				return source + BackupSuffix
			}
			return source + BackupSuffix + "." + strconv.Itoa(n)
		})
		if err == nil {
			err = s.rename(source, backup)
		}
		if err != nil {
			s.logger.Error("Wrote %s but could not move %s aside: %v", target, source, err)
			return fmt.Errorf("%w: %s: %w", ErrBackupFailed, source, err)
		}
		record.SetFileName(dir, targetName)
		s.logger.Info("Converted %s to %s (original kept as %s)", source, target, backup)

		if s.index != nil {
			if err := s.index.RenameRide(record.ID(), dir, targetName); err != nil {
				s.logger.Warning("Library index not updated for %s: %v", target, err)
			}
		}
	} else {
		s.logger.Info("Saved %s", target)
	}

	if !record.MarkSaved(revision) {
		s.logger.Info("%s was edited while saving, keeping it marked as unsaved", targetName)
	}
	return nil
}

// uniquePath returns the first of name(0), name(1), ... that does not exist.
func uniquePath(name func(n int) string) (string, error) {
	for n := 0; n < maxNameAttempts; n++ {
		path := name(n)
		_, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free file name after %s", name(maxNameAttempts-1))
}
