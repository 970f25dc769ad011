// common/logger.go

// Package common implements shared functionality used across the RideKeeper application.
// This file contains logging functionality.

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Severity represents the severity level of a message or error.
// It is used consistently across logging and error handling.
type Severity string

const (
	// SeverityInfo represents informational messages
	SeverityInfo Severity = "INFO"

	// SeverityWarning represents problems the application works around
	SeverityWarning Severity = "WARNING"

	// SeverityError represents failures of a single operation
	SeverityError Severity = "ERROR"

	// SeverityCritical represents failures that stop part of the application from working
	SeverityCritical Severity = "CRITICAL"
)

// earlyLogBuffer stores log messages before logger is initialized
var earlyLogBuffer []string
var earlyLogMutex sync.Mutex

// CaptureEarlyLog captures a log message before the logger is initialized
func CaptureEarlyLog(level Severity, format string, args ...interface{}) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	earlyLogBuffer = append(earlyLogBuffer, fmt.Sprintf("%s [%s] %s", timestamp, level, fmt.Sprintf(format, args...)))
}

// FlushEarlyLogs writes all captured early logs to the logger, keeping their original timestamps
func FlushEarlyLogs(logger *Logger) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	if logger == nil || len(earlyLogBuffer) == 0 {
		return
	}

	logger.Info("--- Flushing %d early log messages ---", len(earlyLogBuffer))
	for _, message := range earlyLogBuffer {
		logger.writeLine(message + "\n")
	}
	earlyLogBuffer = nil
	logger.Info("--- End of early logs ---")
}

// Logger writes timestamped lines to a log file and rotates it by size and age.
type Logger struct {
	logPath     string
	logFile     *os.File
	mutex       sync.Mutex
	maxSizeMB   int
	maxAgeDays  int
	currentSize int64
}

// NewLogger creates a new logger instance
func NewLogger(logPath string, maxSizeMB int, maxAgeDays int) (*Logger, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxAgeDays <= 0 {
		maxAgeDays = 7
	}
	logger := &Logger{
		logPath:    logPath,
		maxSizeMB:  maxSizeMB,
		maxAgeDays: maxAgeDays,
	}
	rootLogPath := filepath.Join(".", filepath.Base(logPath))

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		logger.logPath = rootLogPath
		CaptureEarlyLog(SeverityWarning, "Failed to create log directory at '%s': %v", filepath.Dir(logPath), err)
		CaptureEarlyLog(SeverityWarning, "Attempting fallback to root directory: %s", rootLogPath)
	}

	if err := logger.checkRotation(); err != nil {
		CaptureEarlyLog(SeverityWarning, "Failed to check log rotation: %v", err)
	}

	if logger.logFile != nil {
		logger.logFile.Close()
	}
	file, err := os.OpenFile(logger.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		if logger.logPath == rootLogPath {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		CaptureEarlyLog(SeverityWarning, "Failed to open log file at '%s': %v", logger.logPath, err)
		logger.logPath = rootLogPath
		file, err = os.OpenFile(rootLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file at primary and fallback locations: %w", err)
		}
	}

	logger.logFile = file
	if info, err := file.Stat(); err == nil {
		logger.currentSize = info.Size()
	}
	return logger, nil
}

// Path returns the file the logger currently writes to.
func (l *Logger) Path() string {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.logPath
}

// Log writes a message to the log file
func (l *Logger) Log(level Severity, format string, args ...interface{}) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return l.writeLine(fmt.Sprintf("%s [%s] %s\n", timestamp, level, fmt.Sprintf(format, args...)))
}

func (l *Logger) writeLine(message string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.logFile == nil {
		return nil
	}
	if l.currentSize >= int64(l.maxSizeMB)*1024*1024 {
		if err := l.rotate(); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	n, err := l.logFile.WriteString(message)
	if err != nil {
		return fmt.Errorf("failed to write to log file: %w", err)
	}
	l.currentSize += int64(n)
	return nil
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(SeverityInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(SeverityWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(SeverityError, format, args...)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// checkRotation rotates an existing log that is too old or too large
func (l *Logger) checkRotation() error {
	info, err := os.Stat(l.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	if time.Since(info.ModTime()) >= time.Duration(l.maxAgeDays)*24*time.Hour {
		return l.rotate()
	}
	if info.Size() >= int64(l.maxSizeMB)*1024*1024 {
		return l.rotate()
	}
	return nil
}

// rotate renames the current log to <name>_<timestamp><ext> and starts a new one
func (l *Logger) rotate() error {
	if l.logFile != nil {
		l.logFile.Close()
	}

	dir := filepath.Dir(l.logPath)
	ext := filepath.Ext(l.logPath)
	name := strings.TrimSuffix(filepath.Base(l.logPath), ext)
	timestamp := time.Now().Format("2006-01-02@15_04_05")
	rotatedPath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))

	if err := os.Rename(l.logPath, rotatedPath); err != nil {
		return fmt.Errorf("failed to rename log file: %w", err)
	}

	file, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create new log file: %w", err)
	}
	l.logFile = file
	l.currentSize = 0

	l.cleanOldLogs()
	return nil
}

// cleanOldLogs removes rotated log files older than 1 year
func (l *Logger) cleanOldLogs() {
	dir := filepath.Dir(l.logPath)
	ext := filepath.Ext(l.logPath)
	name := strings.TrimSuffix(filepath.Base(l.logPath), ext)

	files, err := filepath.Glob(filepath.Join(dir, fmt.Sprintf("%s_*%s", name, ext)))
	if err != nil {
		return
	}

	oneYearAgo := time.Now().AddDate(-1, 0, 0)
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().Before(oneYearAgo) {
			os.Remove(file)
		}
	}
}
