// common/files_helpers.go

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath provides normalized path
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(path))
}

// FileExists checks if a file exists
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists ensures the specified directory exists
func EnsureDirectoryExists(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("failed to check existence of directory '%s': %w", path, err)
}

// ListFilesWithExtensions returns the files directly inside dirPath whose names
// end with one of the extensions (compared case-insensitively, without dot)
func ListFilesWithExtensions(dirPath string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("error listing files in directory '%s': %w", dirPath, err)
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		for _, ext := range extensions {
			if strings.HasSuffix(name, "."+strings.ToLower(ext)) {
				result = append(result, filepath.Join(dirPath, entry.Name()))
				break
			}
		}
	}
	return result, nil
}

// JoinPaths joins path elements into a single path
func JoinPaths(elements ...string) string {
	return filepath.Join(elements...)
}

// DataDir returns the per-user application directory, creating it when missing.
// It falls back to the working directory when no user config directory exists.
func DataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(configDir, AppName)
	if err := EnsureDirectoryExists(dir); err != nil {
		CaptureEarlyLog(SeverityWarning, "Failed to create application directory %s: %v", dir, err)
		return "."
	}
	return dir
}
