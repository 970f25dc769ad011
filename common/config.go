// common/config.go

package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GlobalConfig holds global application settings
type GlobalConfig struct {
	RideFolder  string `json:"RideFolder"`
	LibraryPath string `json:"LibraryPath"`
	LibraryKey  string `json:"LibraryKey,omitempty"`
	Language    string `json:"Language"`
}

type configFile struct {
	Global GlobalConfig `json:"global"`
	// Toggles holds boolean preferences by key; a missing key means the
	// user never touched the toggle.
	Toggles map[string]bool `json:"toggles,omitempty"`
}

// ConfigManager handles application configuration stored as JSON in settings.conf.
// It also serves as a boolean preference store.
type ConfigManager struct {
	configPath string
	config     configFile
	logger     *Logger
	mutex      sync.Mutex
}

// NewConfigManager initializes a new configuration manager.
// A missing or empty file yields the defaults; a malformed file is an error.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	mgr := &ConfigManager{configPath: configPath}
	if err := mgr.loadConfig(); err != nil {
		return nil, err
	}
	return mgr, nil
}

// SetLogger sets the logger used to report save failures from SetBool.
func (mgr *ConfigManager) SetLogger(logger *Logger) {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()
	mgr.logger = logger
}

// Path returns the configuration file path
func (mgr *ConfigManager) Path() string {
	return mgr.configPath
}

// GetGlobalConfig returns a copy of the global configuration
func (mgr *ConfigManager) GetGlobalConfig() GlobalConfig {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()
	return mgr.config.Global
}

// SaveGlobalConfig updates and saves the global configuration
func (mgr *ConfigManager) SaveGlobalConfig(config GlobalConfig) error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()
	mgr.config.Global = config
	return mgr.saveConfig()
}

// BoolWithFallback returns the stored toggle for key, or fallback when unset.
func (mgr *ConfigManager) BoolWithFallback(key string, fallback bool) bool {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	if v, ok := mgr.config.Toggles[key]; ok {
		return v
	}
	return fallback
}

// SetBool stores a toggle and writes the file right away.
func (mgr *ConfigManager) SetBool(key string, value bool) {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	if mgr.config.Toggles == nil {
		mgr.config.Toggles = map[string]bool{}
	}
	mgr.config.Toggles[key] = value
	if err := mgr.saveConfig(); err != nil && mgr.logger != nil {
		mgr.logger.Error("ConfigManager.SetBool: %v", err)
	}
}

// loadConfig loads the configuration from the file
func (mgr *ConfigManager) loadConfig() error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	data, err := os.ReadFile(mgr.configPath)
	if os.IsNotExist(err) {
		CaptureEarlyLog(SeverityInfo, "Configuration file '%s' does not exist yet, using defaults", mgr.configPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("ConfigManager.loadConfig: failed to read %s: %w", mgr.configPath, err)
	}
	if len(data) == 0 {
		return nil
	}

	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("ConfigManager.loadConfig: failed to unmarshal config data from %s: %w", mgr.configPath, err)
	}
	mgr.config = cfg
	return nil
}

// saveConfig writes the configuration; the caller holds the mutex
func (mgr *ConfigManager) saveConfig() error {
	data, err := json.MarshalIndent(mgr.config, "", "  ")
	if err != nil {
		return fmt.Errorf("ConfigManager.saveConfig: failed to marshal config data: %w", err)
	}

	if err := EnsureDirectoryExists(filepath.Dir(mgr.configPath)); err != nil {
		return fmt.Errorf("ConfigManager.saveConfig: %w", err)
	}
	if err := os.WriteFile(mgr.configPath, data, 0644); err != nil {
		return fmt.Errorf("ConfigManager.saveConfig: failed to write config file %s: %w", mgr.configPath, err)
	}
	return nil
}

// CreateConfigFile creates a configuration file with default settings
// rooted next to the configuration file.
func CreateConfigFile(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return fmt.Errorf("CreateConfigFile: failed to ensure directory %s exists: %w", dir, err)
	}

	defaults := configFile{
		Global: GlobalConfig{
			LibraryPath: filepath.Join(dir, FileNameLibrary),
		},
	}
	if home, err := os.UserHomeDir(); err == nil {
		defaults.Global.RideFolder = filepath.Join(home, AppName)
	}

	data, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return fmt.Errorf("CreateConfigFile: failed to marshal default config data: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("CreateConfigFile: failed to write default config file %s: %w", configPath, err)
	}
	return nil
}

// LocateConfigFile returns the configuration file to use: an existing file in the
// working directory, else one in the user config directory (created if needed),
// else a new file in the working directory.
func LocateConfigFile() (string, error) {
	if FileExists(FileNameSettings) {
		return FileNameSettings, nil
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(configDir, AppName, FileNameSettings)
		if FileExists(path) {
			return path, nil
		}
		err := CreateConfigFile(path)
		if err == nil {
			return path, nil
		}
		CaptureEarlyLog(SeverityWarning, "Failed to create config file in %s: %v", path, err)
	}

	if err := CreateConfigFile(FileNameSettings); err != nil {
		return "", fmt.Errorf("failed to create config file in working directory: %w", err)
	}
	return FileNameSettings, nil
}
