package common

import (
	"path/filepath"
	"testing"

	"RideKeeper/locales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLanguageTest(t *testing.T, system string) (*ConfigManager, *Logger) {
	t.Helper()
	dir := t.TempDir()
	mgr, err := NewConfigManager(filepath.Join(dir, FileNameSettings))
	require.NoError(t, err)
	logger, err := NewLogger(filepath.Join(dir, FileNameLog), 1, 1)
	require.NoError(t, err)

	orig := systemLanguage
	systemLanguage = func() string { return system }
	t.Cleanup(func() {
		systemLanguage = orig
		logger.Close()
		locales.LoadTranslations(locales.DefaultLanguage)
	})
	return mgr, logger
}

func TestDetectAndSetLanguageFromSystem(t *testing.T) {
	mgr, logger := newLanguageTest(t, "cs")

	assert.Equal(t, "cs", DetectAndSetLanguage(mgr, logger))
	assert.Equal(t, "cs", mgr.GetGlobalConfig().Language)
	assert.Equal(t, "Uložit a ukončit", locales.Translate("savedialog.button.saveexit"))
}

func TestDetectAndSetLanguageUnsupportedSystem(t *testing.T) {
	mgr, logger := newLanguageTest(t, "xx")

	assert.Equal(t, locales.DefaultLanguage, DetectAndSetLanguage(mgr, logger))
	assert.Equal(t, "Save and Exit", locales.Translate("savedialog.button.saveexit"))
}

func TestDetectAndSetLanguagePrefersConfig(t *testing.T) {
	mgr, logger := newLanguageTest(t, "cs")
	cfg := mgr.GetGlobalConfig()
	cfg.Language = "EN"
	require.NoError(t, mgr.SaveGlobalConfig(cfg))

	assert.Equal(t, "en", DetectAndSetLanguage(mgr, logger))
}

func TestGetAvailableLanguages(t *testing.T) {
	items := GetAvailableLanguages()
	assert.Equal(t, []LanguageItem{{Code: "cs", Name: "Čeština"}, {Code: "en", Name: "English"}}, items)
}
