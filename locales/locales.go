// Package locales holds the embedded translations of the user interface.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

//go:embed en/translations.json
//go:embed cs/translations.json
var translationsFS embed.FS

// DefaultLanguage is used when nothing else was loaded.
const DefaultLanguage = "en"

var (
	mutex        sync.RWMutex
	translations map[string]string
	fallback     map[string]string
	current      string
)

func readTranslations(lang string) (map[string]string, error) {
	data, err := translationsFS.ReadFile(lang + "/translations.json")
	if err != nil {
		return nil, fmt.Errorf("failed to load translation file: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}
	return m, nil
}

// LoadTranslations loads the translation file for the specified language.
func LoadTranslations(lang string) error {
	m, err := readTranslations(lang)
	if err != nil {
		return err
	}
	mutex.Lock()
	defer mutex.Unlock()
	translations = m
	current = lang
	return nil
}

// CurrentLanguage returns the loaded language code, or DefaultLanguage.
func CurrentLanguage() string {
	mutex.RLock()
	defer mutex.RUnlock()
	if current == "" {
		return DefaultLanguage
	}
	return current
}

// Translate returns the translated string for the given key.
// Keys missing from the loaded language come from English; unknown keys are returned unchanged.
func Translate(key string) string {
	mutex.RLock()
	if translation, ok := translations[key]; ok {
		mutex.RUnlock()
		return translation
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()
	if fallback == nil {
		fallback, _ = readTranslations(DefaultLanguage)
	}
	if translation, ok := fallback[key]; ok {
		return translation
	}
	return key
}

// GetAvailableLanguages returns the embedded language codes.
func GetAvailableLanguages() []string {
	var langs []string
	entries, err := translationsFS.ReadDir(".")
	if err != nil {
		return []string{DefaultLanguage}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			langs = append(langs, entry.Name())
		}
	}
	sort.Strings(langs)
	return langs
}
