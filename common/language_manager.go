// common/language_manager.go

package common

import (
	"strings"

	"RideKeeper/locales"

	golocale "github.com/jeandeaual/go-locale"
)

// LanguageItem is a selectable language in the settings dialog.
type LanguageItem struct {
	Code string
	Name string
}

// systemLanguage is replaced in tests.
var systemLanguage = func() string {
	lang, err := golocale.GetLanguage()
	if err != nil {
		return ""
	}
	return strings.ToLower(lang)
}

// DetectAndSetLanguage loads the configured language, else the system language,
// else English, and stores the choice in the configuration.
func DetectAndSetLanguage(configMgr *ConfigManager, logger *Logger) string {
	globalConfig := configMgr.GetGlobalConfig()
	supported := locales.GetAvailableLanguages()

	pick := func(lang string) (string, bool) {
		for _, code := range supported {
			if strings.EqualFold(lang, code) {
				return code, true
			}
		}
		return "", false
	}

	if lang, ok := pick(globalConfig.Language); ok {
		err := locales.LoadTranslations(lang)
		if err == nil {
			logger.Info("Loaded configured language: %s", lang)
			return lang
		}
		logger.Error("Failed to load translations for %s: %v", lang, err)
	}

	lang, ok := pick(systemLanguage())
	if !ok {
		lang = locales.DefaultLanguage
	}
	if err := locales.LoadTranslations(lang); err != nil {
		logger.Error("Failed to load translations for %s: %v", lang, err)
	}
	logger.Info("Using language: %s", lang)

	globalConfig.Language = lang
	if err := configMgr.SaveGlobalConfig(globalConfig); err != nil {
		logger.Error("Failed to save language config: %v", err)
	}
	return lang
}

// GetAvailableLanguages returns the languages with their display names
func GetAvailableLanguages() []LanguageItem {
	var items []LanguageItem
	for _, code := range locales.GetAvailableLanguages() {
		name := locales.Translate("settings.lang." + code)
		if strings.HasPrefix(name, "settings.lang.") {
			name = code
		}
		items = append(items, LanguageItem{Code: code, Name: name})
	}
	return items
}
