// rides/policy.go

package rides

// Preference keys. Both default to true when absent from the store.
const (
	PrefWarnOnConvert = "warnOnConvert"
	PrefWarnOnExit    = "warnOnExit"
)

// Preferences is the boolean part of a settings store.
// fyne.Preferences and common.ConfigManager both satisfy it.
type Preferences interface {
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// WarnOnConvert reads the warn-on-convert preference.
func WarnOnConvert(prefs Preferences) bool {
	return prefs.BoolWithFallback(PrefWarnOnConvert, true)
}

// SetWarnOnConvert stores the warn-on-convert preference.
func SetWarnOnConvert(prefs Preferences, warn bool) {
	prefs.SetBool(PrefWarnOnConvert, warn)
}

// WarnOnExit reads the warn-on-exit preference.
func WarnOnExit(prefs Preferences) bool {
	return prefs.BoolWithFallback(PrefWarnOnExit, true)
}

// SetWarnOnExit stores the warn-on-exit preference.
func SetWarnOnExit(prefs Preferences, warn bool) {
	prefs.SetBool(PrefWarnOnExit, warn)
}

// RequiresConversionPrompt reports whether saving the record needs the user's
// confirmation first: the file is not in native format and the user still
// wants to be warned about conversions.
func RequiresConversionPrompt(record *Record, prefs Preferences) bool {
	return !record.IsNative() && WarnOnConvert(prefs)
}

// MayCloseImmediately reports whether the application can quit without
// looking for unsaved rides.
func MayCloseImmediately(prefs Preferences) bool {
	return !WarnOnExit(prefs)
}
