// Package ui provides the dialogs and windows of the application
package ui

import (
	"fmt"

	"RideKeeper/common"
	"RideKeeper/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Version is set at build time with -ldflags "-X RideKeeper/ui.Version=..."
var Version = "dev"

// ShowAboutWindow shows the application name, version and where its files live.
func ShowAboutWindow(parent fyne.Window, configPath, libraryPath, logPath string) {
	text := fmt.Sprintf(locales.Translate("about.text"), common.AppName, Version, configPath, libraryPath, logPath)
	dialog.ShowInformation(locales.Translate("about.title"), text, parent)
}
