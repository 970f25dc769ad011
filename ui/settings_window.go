package ui

import (
	"errors"
	"fmt"

	"RideKeeper/common"
	"RideKeeper/locales"
	"RideKeeper/rides"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// ShowSettingsWindow creates and displays the settings dialog.
// The warning toggles are stored as soon as they change, the other fields on Save.
func ShowSettingsWindow(parent fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler) {
	config := configMgr.GetGlobalConfig()

	rideFolderEntry := widget.NewEntry()
	rideFolderEntry.SetText(config.RideFolder)
	rideFolderField := common.CreateFolderSelectionField(locales.Translate("settings.browse.ridefolder"), rideFolderEntry, nil)

	libraryEntry := widget.NewEntry()
	libraryEntry.SetText(config.LibraryPath)

	langItems := common.GetAvailableLanguages()
	langOptions := make([]string, len(langItems))
	for i, lang := range langItems {
		langOptions[i] = lang.Name
	}
	languageSelect := widget.NewSelect(langOptions, nil)
	for _, lang := range langItems {
		if lang.Code == config.Language {
			languageSelect.SetSelected(lang.Name)
			break
		}
	}

	warnConvert := common.CreateCheckbox(locales.Translate("savedialog.check.warnconvert"), rides.WarnOnConvert(configMgr), func(checked bool) {
		rides.SetWarnOnConvert(configMgr, checked)
	})
	warnExit := common.CreateCheckbox(locales.Translate("savedialog.check.warnexit"), rides.WarnOnExit(configMgr), func(checked bool) {
		rides.SetWarnOnExit(configMgr, checked)
	})

	var settingsDialog dialog.Dialog
	saveButton := common.CreateSubmitButton(locales.Translate("settings.write.settings"), func() {
		config.RideFolder = common.NormalizePath(rideFolderEntry.Text)
		config.LibraryPath = common.NormalizePath(libraryEntry.Text)
		for _, lang := range langItems {
			if lang.Name == languageSelect.Selected {
				config.Language = lang.Code
				break
			}
		}

		if config.LibraryPath == "" {
			ctx := common.NewErrorContext("Settings", common.OperationSaveSettings)
			ctx.Error = errors.New(locales.Translate("settings.err.nolibrary"))
			ctx.Severity = common.SeverityWarning
			errorHandler.ShowErrorWithContext(ctx)
			return
		}

		if err := configMgr.SaveGlobalConfig(config); err != nil {
			ctx := common.NewErrorContext("Settings", common.OperationSaveSettings)
			ctx.Error = fmt.Errorf("%s: %w", locales.Translate("settings.err.save"), err)
			errorHandler.ShowErrorWithContext(ctx)
			return
		}
		settingsDialog.Hide()
	})

	closeButton := widget.NewButton(locales.Translate("common.button.close"), func() {
		settingsDialog.Hide()
	})

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(locales.Translate("settings.ridefolder"), rideFolderField),
			widget.NewFormItem(locales.Translate("settings.library"), libraryEntry),
			widget.NewFormItem(locales.Translate("settings.lang.sel"), languageSelect),
		),
		widget.NewSeparator(),
		warnConvert,
		warnExit,
		widget.NewLabel(locales.Translate("settings.restartnote")),
		container.NewHBox(layout.NewSpacer(), saveButton, closeButton),
	)

	settingsDialog = dialog.NewCustomWithoutButtons(locales.Translate("settings.win.title"), form, parent)
	settingsDialog.Resize(fyne.NewSize(700, 380))
	settingsDialog.Show()
}
