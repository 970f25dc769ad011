// common/ui_helpers.go

package common

import (
	"fmt"
	"os"
	"strings"

	"RideKeeper/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	nativedialog "github.com/sqweek/dialog"
)

// CreateNativeFileOpenButton creates a button that picks a ride file with the native OS dialog.
// Native dialogs are used instead of Fyne's file dialog to get the platform file picker.
func CreateNativeFileOpenButton(title, buttonText string, startDir string, changeHandler func(string)) *widget.Button {
	return widget.NewButtonWithIcon(buttonText, theme.FolderOpenIcon(), func() {
		builder := nativedialog.File().
			Title(title).
			Filter(locales.Translate("common.filter.rides"), ExtensionNative, ExtensionCSV)
		if startDir != "" && DirectoryExists(startDir) {
			builder = builder.SetStartDir(startDir)
		}
		filename, err := builder.Load()
		if err == nil && filename != "" && changeHandler != nil {
			changeHandler(filename)
		}
	})
}

// CreateNativeFolderBrowseButton creates a folder browse button using the native OS dialog
func CreateNativeFolderBrowseButton(title string, buttonText string, changeHandler func(string)) *widget.Button {
	return widget.NewButtonWithIcon(buttonText, theme.FolderOpenIcon(), func() {
		dirname, err := nativedialog.Directory().Title(title).Browse()
		if err == nil && dirname != "" && changeHandler != nil {
			changeHandler(dirname)
		}
	})
}

// CreateFolderSelectionField creates a folder selection field with browse button
func CreateFolderSelectionField(title string, entryField *widget.Entry, changeHandler func(string)) fyne.CanvasObject {
	if entryField == nil {
		entryField = widget.NewEntry()
	}
	entryField.SetPlaceHolder(locales.Translate("common.entry.placeholderpath"))
	if changeHandler != nil {
		entryField.OnChanged = changeHandler
	}

	browseBtn := CreateNativeFolderBrowseButton(title, "", func(path string) {
		entryField.SetText(path)
	})
	return container.NewBorder(nil, nil, nil, browseBtn, entryField)
}

// CreateSubmitButton creates a standardized submit button with high importance
func CreateSubmitButton(title string, handler func()) *widget.Button {
	btn := widget.NewButton(title, handler)
	btn.Importance = widget.HighImportance
	return btn
}

// CreateCheckbox creates a checkbox with a label and an initial state.
// onChanged is attached after the initial state is set, so it only fires for user toggles.
func CreateCheckbox(labelText string, checked bool, onChanged func(bool)) *widget.Check {
	checkbox := widget.NewCheck(labelText, nil)
	checkbox.SetChecked(checked)
	checkbox.OnChanged = onChanged
	return checkbox
}

// CreateDescriptionLabel creates a wrapped label for dialog text
func CreateDescriptionLabel(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	return label
}

// ShowLogViewerWindow opens a window showing the log file content
func ShowLogViewerWindow(logPath string) {
	logText := widget.NewMultiLineEntry()
	logText.TextStyle = fyne.TextStyle{Monospace: true}
	logText.Wrapping = fyne.TextWrapBreak
	logText.Disable()

	logWindow := fyne.CurrentApp().NewWindow(locales.Translate("common.logviewer.header"))

	refreshBtn := widget.NewButtonWithIcon(locales.Translate("common.button.refresh"), theme.ViewRefreshIcon(), func() {
		loadLogContent(logPath, logText)
	})
	refreshBtn.Importance = widget.HighImportance
	closeBtn := widget.NewButtonWithIcon(locales.Translate("common.button.close"), theme.CancelIcon(), func() {
		logWindow.Close()
	})

	logWindow.SetContent(container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), refreshBtn, closeBtn),
		nil,
		nil,
		logText,
	))
	logWindow.Resize(fyne.NewSize(800, 600))
	logWindow.CenterOnScreen()

	loadLogContent(logPath, logText)
	logWindow.Show()
}

// loadLogContent loads the log file into the text widget and moves the cursor to the end
func loadLogContent(logPath string, logText *widget.Entry) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		logText.SetText(fmt.Sprintf(locales.Translate("common.err.readlog"), err))
		return
	}
	logText.SetText(string(content))
	logText.CursorRow = strings.Count(string(content), "\n")
	logText.Refresh()
}
