// ui/save_dialogs.go

package ui

import (
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

// SaveDialogs shows the save and exit confirmations as modal Fyne dialogs.
// Its methods block until a button is pressed, so they must be called from a
// worker goroutine, never from the Fyne UI goroutine.
type SaveDialogs struct {
	window fyne.Window
}

var _ rides.Prompter = (*SaveDialogs)(nil)

// NewSaveDialogs creates the dialogs for window
func NewSaveDialogs(window fyne.Window) *SaveDialogs {
	return &SaveDialogs{window: window}
}

// PromptConversion asks whether a non-native ride may be converted on save
func (d *SaveDialogs) PromptConversion(prompt rides.ConversionPrompt) rides.ConversionChoice {
	result := make(chan rides.ConversionChoice, 1)
	fyne.Do(func() {
		var dlg dialog.Dialog
		form := newConversionForm(prompt, func(choice rides.ConversionChoice) {
			dlg.Hide()
			result <- choice
		})
		dlg = dialog.NewCustomWithoutButtons(locales.Translate("savedialog.convert.title"), form.content, d.window)
		dlg.Show()
	})
	return <-result
}

// PromptExit lists the unsaved rides and asks what to do with them
func (d *SaveDialogs) PromptExit(prompt rides.ExitPrompt) rides.ExitDecision {
	result := make(chan rides.ExitDecision, 1)
	fyne.Do(func() {
		var dlg dialog.Dialog
		form := newExitForm(prompt, func(decision rides.ExitDecision) {
			dlg.Hide()
			result <- decision
		})
		dlg = dialog.NewCustomWithoutButtons(locales.Translate("savedialog.exit.title"), form.content, d.window)
		dlg.Resize(fyne.NewSize(480, 360))
		dlg.Show()
	})
	return <-result
}

// conversionForm is the content of the conversion dialog
type conversionForm struct {
	content fyne.CanvasObject
	save    *widget.Button
	discard *widget.Button
	cancel  *widget.Button
	warn    *widget.Check
}

func newConversionForm(prompt rides.ConversionPrompt, done func(rides.ConversionChoice)) *conversionForm {
	f := &conversionForm{}
	warnText := common.CreateDescriptionLabel(fmt.Sprintf(locales.Translate("savedialog.convert.warning"), prompt.FileName))

	f.save = common.CreateSubmitButton(locales.Translate("savedialog.button.saveconvert"), func() {
		done(rides.ChoiceSaveAndConvert)
	})
	f.discard = widget.NewButton(locales.Translate("savedialog.button.discard"), func() {
		done(rides.ChoiceDiscard)
	})
	f.discard.Importance = widget.DangerImportance
	f.cancel = widget.NewButton(locales.Translate("savedialog.button.cancelsave"), func() {
		done(rides.ChoiceCancel)
	})

	f.warn = common.CreateCheckbox(locales.Translate("savedialog.check.warnconvert"), true, func(checked bool) {
		if prompt.OnWarnToggled != nil {
			prompt.OnWarnToggled(checked)
		}
	})

	f.content = container.NewVBox(
		warnText,
		container.NewHBox(layout.NewSpacer(), f.save, f.discard, f.cancel, layout.NewSpacer()),
		f.warn,
	)
	return f
}

// exitForm is the content of the exit dialog
type exitForm struct {
	content  fyne.CanvasObject
	rows     []*widget.Check
	save     *widget.Button
	discard  *widget.Button
	cancel   *widget.Button
	warn     *widget.Check
	selected []bool
}

func newExitForm(prompt rides.ExitPrompt, done func(rides.ExitDecision)) *exitForm {
	f := &exitForm{selected: make([]bool, len(prompt.FileNames))}

	list := container.NewVBox()
	for i, name := range prompt.FileNames {
		i := i
		f.selected[i] = true
		row := common.CreateCheckbox(name, true, func(checked bool) {
			f.selected[i] = checked
		})
		f.rows = append(f.rows, row)
		list.Add(row)
	}
	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(400, 160))

	finish := func(action rides.ExitAction) {
		selected := make([]bool, len(f.selected))
		copy(selected, f.selected)
		done(rides.ExitDecision{Action: action, Selected: selected})
	}
	f.save = common.CreateSubmitButton(locales.Translate("savedialog.button.saveexit"), func() {
		finish(rides.ExitSave)
	})
	f.discard = widget.NewButton(locales.Translate("savedialog.button.discardexit"), func() {
		finish(rides.ExitDiscard)
	})
	f.discard.Importance = widget.DangerImportance
	f.cancel = widget.NewButton(locales.Translate("savedialog.button.cancelexit"), func() {
		finish(rides.ExitCancel)
	})

	f.warn = common.CreateCheckbox(locales.Translate("savedialog.check.warnexit"), true, func(checked bool) {
		if prompt.OnWarnToggled != nil {
			prompt.OnWarnToggled(checked)
		}
	})

	f.content = container.NewBorder(
		common.CreateDescriptionLabel(locales.Translate("savedialog.exit.warning")),
		container.NewVBox(
			container.NewHBox(layout.NewSpacer(), f.save, f.discard, f.cancel, layout.NewSpacer()),
			f.warn,
		),
		nil,
		nil,
		scroll,
	)
	return f
}
