// common/error_handler.go

package common

import (
	"fmt"
	"strings"
	"time"

	"RideKeeper/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ErrorContext provides additional information about an error
type ErrorContext struct {
	Module      string
	Operation   string
	Error       error
	Severity    Severity
	Recoverable bool
	Timestamp   time.Time
	StackTrace  string
}

// NewErrorContext creates a new error context with defaults
func NewErrorContext(module, operation string) ErrorContext {
	return ErrorContext{
		Module:      module,
		Operation:   operation,
		Severity:    SeverityError,
		Recoverable: true,
		Timestamp:   time.Now(),
	}
}

// ErrorHandler logs application errors and shows them to the user
type ErrorHandler struct {
	logger *Logger
	window fyne.Window
}

// NewErrorHandler creates a new error handler instance
func NewErrorHandler(logger *Logger, window fyne.Window) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		window: window,
	}
}

// GetLogger returns the logger instance
func (h *ErrorHandler) GetLogger() *Logger {
	return h.logger
}

// ShowError logs the error and shows it in a standard dialog
func (h *ErrorHandler) ShowError(err error) {
	if err == nil {
		return
	}
	if h.logger != nil {
		h.logger.Error("%v", err)
	}
	if h.window != nil {
		dialog.ShowError(err, h.window)
	}
}

// ShowErrorWithContext logs the error with its context and shows the details dialog.
// It may be called from a worker goroutine.
func (h *ErrorHandler) ShowErrorWithContext(ctx ErrorContext) {
	if ctx.Error == nil {
		return
	}
	if h.logger != nil {
		h.logger.Log(ctx.Severity, "%s/%s: %v", ctx.Module, ctx.Operation, ctx.Error)
	}
	if h.window != nil {
		fyne.Do(func() {
			h.showErrorDialog(ctx)
		})
	}
}

// ShowPanicError reports a recovered panic
func (h *ErrorHandler) ShowPanicError(r interface{}, stackTrace string) {
	ctx := NewErrorContext("Application", "Run")
	ctx.Error = fmt.Errorf("panic: %v", r)
	ctx.Severity = SeverityCritical
	ctx.Recoverable = false
	ctx.StackTrace = stackTrace
	h.ShowErrorWithContext(ctx)
}

// ShowInitializationErrorDialog reports a start-up problem the application worked around
func (h *ErrorHandler) ShowInitializationErrorDialog(err error) {
	ctx := NewErrorContext("Application", "Initialization")
	ctx.Error = err
	ctx.Severity = SeverityWarning
	h.ShowErrorWithContext(ctx)
}

// errorHeader picks the dialog title for a severity
func errorHeader(severity Severity) string {
	switch severity {
	case SeverityWarning:
		return locales.Translate("common.dialog.warningheader")
	case SeverityCritical:
		return locales.Translate("common.dialog.criticalheader")
	default:
		return locales.Translate("common.dialog.errorheader")
	}
}

func (h *ErrorHandler) showErrorDialog(ctx ErrorContext) {
	message := widget.NewLabel(ctx.Error.Error())
	message.Wrapping = fyne.TextWrapWord

	detailsLabel := widget.NewLabel(fmt.Sprintf("%s: %s\n%s: %s",
		locales.Translate("common.label.module"), ctx.Module,
		locales.Translate("common.label.operation"), ctx.Operation))
	detailsLabel.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(message, widget.NewSeparator(), detailsLabel)

	if ctx.Recoverable {
		content.Add(widget.NewLabel(locales.Translate("common.err.recoverable")))
	}

	if ctx.StackTrace != "" {
		stackTraceArea := widget.NewMultiLineEntry()
		stackTraceArea.SetText(ctx.StackTrace)
		stackTraceArea.Disable()

		showDetails := locales.Translate("common.button.showdetails")
		var toggle *widget.Button
		toggle = widget.NewButtonWithIcon(showDetails, theme.InfoIcon(), func() {
			if strings.Contains(toggle.Text, showDetails) {
				content.Add(stackTraceArea)
				toggle.SetText(locales.Translate("common.button.hidedetails"))
			} else {
				content.Remove(stackTraceArea)
				toggle.SetText(showDetails)
			}
		})
		content.Add(toggle)
	}

	if h.logger != nil {
		logPath := h.logger.Path()
		content.Add(widget.NewButtonWithIcon(locales.Translate("common.button.openlogs"), theme.FolderOpenIcon(), func() {
			ShowLogViewerWindow(logPath)
		}))
	}

	d := dialog.NewCustom(errorHeader(ctx.Severity), locales.Translate("common.button.ok"), content, h.window)
	d.Resize(fyne.NewSize(420, d.MinSize().Height))
	d.Show()
}
