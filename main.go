// main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"

	"RideKeeper/common"
	"RideKeeper/locales"
	"RideKeeper/rides"
	"RideKeeper/theme"
	"RideKeeper/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
)

var (
	_ rides.Preferences = (*common.ConfigManager)(nil)
	_ rides.Index       = (*common.Library)(nil)
)

const (
	logMaxSizeMB  = 10
	logMaxAgeDays = 7
)

// RideKeeper is the main application structure.
type RideKeeper struct {
	app          fyne.App
	mainWindow   fyne.Window
	configMgr    *common.ConfigManager
	library      *common.Library
	logger       *common.Logger
	errorHandler *common.ErrorHandler
	lock         *common.InstanceLock

	collection *rides.Collection
	saver      *rides.Saver
	exitFlow   *rides.ExitWorkflow
	browser    *ui.RideBrowser
	status     *common.StatusMessagesContainer

	// busy is set while a save or exit workflow owns the dialogs
	busy atomic.Bool

	initErr error
}

// NewRideKeeper initializes logging, configuration, the library and the main window.
func NewRideKeeper(opts options) (*RideKeeper, error) {
	logger, err := openLogger(opts.logPath)
	if err != nil {
		return nil, err
	}
	common.FlushEarlyLogs(logger)

	lock, err := common.AcquireInstanceLock(common.DataDir())
	if err != nil {
		logger.Error("Startup aborted: %v", err)
		logger.Close()
		return nil, err
	}

	fyneApp := app.NewWithID(common.AppID)
	fyneApp.SetIcon(fynetheme.DocumentIcon())
	fyneApp.Settings().SetTheme(theme.NewCustomTheme())

	rk := &RideKeeper{
		app:        fyneApp,
		logger:     logger,
		lock:       lock,
		collection: rides.NewCollection(),
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath, err = common.LocateConfigFile()
	} else if !common.FileExists(configPath) {
		err = common.CreateConfigFile(configPath)
	}
	if err == nil {
		rk.configMgr, err = common.NewConfigManager(configPath)
	}
	if err != nil {
		// Start anyway with a throwaway file so the error can be shown.
		logger.Error("Failed to load configuration: %v", err)
		rk.initErr = err
		fallback := filepath.Join(os.TempDir(), common.AppName+"-"+common.FileNameSettings)
		_ = os.Remove(fallback)
		if rk.configMgr, err = common.NewConfigManager(fallback); err != nil {
			lock.Release()
			logger.Close()
			return nil, err
		}
	}
	rk.configMgr.SetLogger(logger)
	logger.Info("Using configuration file: %s", rk.configMgr.Path())

	common.DetectAndSetLanguage(rk.configMgr, logger)

	rk.mainWindow = fyneApp.NewWindow(locales.Translate("main.app.title"))
	rk.mainWindow.Resize(fyne.NewSize(1000, 700))
	rk.errorHandler = common.NewErrorHandler(logger, rk.mainWindow)
	logger.Info("%s", locales.Translate("main.log.appstart"))

	rk.openLibrary(opts.libraryPath)

	rk.saver = rides.NewSaver(rk.configMgr, ui.NewSaveDialogs(rk.mainWindow), rides.NativeWriter{})
	rk.saver.SetLogger(logger)
	if rk.library != nil {
		rk.saver.SetIndex(rk.library)
	}
	rk.exitFlow = rides.NewExitWorkflow(rk.saver)

	return rk, nil
}

// openLogger uses the --log path when given, else an existing log in the working
// directory, else the per-user log folder, else a new log in the working directory.
func openLogger(path string) (*common.Logger, error) {
	if path != "" {
		logger, err := common.NewLogger(path, logMaxSizeMB, logMaxAgeDays)
		if err != nil {
			return nil, fmt.Errorf("failed to open log %s: %w", path, err)
		}
		return logger, nil
	}

	if common.FileExists(common.FileNameLog) {
		if logger, err := common.NewLogger(common.FileNameLog, logMaxSizeMB, logMaxAgeDays); err == nil {
			return logger, nil
		}
	}

	logDir := common.JoinPaths(common.DataDir(), common.FolderNameLog)
	if err := common.EnsureDirectoryExists(logDir); err == nil {
		logger, err := common.NewLogger(common.JoinPaths(logDir, common.FileNameLog), logMaxSizeMB, logMaxAgeDays)
		if err == nil {
			return logger, nil
		}
		common.CaptureEarlyLog(common.SeverityWarning, "Failed to open log in %s: %v", logDir, err)
	}

	logger, err := common.NewLogger(common.FileNameLog, logMaxSizeMB, logMaxAgeDays)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger in any location: %w", err)
	}
	return logger, nil
}

// openLibrary connects the ride index. Failures leave the app usable without it.
func (rk *RideKeeper) openLibrary(override string) {
	config := rk.configMgr.GetGlobalConfig()
	path := config.LibraryPath
	if override != "" {
		path = override
	}

	library, err := common.NewLibrary(path, config.LibraryKey, rk.logger)
	if err == nil {
		err = library.Connect()
	}
	if err != nil {
		rk.logger.Error("Library unavailable: %v", err)
		if rk.initErr == nil {
			rk.initErr = err
		}
		return
	}
	rk.library = library
}

// loadRides opens the indexed rides and indexes new files from the ride folder.
func (rk *RideKeeper) loadRides() {
	if rk.library == nil {
		return
	}

	entries, err := rk.library.ListRides()
	if err != nil {
		rk.logger.Error("Failed to list library: %v", err)
		return
	}
	for _, entry := range entries {
		if !common.FileExists(entry.Path()) {
			rk.logger.Warning("Ride %s no longer exists, removing it from the library", entry.Path())
			if err := rk.library.RemoveRide(entry.ID); err != nil {
				rk.logger.Error("%v", err)
			}
			continue
		}
		record, err := rides.Open(entry.ID, entry.Path())
		if err != nil {
			rk.logger.Warning("Skipping ride: %v", err)
			continue
		}
		rk.collection.Add(record)
	}

	folder := rk.configMgr.GetGlobalConfig().RideFolder
	if folder == "" || !common.DirectoryExists(folder) {
		return
	}
	files, err := common.ListFilesWithExtensions(folder, []string{common.ExtensionNative, common.ExtensionCSV})
	if err != nil {
		rk.logger.Warning("Failed to scan ride folder %s: %v", folder, err)
		return
	}
	imported := 0
	for _, path := range files {
		_, err := rk.importRide(path)
		switch {
		case err == nil:
			imported++
		case !errors.Is(err, errRideAlreadyOpen):
			rk.logger.Warning("Skipping ride: %v", err)
		}
	}
	if imported > 0 {
		rk.logger.Info("Imported %d new rides from %s", imported, folder)
	}
}

// importRide indexes and opens path. A ride that is already open is returned
// together with errRideAlreadyOpen.
func (rk *RideKeeper) importRide(path string) (*rides.Record, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	id := uuid.NewString()
	if rk.library != nil {
		var err error
		id, err = rk.library.AddRide(id, path)
		if err != nil {
			return nil, err
		}
	}
	for _, rec := range rk.collection.Records() {
		if rec.ID() == id || rec.Path() == path {
			return rec, errRideAlreadyOpen
		}
	}
	record, err := rides.Open(id, path)
	if err != nil {
		if rk.library != nil {
			_ = rk.library.RemoveRide(id)
		}
		return nil, err
	}
	rk.collection.Add(record)
	return record, nil
}

var errRideAlreadyOpen = errors.New("ride is already open")

// Run builds the GUI and runs the main event loop.
func (rk *RideKeeper) Run() {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := string(debug.Stack())
			if rk.errorHandler != nil {
				rk.errorHandler.ShowPanicError(r, stackTrace)
			} else {
				rk.logger.Error("PANIC RECOVERED (ErrorHandler not available): %v\n%s", r, stackTrace)
			}
		}
	}()

	rk.loadRides()
	rk.createMainContent()
	rk.mainWindow.SetCloseIntercept(rk.requestClose)
	rk.mainWindow.Show()

	if rk.initErr != nil {
		rk.logger.Info("Displaying initialization error dialog for: %v", rk.initErr)
		rk.errorHandler.ShowInitializationErrorDialog(rk.initErr)
	}

	rk.app.Run()
	rk.shutdown()
}

func (rk *RideKeeper) shutdown() {
	if rk.library != nil {
		if err := rk.library.Finalize(); err != nil {
			rk.logger.Error("%s: %v", locales.Translate("common.err.dbclosing"), err)
		}
	}
	if err := rk.lock.Release(); err != nil {
		rk.logger.Warning("Failed to release instance lock: %v", err)
	}
	rk.logger.Info("Application closed")
	rk.logger.Close()
}

// createMainContent lays out the toolbar, the ride browser and the status panel
func (rk *RideKeeper) createMainContent() {
	rk.browser = ui.NewRideBrowser(rk.collection)
	rk.status = common.NewStatusMessagesContainer(200)

	openButton := common.CreateNativeFileOpenButton(
		locales.Translate("main.dialog.open"),
		locales.Translate("main.button.open"),
		rk.configMgr.GetGlobalConfig().RideFolder,
		rk.openRide,
	)
	saveButton := widget.NewButtonWithIcon(locales.Translate("main.button.save"), fynetheme.DocumentSaveIcon(), rk.saveSelected)
	settingsButton := widget.NewButtonWithIcon(locales.Translate("settings.win.title"), fynetheme.SettingsIcon(), func() {
		ui.ShowSettingsWindow(rk.mainWindow, rk.configMgr, rk.errorHandler)
	})
	aboutButton := widget.NewButtonWithIcon(locales.Translate("main.menu.about"), fynetheme.InfoIcon(), func() {
		libraryPath := ""
		if rk.library != nil {
			libraryPath = rk.library.Path()
		}
		ui.ShowAboutWindow(rk.mainWindow, rk.configMgr.Path(), libraryPath, rk.logger.Path())
	})

	toolbar := container.NewHBox(openButton, saveButton, settingsButton, aboutButton)
	rk.mainWindow.SetContent(container.NewBorder(toolbar, rk.status, nil, nil, rk.browser.Content()))
}

// openRide is called on the UI goroutine with the picked file
func (rk *RideKeeper) openRide(path string) {
	record, err := rk.importRide(path)
	switch {
	case errors.Is(err, errRideAlreadyOpen):
	case err != nil:
		ctx := common.NewErrorContext(common.AppName, common.OperationOpenRide)
		ctx.Error = err
		ctx.Severity = common.SeverityWarning
		rk.errorHandler.ShowErrorWithContext(ctx)
		return
	default:
		rk.status.AddInfoMessage(fmt.Sprintf(locales.Translate("main.status.opened"), record.FileName()))
	}
	rk.browser.Refresh()
	for i, rec := range rk.collection.Records() {
		if rec == record {
			rk.browser.Select(i)
			break
		}
	}
}

// runWorkflow runs fn on a worker goroutine so its dialogs can block.
// Only one workflow runs at a time; further requests are ignored.
func (rk *RideKeeper) runWorkflow(fn func()) bool {
	if !rk.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer rk.busy.Store(false)
		defer func() {
			if r := recover(); r != nil {
				rk.errorHandler.ShowPanicError(r, string(debug.Stack()))
			}
		}()
		fn()
	}()
	return true
}

func (rk *RideKeeper) saveSelected() {
	record := rk.browser.Selected()
	if record == nil {
		return
	}
	rk.runWorkflow(func() {
		oldName := record.FileName()
		outcome, err := rk.saver.SaveSingle(record)
		fyne.Do(func() {
			rk.browser.Refresh()
			if err != nil {
				rk.reportSaveError(common.OperationSaveRide, err)
				return
			}
			rk.reportOutcome(oldName, record, outcome)
		})
	})
}

func (rk *RideKeeper) reportOutcome(oldName string, record *rides.Record, outcome rides.Outcome) {
	switch outcome {
	case rides.OutcomeSaved:
		if oldName != record.FileName() {
			rk.status.AddInfoMessage(fmt.Sprintf(locales.Translate("main.status.converted"), oldName, record.FileName()))
			return
		}
		rk.status.AddInfoMessage(fmt.Sprintf(locales.Translate("main.status.saved"), record.FileName()))
	case rides.OutcomeDiscarded:
		rk.status.AddWarningMessage(fmt.Sprintf(locales.Translate("main.status.discarded"), record.FileName()))
	case rides.OutcomeCancelled:
		rk.status.AddInfoMessage(locales.Translate("main.status.cancelled"))
	}
}

func (rk *RideKeeper) reportSaveError(operation string, err error) {
	rk.status.AddErrorMessage(err.Error())
	ctx := common.NewErrorContext(common.AppName, operation)
	ctx.Error = err
	if errors.Is(err, rides.ErrBackupFailed) {
		ctx.Severity = common.SeverityWarning
	}
	rk.errorHandler.ShowErrorWithContext(ctx)
}

// requestClose replaces the window close button. The exit workflow decides whether
// the application really quits.
func (rk *RideKeeper) requestClose() {
	rk.runWorkflow(func() {
		result, err := rk.exitFlow.ConfirmExit(rk.collection)
		rk.logger.Info("Exit confirmation finished: %s (state %s)", result, rk.exitFlow.State())
		fyne.Do(func() {
			rk.browser.Refresh()
			if err != nil {
				rk.reportSaveError(common.OperationExit, err)
			}
			if result == rides.ProceedClose {
				rk.app.Quit()
			}
		})
	})
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
