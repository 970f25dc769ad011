// constants.go

// Package common provides shared functionality and constants for the RideKeeper application.
// This file contains constants used across the application to replace hardcoded strings.
package common

// AppIdentifiers - Constants for application identification
const (
	// AppID is the application identifier
	AppID = "com.ridekeeper.app"

	// AppName is the application name
	AppName = "RideKeeper"
)

// FileNames - Constants for file names
const (
	// FileNameSettings is the name of the configuration file
	FileNameSettings = "settings.conf"

	// FileNameLog is the name of the application log file
	FileNameLog = "ridekeeper.log"

	// FileNameLibrary is the name of the ride library database
	FileNameLibrary = "library.db"

	// FileNameLock is the name of the single instance lock file
	FileNameLock = "ridekeeper.lock"

	// FolderNameLog is the name of the log folder
	FolderNameLog = "log"
)

// FileExtensions - Constants for ride file extensions the open dialog offers
const (
	ExtensionNative = "gc"

	ExtensionCSV = "csv"
)

// OperationNames - Constants for operation names used in ErrorContext
const (
	OperationOpenRide = "OpenRide"

	OperationSaveRide = "SaveRide"

	OperationExit = "Exit"

	OperationLibrary = "Library"

	OperationSaveSettings = "SaveSettings"
)
