// common/instance_lock.go

package common

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another RideKeeper holds the instance lock.
var ErrAlreadyRunning = errors.New("another instance of the application is already running")

// InstanceLock keeps two copies of the application from editing the same rides.
type InstanceLock struct {
	lock *flock.Flock
}

// AcquireInstanceLock takes the lock file in dir without blocking.
func AcquireInstanceLock(dir string) (*InstanceLock, error) {
	if err := EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(dir, FileNameLock))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return &InstanceLock{lock: lock}, nil
}

// Release drops the lock.
func (l *InstanceLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
