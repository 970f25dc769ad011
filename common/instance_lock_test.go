package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceLockIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireInstanceLock(dir)
	require.NoError(t, err)

	_, err = AcquireInstanceLock(dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())

	second, err := AcquireInstanceLock(dir)
	require.NoError(t, err)
	assert.NoError(t, second.Release())
}

func TestInstanceLockReleaseNil(t *testing.T) {
	var lock *InstanceLock
	assert.NoError(t, lock.Release())
}
