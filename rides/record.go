// rides/record.go

// Package rides holds the ride records of the RideKeeper application and the
// workflows that decide when and how a changed ride is written back to disk.
// This file contains the record and collection types.

package rides

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NativeFormat is the suffix token of the application's own file format.
const NativeFormat = "gc"

// BackupSuffix is appended to an original file name when it is moved aside after conversion.
const BackupSuffix = ".sav"

// Record is one ride file known to the application.
// Fields are guarded because the ride list renders them while a workflow runs.
type Record struct {
	mutex    sync.RWMutex
	id       string
	dir      string
	fileName string
	dirty    bool
	ride     *Ride
	// revision counts edits so a save can tell whether it wrote the latest state
	revision uint64
}

// NewRecord creates a clean record for the file at dir/fileName.
// An empty id gets a fresh UUID.
func NewRecord(id, dir, fileName string, ride *Ride) *Record {
	if id == "" {
		id = uuid.NewString()
	}
	if ride == nil {
		ride = &Ride{}
	}
	return &Record{
		id:       id,
		dir:      dir,
		fileName: fileName,
		ride:     ride,
	}
}

// ID returns the stable identifier used by the library index.
func (r *Record) ID() string {
	return r.id
}

// Dir returns the directory holding the ride file.
func (r *Record) Dir() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.dir
}

// FileName returns the file name without directory.
func (r *Record) FileName() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.fileName
}

// Path returns the full path of the ride file.
func (r *Record) Path() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return filepath.Join(r.dir, r.fileName)
}

// SetFileName points the record at a new location.
func (r *Record) SetFileName(dir, fileName string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.dir = dir
	r.fileName = fileName
}

// IsDirty reports whether the in-memory ride differs from the last save.
func (r *Record) IsDirty() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.dirty
}

// SetDirty sets the dirty flag.
func (r *Record) SetDirty(dirty bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if dirty {
		r.revision++
	}
	r.dirty = dirty
}

// Ride returns a copy of the in-memory payload.
func (r *Record) Ride() *Ride {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.ride.clone()
}

// Snapshot returns a copy of the payload together with the edit revision it
// belongs to. Pass the revision to MarkSaved once the copy is on disk.
func (r *Record) Snapshot() (*Ride, uint64) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.ride.clone(), r.revision
}

// MarkSaved clears the dirty flag if nothing was edited since the snapshot of
// revision was taken, and reports whether it did.
func (r *Record) MarkSaved(revision uint64) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.revision != revision {
		return false
	}
	r.dirty = false
	return true
}

// SetNotes edits the ride notes and marks the record dirty when they change.
func (r *Record) SetNotes(notes string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.ride.Notes == notes {
		return
	}
	r.ride.Notes = notes
	r.revision++
	r.dirty = true
}

// Format returns the upper-cased complete suffix of the file name,
// i.e. everything after the first dot ("TCX.GZ" for "ride.tcx.gz").
func (r *Record) Format() string {
	return completeSuffix(r.FileName())
}

// IsNative reports whether the file is already stored in the native format.
func (r *Record) IsNative() bool {
	return strings.EqualFold(r.Format(), NativeFormat)
}

func completeSuffix(fileName string) string {
	i := strings.Index(fileName, ".")
	if i < 0 {
		return ""
	}
	return strings.ToUpper(fileName[i+1:])
}

func baseName(fileName string) string {
	if i := strings.Index(fileName, "."); i >= 0 {
		return fileName[:i]
	}
	return fileName
}

// Collection is the ordered set of records loaded in the application.
type Collection struct {
	mutex   sync.RWMutex
	records []*Record
}

// NewCollection creates a collection holding records in the given order.
func NewCollection(records ...*Record) *Collection {
	c := &Collection{}
	c.records = append(c.records, records...)
	return c
}

// Add appends a record.
func (c *Collection) Add(record *Record) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.records = append(c.records, record)
}

// Remove drops the record with the given id and reports whether it was present.
func (c *Collection) Remove(id string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i, rec := range c.records {
		if rec.ID() == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.records)
}

// At returns the record at index i, or nil when out of range.
func (c *Collection) At(i int) *Record {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if i < 0 || i >= len(c.records) {
		return nil
	}
	return c.records[i]
}

// Records returns a snapshot of all records.
func (c *Collection) Records() []*Record {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	out := make([]*Record, len(c.records))
	copy(out, c.records)
	return out
}

// Dirty scans the collection and returns the dirty records in collection order.
// The result is never cached.
func (c *Collection) Dirty() []*Record {
	var dirty []*Record
	for _, rec := range c.Records() {
		if rec.IsDirty() {
			dirty = append(dirty, rec)
		}
	}
	return dirty
}
