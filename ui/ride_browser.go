// ui/ride_browser.go

package ui

import (
	"fmt"

	"RideKeeper/locales"
	"RideKeeper/rides"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const dirtyMarker = "● "

// RideBrowser lists the rides of a collection and edits the notes of the selected one.
type RideBrowser struct {
	collection *rides.Collection
	list       *widget.List
	details    *widget.Label
	notes      *widget.Entry
	selected   *rides.Record
	content    fyne.CanvasObject
}

// NewRideBrowser builds the browser for collection
func NewRideBrowser(collection *rides.Collection) *RideBrowser {
	b := &RideBrowser{collection: collection}

	b.list = widget.NewList(
		collection.Len,
		func() fyne.CanvasObject {
			return widget.NewLabel("template ride file name.gc")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if rec := collection.At(id); rec != nil {
				obj.(*widget.Label).SetText(rideLabel(rec))
			}
		},
	)
	b.list.OnSelected = func(id widget.ListItemID) {
		b.selectRecord(collection.At(id))
	}

	b.details = widget.NewLabel(locales.Translate("browser.noselection"))
	b.notes = widget.NewMultiLineEntry()
	b.notes.SetPlaceHolder(locales.Translate("browser.notes.placeholder"))
	b.notes.Disable()
	b.notes.OnChanged = func(text string) {
		if b.selected == nil {
			return
		}
		b.selected.SetNotes(text)
		b.list.Refresh()
	}

	detailPane := container.NewBorder(b.details, nil, nil, nil, b.notes)
	split := container.NewHSplit(b.list, detailPane)
	split.SetOffset(0.35)
	b.content = split
	return b
}

func rideLabel(rec *rides.Record) string {
	if rec.IsDirty() {
		return dirtyMarker + rec.FileName()
	}
	return rec.FileName()
}

func (b *RideBrowser) selectRecord(rec *rides.Record) {
	b.selected = rec
	if rec == nil {
		b.details.SetText(locales.Translate("browser.noselection"))
		b.notes.SetText("")
		b.notes.Disable()
		return
	}
	ride := rec.Ride()
	b.details.SetText(fmt.Sprintf(locales.Translate("browser.details"),
		rec.FileName(), ride.StartTime.Local().Format("2006-01-02 15:04"), ride.Duration().String(), ride.Distance(), len(ride.Samples)))
	b.notes.Enable()
	b.notes.SetText(ride.Notes)
}

// Content returns the browser's canvas object
func (b *RideBrowser) Content() fyne.CanvasObject {
	return b.content
}

// Selected returns the selected record, or nil
func (b *RideBrowser) Selected() *rides.Record {
	return b.selected
}

// Select selects the record at index i
func (b *RideBrowser) Select(i int) {
	b.list.Select(i)
}

// Refresh redraws the list after records changed name or dirty state.
// Call it on the UI goroutine.
func (b *RideBrowser) Refresh() {
	b.list.Refresh()
	if b.selected != nil {
		b.selectRecord(b.selected)
	}
}
