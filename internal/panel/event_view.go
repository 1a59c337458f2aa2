// Package panel attaches editing behavior to rendered event rows. It is the
// composition seam the panel is built from: an expandable series (the
// series.Controller) plus an editable capability per event row (EventView),
// with no inheritance chain between read-only and writable variants.
package panel

import (
	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/session"
	"github.com/mpryce/ttedit/internal/timerange"
)

// EventViewConfig binds an EventView to its presentation. The view never
// queries the presentation layer for values it already owns: field values
// flow out through Render, focus changes through FocusField, and geometry in
// through the Anchor/Container callbacks.
type EventViewConfig struct {
	Session *session.Session
	Dialogs *dialog.Manager

	// Geometry of the time cell the dialog anchors to, and of the scroll
	// container that can scroll it out of view.
	Anchor    func() dialog.Rect
	Container func() dialog.Rect
	Resize    dialog.EventSource
	Scroll    dialog.EventSource

	// DialogSize is the rendered size of the time dialog.
	DialogWidth, DialogHeight float64

	// Position places the open dialog; FadeOut animates it away.
	Position func(top, left float64)
	FadeOut  func(done func())

	// Render redraws the row's fields from the session.
	Render func(model.EventRecord)
	// FocusField moves keyboard focus to a dialog field.
	FocusField func(timerange.Field)
	// FocusNeighbor moves focus to the row field adjacent to the time
	// cell when the dialog closes from a focus catcher: before the cell
	// when before is true, after it otherwise.
	FocusNeighbor func(before bool)
}

// EventView owns one row's time-range dialog. The editor inside it exists
// only while the dialog is open: created when the time cell is activated,
// destroyed when the dialog closes.
type EventView struct {
	cfg    EventViewConfig
	editor *timerange.Editor
	popup  *dialog.Popup
}

// NewEventView creates the editable wrapper for one event row.
func NewEventView(cfg EventViewConfig) *EventView {
	return &EventView{cfg: cfg}
}

// Editor returns the open dialog's editor, or nil while the dialog is
// closed.
func (v *EventView) Editor() *timerange.Editor {
	return v.editor
}

// ToggleTimeDialog opens the dialog on time-cell activation and closes it on
// a second activation. entry is non-nil when the activation came from a
// keyboard focus catcher rather than a click.
func (v *EventView) ToggleTimeDialog(entry *timerange.Entry) {
	if v.editor != nil {
		fromCatcher := entry != nil
		before := fromCatcher && *entry == timerange.EntryBefore
		v.CloseTimeDialog()
		if fromCatcher && v.cfg.FocusNeighbor != nil {
			// Move focus off the catcher onto a real field so keyboard
			// users are not trapped.
			v.cfg.FocusNeighbor(before)
		}
		return
	}

	v.openTimeDialog(entry)
}

func (v *EventView) openTimeDialog(entry *timerange.Entry) {
	rec := v.cfg.Session.Current()
	v.editor = timerange.NewEditor(timerange.Values{
		Week:        rec.Week,
		Term:        rec.Term,
		Day:         rec.Day,
		StartHour:   rec.StartHour,
		StartMinute: rec.StartMinute,
		EndHour:     rec.EndHour,
		EndMinute:   rec.EndMinute,
	}, v.applyEditorValues)

	popup := v.cfg.Dialogs.OpenPopup(dialog.PopupConfig{
		Anchor:    v.cfg.Anchor,
		Container: v.cfg.Container,
		Width:     v.cfg.DialogWidth,
		Height:    v.cfg.DialogHeight,
		Position:  v.cfg.Position,
		Resize:    v.cfg.Resize,
		Scroll:    v.cfg.Scroll,
		FadeOut:   v.cfg.FadeOut,
		OnClose:   v.onDialogClosed,
	})

	if v.editor == nil {
		// Repositioning during open found the anchor out of view and
		// dismissed the dialog already.
		return
	}
	v.popup = popup

	if v.cfg.FocusField != nil {
		which := timerange.EntryBefore
		if entry != nil {
			which = *entry
		}
		v.cfg.FocusField(v.editor.EntryField(which))
	}
}

// CloseTimeDialog closes the dialog through the manager, releasing its
// backdrop and listeners.
func (v *EventView) CloseTimeDialog() {
	if v.popup != nil {
		v.popup.Close()
	}
}

// applyEditorValues pushes an accepted or reverted edit from the dialog into
// the session. The session's change notification then drives the series'
// dirty recomputation; the row is re-rendered from the session so stored
// values stay canonical.
func (v *EventView) applyEditorValues(vals timerange.Values) {
	v.cfg.Session.Set(func(r *model.EventRecord) {
		r.Week = vals.Week
		r.Term = vals.Term
		r.Day = vals.Day
		r.StartHour = vals.StartHour
		r.StartMinute = vals.StartMinute
		r.EndHour = vals.EndHour
		r.EndMinute = vals.EndMinute
	})
	if v.cfg.Render != nil {
		v.cfg.Render(v.cfg.Session.Current())
	}
}

// onDialogClosed destroys the editor; it exists only while the dialog is
// open.
func (v *EventView) onDialogClosed() {
	v.editor = nil
	v.popup = nil
}
