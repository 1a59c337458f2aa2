package panel

import (
	"testing"

	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/model"
	"github.com/mpryce/ttedit/internal/session"
	"github.com/mpryce/ttedit/internal/timerange"
)

type stubHost struct{}

func (stubHost) InsertBackdrop(onClick func()) func() { return func() {} }

func testSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(model.EventRecord{
		ID: 7, Title: "Lecture", Term: "lent", Week: "3", Day: "tuesday",
		StartHour: "09", StartMinute: "00", EndHour: "10", EndMinute: "00",
	}, nil)
	if err := sess.CaptureBaseline(); err != nil {
		t.Fatal(err)
	}
	return sess
}

func inView() dialog.Rect    { return dialog.Rect{Top: 100, Left: 50, Width: 120, Height: 24} }
func container() dialog.Rect { return dialog.Rect{Top: 0, Left: 0, Width: 900, Height: 600} }
func outOfView() dialog.Rect { return dialog.Rect{Top: -40, Left: 50, Width: 120, Height: 24} }

func TestToggleOpensAndCloses(t *testing.T) {
	mgr := dialog.NewManager(stubHost{})
	var focused []timerange.Field

	v := NewEventView(EventViewConfig{
		Session:    testSession(t),
		Dialogs:    mgr,
		Anchor:     inView,
		Container:  container,
		FocusField: func(f timerange.Field) { focused = append(focused, f) },
	})

	v.ToggleTimeDialog(nil)
	if v.Editor() == nil {
		t.Fatal("no editor after opening")
	}
	if mgr.ActivePopup() == nil {
		t.Fatal("no popup after opening")
	}
	if len(focused) != 1 || focused[0] != timerange.FieldWeek {
		t.Errorf("focus = %v, want [FieldWeek]", focused)
	}

	v.ToggleTimeDialog(nil)
	if v.Editor() != nil {
		t.Error("editor survived the closing toggle")
	}
	if mgr.ActivePopup() != nil {
		t.Error("popup survived the closing toggle")
	}
}

func TestCatcherEntryFocusesLastField(t *testing.T) {
	mgr := dialog.NewManager(stubHost{})
	var focused []timerange.Field

	v := NewEventView(EventViewConfig{
		Session:    testSession(t),
		Dialogs:    mgr,
		Anchor:     inView,
		Container:  container,
		FocusField: func(f timerange.Field) { focused = append(focused, f) },
	})

	entry := timerange.EntryAfter
	v.ToggleTimeDialog(&entry)
	if len(focused) != 1 || focused[0] != timerange.FieldEndMinute {
		t.Errorf("focus = %v, want [FieldEndMinute]", focused)
	}
}

func TestCatcherToggleMovesFocusToNeighbor(t *testing.T) {
	mgr := dialog.NewManager(stubHost{})
	var neighbor []bool

	v := NewEventView(EventViewConfig{
		Session:       testSession(t),
		Dialogs:       mgr,
		Anchor:        inView,
		Container:     container,
		FocusNeighbor: func(before bool) { neighbor = append(neighbor, before) },
	})

	v.ToggleTimeDialog(nil)
	entry := timerange.EntryBefore
	v.ToggleTimeDialog(&entry)

	if len(neighbor) != 1 || neighbor[0] != true {
		t.Errorf("FocusNeighbor calls = %v, want [true]", neighbor)
	}
	if v.Editor() != nil {
		t.Error("dialog still open after catcher toggle")
	}
}

func TestClickToggleDoesNotMoveFocus(t *testing.T) {
	mgr := dialog.NewManager(stubHost{})
	moved := false

	v := NewEventView(EventViewConfig{
		Session:       testSession(t),
		Dialogs:       mgr,
		Anchor:        inView,
		Container:     container,
		FocusNeighbor: func(bool) { moved = true },
	})

	v.ToggleTimeDialog(nil)
	v.ToggleTimeDialog(nil)
	if moved {
		t.Error("click toggle moved focus to a neighbor")
	}
}

func TestEditsFlowIntoSession(t *testing.T) {
	sess := testSession(t)
	mgr := dialog.NewManager(stubHost{})
	renders := 0

	v := NewEventView(EventViewConfig{
		Session:   sess,
		Dialogs:   mgr,
		Anchor:    inView,
		Container: container,
		Render:    func(model.EventRecord) { renders++ },
	})

	v.ToggleTimeDialog(nil)
	v.Editor().TimeChanged(timerange.FieldStartHour, "11")

	cur := sess.Current()
	if cur.StartHour != "11" {
		t.Errorf("start hour = %q, want 11", cur.StartHour)
	}
	// Moving the start drags the end to preserve the hour-long duration.
	if cur.EndHour != "12" {
		t.Errorf("end hour = %q, want 12", cur.EndHour)
	}
	if renders != 1 {
		t.Errorf("Render called %d times, want 1", renders)
	}
	dirty, err := sess.IsDirty()
	if err != nil {
		t.Fatal(err)
	}
	if !dirty {
		t.Error("session clean after a time edit")
	}
}

func TestDialogValuesSurviveReopen(t *testing.T) {
	sess := testSession(t)
	mgr := dialog.NewManager(stubHost{})

	v := NewEventView(EventViewConfig{
		Session:   sess,
		Dialogs:   mgr,
		Anchor:    inView,
		Container: container,
	})

	v.ToggleTimeDialog(nil)
	v.Editor().TermChanged("easter")
	v.ToggleTimeDialog(nil)

	// The reopened dialog is seeded from the session, so the committed edit
	// is still there.
	v.ToggleTimeDialog(nil)
	if got := v.Editor().Values().Term; got != "easter" {
		t.Errorf("reopened term = %q, want easter", got)
	}
}

func TestOpenDismissedWhenAnchorOutOfView(t *testing.T) {
	mgr := dialog.NewManager(stubHost{})

	v := NewEventView(EventViewConfig{
		Session:   testSession(t),
		Dialogs:   mgr,
		Anchor:    outOfView,
		Container: container,
	})

	v.ToggleTimeDialog(nil)
	if v.Editor() != nil {
		t.Error("editor exists though the dialog dismissed itself on open")
	}
	if mgr.ActivePopup() != nil {
		t.Error("manager tracks a dismissed popup")
	}
}
