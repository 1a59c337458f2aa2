package timerange

import "testing"

func testValues() Values {
	return Values{
		Week:        "3",
		Term:        "michaelmas",
		Day:         "thursday",
		StartHour:   "09",
		StartMinute: "00",
		EndHour:     "10",
		EndMinute:   "30",
	}
}

func TestEditorStartMoveDragsEnd(t *testing.T) {
	var applied []Values
	ed := NewEditor(testValues(), func(v Values) { applied = append(applied, v) })

	ed.TimeChanged(FieldStartHour, "11")

	if len(applied) != 1 {
		t.Fatalf("expected 1 apply, got %d", len(applied))
	}
	got := applied[0]
	if got.StartHour != "11" || got.StartMinute != "00" {
		t.Errorf("start = %s:%s, want 11:00", got.StartHour, got.StartMinute)
	}
	if got.EndHour != "12" || got.EndMinute != "30" {
		t.Errorf("end = %s:%s, want 12:30", got.EndHour, got.EndMinute)
	}
}

func TestEditorEndEditLeavesStart(t *testing.T) {
	var last Values
	ed := NewEditor(testValues(), func(v Values) { last = v })

	ed.TimeChanged(FieldEndHour, "16")

	if last.StartHour != "09" || last.StartMinute != "00" {
		t.Errorf("start = %s:%s, want 09:00 untouched", last.StartHour, last.StartMinute)
	}
	if last.EndHour != "16" || last.EndMinute != "30" {
		t.Errorf("end = %s:%s, want 16:30", last.EndHour, last.EndMinute)
	}
}

func TestEditorBoundaryPin(t *testing.T) {
	var last Values
	ed := NewEditor(testValues(), func(v Values) { last = v })

	// Dragging the start to 24:00 pins the range at 23:00-24:00.
	ed.TimeChanged(FieldStartHour, "24")

	if last.StartHour != "23" || last.StartMinute != "00" {
		t.Errorf("start = %s:%s, want 23:00", last.StartHour, last.StartMinute)
	}
	if last.EndHour != "24" || last.EndMinute != "00" {
		t.Errorf("end = %s:%s, want 24:00", last.EndHour, last.EndMinute)
	}
}

func TestEditorRevertsUnparseableTimeField(t *testing.T) {
	var applied []Values
	ed := NewEditor(testValues(), func(v Values) { applied = append(applied, v) })

	ed.TimeChanged(FieldStartHour, "xx")

	if len(applied) != 1 {
		t.Fatalf("expected 1 apply (the revert), got %d", len(applied))
	}
	if applied[0] != testValues() {
		t.Errorf("values changed on unparseable input: %+v", applied[0])
	}
}

func TestEditorLeadingZerosAccepted(t *testing.T) {
	var last Values
	ed := NewEditor(testValues(), func(v Values) { last = v })

	ed.TimeChanged(FieldStartMinute, "005")

	if last.StartMinute != "05" {
		t.Errorf("start minute = %q, want \"05\"", last.StartMinute)
	}
	if last.EndMinute != "35" {
		t.Errorf("end minute = %q, want \"35\" (end dragged by the +5 start delta)", last.EndMinute)
	}
}

func TestEditorWeekRevert(t *testing.T) {
	var applied []Values
	ed := NewEditor(testValues(), func(v Values) { applied = append(applied, v) })

	ed.WeekChanged("ab")

	if len(applied) != 1 {
		t.Fatalf("expected 1 apply (the revert), got %d", len(applied))
	}
	if applied[0].Week != "3" {
		t.Errorf("week = %q, want reverted \"3\"", applied[0].Week)
	}
	if applied[0] != testValues() {
		t.Errorf("time fields touched by week revert: %+v", applied[0])
	}

	ed.WeekChanged("05")
	if ed.Values().Week != "05" {
		t.Errorf("week = %q, want \"05\" kept as typed", ed.Values().Week)
	}
}

func TestEditorEntryField(t *testing.T) {
	ed := NewEditor(testValues(), func(Values) {})

	if got := ed.EntryField(EntryBefore); got != FieldWeek {
		t.Errorf("EntryBefore focuses %v, want FieldWeek", got)
	}
	if got := ed.EntryField(EntryAfter); got != FieldEndMinute {
		t.Errorf("EntryAfter focuses %v, want FieldEndMinute", got)
	}
}
