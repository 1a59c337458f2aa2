package timerange

// Field identifies one editable input of the time-range dialog.
type Field int

const (
	FieldWeek Field = iota
	FieldTerm
	FieldDay
	FieldStartHour
	FieldStartMinute
	FieldEndHour
	FieldEndMinute
)

// IsStart reports whether the field belongs to the start of the range.
func (f Field) IsStart() bool {
	return f == FieldStartHour || f == FieldStartMinute
}

// IsTime reports whether the field is one of the four hour/minute inputs.
func (f Field) IsTime() bool {
	return f >= FieldStartHour && f <= FieldEndMinute
}

// Entry says which focus catcher the keyboard entered the dialog through.
type Entry int

const (
	// EntryBefore means focus arrived from before the dialog in tab order.
	EntryBefore Entry = iota
	// EntryAfter means focus arrived from after the dialog in tab order.
	EntryAfter
)

// Values mirrors the dialog's inputs. Time fields hold zero-padded two-digit
// text; term and day hold canonical lowercase values.
type Values struct {
	Week        string
	Term        string
	Day         string
	StartHour   string
	StartMinute string
	EndHour     string
	EndMinute   string
}

// Editor owns the values shown in a time-range dialog and keeps them
// consistent as individual fields change. It never reaches back into the
// presentation layer: every accepted or reverted edit is pushed out through
// the apply callback supplied at construction, and the owner is responsible
// for re-rendering the inputs and updating its session from the values.
type Editor struct {
	vals  Values
	apply func(Values)
}

// NewEditor creates an editor seeded with the current field values. apply is
// invoked after every edit, including reverts, with the full normalized
// value set.
func NewEditor(initial Values, apply func(Values)) *Editor {
	return &Editor{vals: initial, apply: apply}
}

// Values returns the current (last known-good) field values.
func (ed *Editor) Values() Values {
	return ed.vals
}

// EntryField returns the field to focus when the dialog is entered through
// the given focus catcher, so tab order flows through the dialog naturally.
func (ed *Editor) EntryField(e Entry) Field {
	if e == EntryAfter {
		return FieldEndMinute
	}
	return FieldWeek
}

// WeekChanged handles an edit to the week field. A value that does not parse
// as an integer is reverted to the last valid value; the time fields are
// never touched.
func (ed *Editor) WeekChanged(raw string) {
	if _, err := ParseField(raw); err != nil {
		ed.apply(ed.vals)
		return
	}
	ed.vals.Week = raw
	ed.apply(ed.vals)
}

// TermChanged records a new term selection.
func (ed *Editor) TermChanged(term string) {
	ed.vals.Term = term
	ed.apply(ed.vals)
}

// DayChanged records a new day selection.
func (ed *Editor) DayChanged(day string) {
	ed.vals.Day = day
	ed.apply(ed.vals)
}

// TimeChanged handles an edit to one of the four hour/minute fields and
// reconciles the whole range. An unparseable value reverts that field; a
// parseable one is run through Adjust so that moving the start drags the end
// with it and the range can never become empty or inverted. The normalized,
// zero-padded result is pushed through apply.
func (ed *Editor) TimeChanged(f Field, raw string) {
	if !f.IsTime() {
		return
	}

	if _, err := ParseField(raw); err != nil {
		// Revert the offending field; nothing else moves.
		ed.apply(ed.vals)
		return
	}

	oldFrom := ed.currentFrom()

	next := ed.vals
	switch f {
	case FieldStartHour:
		next.StartHour = raw
	case FieldStartMinute:
		next.StartMinute = raw
	case FieldEndHour:
		next.EndHour = raw
	case FieldEndMinute:
		next.EndMinute = raw
	}

	from := Minutes(mustParse(next.StartHour), mustParse(next.StartMinute))
	to := Minutes(mustParse(next.EndHour), mustParse(next.EndMinute))

	from, to = Adjust(oldFrom, from, to)

	fh, fm := Split(from)
	th, tm := Split(to)
	next.StartHour = ZeroPad(fh)
	next.StartMinute = ZeroPad(fm)
	next.EndHour = ZeroPad(th)
	next.EndMinute = ZeroPad(tm)

	ed.vals = next
	ed.apply(ed.vals)
}

func (ed *Editor) currentFrom() int {
	return Minutes(mustParse(ed.vals.StartHour), mustParse(ed.vals.StartMinute))
}

// mustParse is for stored values, which are only ever written back in
// normalized form and therefore always parse.
func mustParse(s string) int {
	n, err := ParseField(s)
	if err != nil {
		return 0
	}
	return n
}
