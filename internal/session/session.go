// Package session wraps one event's fields with change tracking against a
// baseline captured at load time.
package session

import (
	"errors"

	"github.com/mpryce/ttedit/internal/model"
)

// These indicate broken invariants in the calling code, not user errors, and
// callers are expected to abort the operation rather than continue.
var (
	// ErrBaselineAlreadySet is returned when CaptureBaseline is called twice.
	ErrBaselineAlreadySet = errors.New("session: baseline already captured")
	// ErrNoBaseline is returned when dirtiness is queried before a baseline
	// has been captured.
	ErrNoBaseline = errors.New("session: no baseline captured")
)

// Session is the editable, change-tracked wrapper around one event. It holds
// a live record plus an immutable snapshot of the record as it was loaded.
// Sessions know nothing about the series that owns them; edits are reported
// through the onChange callback supplied at construction.
type Session struct {
	current     model.EventRecord
	original    model.EventRecord
	hasBaseline bool
	onChange    func()
}

// New creates a session around the supplied field values. No baseline is
// captured yet; onChange may be nil.
func New(fields model.EventRecord, onChange func()) *Session {
	return &Session{current: fields, onChange: onChange}
}

// CaptureBaseline freezes the current field values as the session's original
// state. It may be called exactly once per session lifetime.
func (s *Session) CaptureBaseline() error {
	if s.hasBaseline {
		return ErrBaselineAlreadySet
	}
	s.original = s.current
	s.hasBaseline = true
	return nil
}

// HasBaseline reports whether CaptureBaseline has been called.
func (s *Session) HasBaseline() bool {
	return s.hasBaseline
}

// Current returns a copy of the live field values.
func (s *Session) Current() model.EventRecord {
	return s.current
}

// Original returns a copy of the baseline field values.
func (s *Session) Original() model.EventRecord {
	return s.original
}

// Set merges an edit into the live record and emits a change notification.
func (s *Session) Set(mutate func(*model.EventRecord)) {
	mutate(&s.current)
	if s.onChange != nil {
		s.onChange()
	}
}

// IsDirty reports whether the live record differs from the baseline.
func (s *Session) IsDirty() (bool, error) {
	if !s.hasBaseline {
		return false, ErrNoBaseline
	}
	return s.current != s.original, nil
}

// Reset restores the live record to the baseline. Consumers of the dirty
// flag see the effect only when they next query.
func (s *Session) Reset() {
	s.current = s.original
	if s.onChange != nil {
		s.onChange()
	}
}

// RemoteForm returns the live record mapped onto the edit endpoint's field
// names. It is pure; calling it never mutates the session.
func (s *Session) RemoteForm() map[string]string {
	return s.current.RemoteForm()
}
