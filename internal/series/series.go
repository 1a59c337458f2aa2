// Package series holds the per-series editing state: the ordered set of
// event edit sessions, the expansion state machine that lazily loads them,
// and the coordinator that commits them back in one batch.
package series

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/service"
	"github.com/mpryce/ttedit/internal/session"
)

// Loader fetches the event fragment for a series.
type Loader interface {
	ListEvents(ctx context.Context, seriesID string, writable bool) (*service.Fragment, error)
}

// Saver posts the combined event payload to a series' save endpoint and
// returns the fresh fragment from the response.
type Saver interface {
	SaveEvents(ctx context.Context, savePath string, payload url.Values) (*service.Fragment, error)
}

// Series owns the edit sessions created from one successful load. Sessions
// are only ever discarded wholesale, when a save response replaces the whole
// set; there is no partial removal.
type Series struct {
	mu       sync.Mutex
	savePath string
	sessions []*session.Session
	dirty    bool

	saver   Saver
	dialogs *dialog.Manager
	logger  *zap.Logger
	hooks   Hooks

	coordinator *SaveCoordinator
}

func newSeries(frag *service.Fragment, saver Saver, dialogs *dialog.Manager, logger *zap.Logger, hooks Hooks) (*Series, error) {
	s := &Series{
		savePath: frag.SavePath,
		saver:    saver,
		dialogs:  dialogs,
		logger:   logger,
		hooks:    hooks,
	}
	if err := s.buildSessions(frag); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Series) buildSessions(frag *service.Fragment) error {
	sessions := make([]*session.Session, 0, len(frag.Events))
	for _, rec := range frag.Events {
		sess := session.New(rec, s.recomputeDirty)
		if err := sess.CaptureBaseline(); err != nil {
			return err
		}
		sessions = append(sessions, sess)
	}
	s.mu.Lock()
	s.sessions = sessions
	if frag.SavePath != "" {
		s.savePath = frag.SavePath
	}
	s.mu.Unlock()
	return nil
}

// Sessions returns the current session set in order.
func (s *Series) Sessions() []*session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*session.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// SavePath returns the batch-save endpoint announced by the loaded fragment.
func (s *Series) SavePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePath
}

// HasUnsavedChanges reports whether any session is dirty.
func (s *Series) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// CancelAll discards every session's edits without any network interaction
// and blurs whatever field is currently being edited.
func (s *Series) CancelAll() {
	for _, sess := range s.Sessions() {
		sess.Reset()
	}
	if s.hooks.Blur != nil {
		s.hooks.Blur()
	}
}

// recomputeDirty re-evaluates the aggregate dirty signal after any field
// change on any session. The DirtyChanged hook fires only on transitions, so
// the save/cancel affordance is shown and hidden exactly once per flip.
func (s *Series) recomputeDirty() {
	s.mu.Lock()
	dirty := false
	for _, sess := range s.sessions {
		d, err := sess.IsDirty()
		if err != nil {
			// Session without a baseline in the set is a broken invariant.
			s.mu.Unlock()
			panic(err)
		}
		if d {
			dirty = true
			break
		}
	}
	changed := dirty != s.dirty
	s.dirty = dirty
	s.mu.Unlock()

	if changed && s.hooks.DirtyChanged != nil {
		s.hooks.DirtyChanged(dirty)
	}
}

func (s *Series) remoteForms() []map[string]string {
	sessions := s.Sessions()
	forms := make([]map[string]string, len(sessions))
	for i, sess := range sessions {
		forms[i] = sess.RemoteForm()
	}
	return forms
}

// replaceFrom discards the whole session set and rebuilds it from a fresh
// server fragment, so the panel reflects exactly what was persisted.
func (s *Series) replaceFrom(frag *service.Fragment) error {
	if err := s.buildSessions(frag); err != nil {
		return err
	}
	s.recomputeDirty()
	return nil
}
