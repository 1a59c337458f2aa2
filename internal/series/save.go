package series

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/form"
	"github.com/mpryce/ttedit/internal/service"
)

// ErrSaveInProgress is returned when a save is attempted while one is
// already outstanding. The progress modal normally makes this unreachable
// from the UI.
var ErrSaveInProgress = errors.New("series: save already in progress")

// SavePhase is the lifecycle of one save attempt.
type SavePhase int

const (
	// SaveInFlight means the POST is outstanding and the modal refuses to
	// close.
	SaveInFlight SavePhase = iota
	// SaveSucceeded means the session set has been rebuilt from the
	// response.
	SaveSucceeded
	// SaveFailed means the POST failed; local edits are untouched and the
	// modal is dismissible.
	SaveFailed
)

// SaveHooks let the presentation layer follow a save attempt.
type SaveHooks struct {
	PhaseChanged     func(SavePhase)
	SessionsReplaced func()
}

// Save submits every session's current fields (not a diff) to the series'
// save endpoint in one combined request, behind a blocking progress modal.
// The coordinator is created lazily here and discarded when the attempt
// completes, so a retry after failure starts a fresh one.
func (s *Series) Save(ctx context.Context, hooks SaveHooks) (*SaveCoordinator, error) {
	s.mu.Lock()
	if s.coordinator != nil {
		s.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	sc := &SaveCoordinator{series: s, hooks: hooks}
	s.coordinator = sc
	s.mu.Unlock()

	if err := sc.run(ctx); err != nil {
		s.discardCoordinator(sc)
		return nil, err
	}
	return sc, nil
}

func (s *Series) discardCoordinator(sc *SaveCoordinator) {
	s.mu.Lock()
	if s.coordinator == sc {
		s.coordinator = nil
	}
	s.mu.Unlock()
}

// SaveCoordinator drives one batch-save attempt: payload assembly, the
// progress modal, the POST, and the wholesale session replacement on
// success.
type SaveCoordinator struct {
	series *Series
	hooks  SaveHooks

	mu         sync.Mutex
	phase      SavePhase
	modal      *dialog.Modal
	generation uuid.UUID
}

func (sc *SaveCoordinator) run(ctx context.Context) error {
	payload := form.EventSet(sc.series.remoteForms())
	savePath := sc.series.SavePath()

	modal, err := sc.series.dialogs.OpenModal(dialog.ModalConfig{
		CanClose: sc.dismissible,
		OnClose:  sc.onModalClosed,
	})
	if err != nil {
		return err
	}

	sc.mu.Lock()
	sc.modal = modal
	sc.phase = SaveInFlight
	gen := uuid.New()
	sc.generation = gen
	sc.mu.Unlock()

	sc.notify(SaveInFlight)

	go func() {
		frag, saveErr := sc.series.saver.SaveEvents(ctx, savePath, payload)
		sc.complete(gen, frag, saveErr)
	}()
	return nil
}

// dismissible makes the modal non-dismissible exactly while the request is
// outstanding.
func (sc *SaveCoordinator) dismissible() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.phase != SaveInFlight
}

func (sc *SaveCoordinator) complete(gen uuid.UUID, frag *service.Fragment, err error) {
	sc.mu.Lock()
	if gen != sc.generation {
		sc.mu.Unlock()
		sc.series.logger.Warn("discarding stale save response")
		return
	}

	if err != nil {
		sc.phase = SaveFailed
		sc.mu.Unlock()
		sc.series.logger.Warn("batch save failed", zap.Error(err))
		sc.notify(SaveFailed)
		return
	}

	modal := sc.modal
	sc.mu.Unlock()

	if replaceErr := sc.series.replaceFrom(frag); replaceErr != nil {
		sc.mu.Lock()
		sc.phase = SaveFailed
		sc.mu.Unlock()
		sc.series.logger.Error("rebuilding sessions from save response failed",
			zap.Error(replaceErr))
		sc.notify(SaveFailed)
		return
	}

	sc.mu.Lock()
	sc.phase = SaveSucceeded
	sc.mu.Unlock()

	sc.series.logger.Info("batch save succeeded",
		zap.Int("events", len(frag.Events)))

	sc.notify(SaveSucceeded)
	if sc.hooks.SessionsReplaced != nil {
		sc.hooks.SessionsReplaced()
	}
	modal.Close()
}

// Dismiss closes the error modal after a failed attempt. While the request
// is still outstanding the request is refused, as with backdrop clicks.
func (sc *SaveCoordinator) Dismiss() {
	sc.mu.Lock()
	modal := sc.modal
	sc.mu.Unlock()
	if modal != nil {
		modal.RequestClose()
	}
}

// Phase returns the attempt's current phase.
func (sc *SaveCoordinator) Phase() SavePhase {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.phase
}

func (sc *SaveCoordinator) onModalClosed() {
	// Whatever closed the modal, the attempt is over; on failure the
	// sessions and their dirty state were never touched, so the user can
	// retry without re-entering anything.
	sc.series.discardCoordinator(sc)
}

func (sc *SaveCoordinator) notify(p SavePhase) {
	if sc.hooks.PhaseChanged != nil {
		sc.hooks.PhaseChanged(p)
	}
}
