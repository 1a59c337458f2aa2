package series

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mpryce/ttedit/internal/dialog"
	"github.com/mpryce/ttedit/internal/service"
)

// State is the expansion state of a series panel.
type State int

const (
	// Collapsed means the series has never been loaded and is hidden.
	Collapsed State = iota
	// Loading means the one permitted fetch is in flight.
	Loading
	// Loaded means events are cached; re-expanding never refetches.
	Loaded
	// LoadFailed means the last fetch failed and a retry is offered.
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Hooks let the presentation layer react to controller activity. All hooks
// are optional and are invoked outside the controller's lock.
type Hooks struct {
	// StateChanged fires on every expansion state transition.
	StateChanged func(State)
	// SeriesLoaded fires when a fetch completes and sessions exist.
	SeriesLoaded func(*Series)
	// DirtyChanged fires when the aggregate unsaved-changes signal flips;
	// it drives the save/cancel affordance.
	DirtyChanged func(bool)
	// Blur is asked to defocus whatever field is being edited.
	Blur func()
}

// Config wires a controller to its collaborators. Saver and Dialogs may be
// nil for a series that is not writable.
type Config struct {
	SeriesID string
	Writable bool
	Loader   Loader
	Saver    Saver
	Dialogs  *dialog.Manager
	Logger   *zap.Logger
	Hooks    Hooks
}

// Controller runs one series' expansion state machine. Events are fetched
// lazily on the first expansion and cached; collapse hides presentation
// state only and never discards loaded sessions. At most one fetch is
// outstanding at any time.
type Controller struct {
	cfg Config

	mu         sync.Mutex
	state      State
	expanded   bool
	generation uuid.UUID
	series     *Series
}

// NewController creates a collapsed controller for one series.
func NewController(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Controller{cfg: cfg}
}

// Expand reveals the series. The first expansion starts the fetch; an
// expansion while loaded simply reveals the cached content, and one while a
// fetch is in flight or failed changes presentation state only.
func (c *Controller) Expand(ctx context.Context) {
	c.mu.Lock()
	c.expanded = true
	if c.state != Collapsed {
		c.mu.Unlock()
		return
	}
	c.startLoadLocked(ctx)
}

// Collapse hides the series without touching loaded sessions or an in-flight
// fetch.
func (c *Controller) Collapse() {
	c.mu.Lock()
	c.expanded = false
	c.mu.Unlock()
}

// Retry restarts the fetch after a failure. It is a no-op in any other
// state, which is what keeps overlapping requests impossible.
func (c *Controller) Retry(ctx context.Context) {
	c.mu.Lock()
	if c.state != LoadFailed {
		c.mu.Unlock()
		return
	}
	c.startLoadLocked(ctx)
}

// startLoadLocked is entered holding c.mu and releases it.
func (c *Controller) startLoadLocked(ctx context.Context) {
	c.state = Loading
	gen := uuid.New()
	c.generation = gen
	c.mu.Unlock()

	c.notifyState(Loading)

	go func() {
		frag, err := c.cfg.Loader.ListEvents(ctx, c.cfg.SeriesID, c.cfg.Writable)
		c.complete(gen, frag, err)
	}()
}

func (c *Controller) complete(gen uuid.UUID, frag *service.Fragment, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.cfg.Logger.Warn("discarding stale fetch response",
			zap.String("series_id", c.cfg.SeriesID),
			zap.String("generation", gen.String()))
		return
	}

	if err != nil {
		c.state = LoadFailed
		c.mu.Unlock()
		c.cfg.Logger.Warn("series fetch failed",
			zap.String("series_id", c.cfg.SeriesID),
			zap.Error(err))
		c.notifyState(LoadFailed)
		return
	}

	ser, buildErr := newSeries(frag, c.cfg.Saver, c.cfg.Dialogs, c.cfg.Logger, c.cfg.Hooks)
	if buildErr != nil {
		c.state = LoadFailed
		c.mu.Unlock()
		c.cfg.Logger.Error("series build failed",
			zap.String("series_id", c.cfg.SeriesID),
			zap.Error(buildErr))
		c.notifyState(LoadFailed)
		return
	}

	c.series = ser
	c.state = Loaded
	c.mu.Unlock()

	c.cfg.Logger.Info("series loaded",
		zap.String("series_id", c.cfg.SeriesID),
		zap.Int("events", len(frag.Events)))

	c.notifyState(Loaded)
	if c.cfg.Hooks.SeriesLoaded != nil {
		c.cfg.Hooks.SeriesLoaded(ser)
	}
}

func (c *Controller) notifyState(s State) {
	if c.cfg.Hooks.StateChanged != nil {
		c.cfg.Hooks.StateChanged(s)
	}
}

// State returns the current expansion state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Expanded reports whether the series is currently revealed.
func (c *Controller) Expanded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// Series returns the loaded session set, or nil before the first successful
// fetch.
func (c *Controller) Series() *Series {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.series
}
