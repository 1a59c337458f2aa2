package dialog

import "sync"

// popupGap separates a popup from the right edge of its anchor.
const popupGap = 10

// Rect is an axis-aligned rectangle in presentation coordinates.
type Rect struct {
	Top, Left     float64
	Width, Height float64
}

// Bottom returns the y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// EventSource delivers presentation events such as window resizes or
// container scrolls. Subscribe registers a listener and returns the function
// that removes it again.
type EventSource interface {
	Subscribe(fn func()) (cancel func())
}

// Signal is a basic fan-out EventSource for hosts to emit resize and scroll
// notifications through.
type Signal struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// Subscribe registers fn and returns its cancel function.
func (s *Signal) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Emit invokes every registered listener.
func (s *Signal) Emit() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// PopupConfig wires an anchored popup to its surroundings. Anchor reports
// the current bounds of the trigger element, Container the visible bounds of
// the designated scroll container. Position applies a computed placement.
type PopupConfig struct {
	Anchor    func() Rect
	Container func() Rect
	Width     float64
	Height    float64
	Position  func(top, left float64)
	Resize    EventSource
	Scroll    EventSource
	// FadeOut, when set, animates the popup away before close completes.
	// It must call done when finished.
	FadeOut func(done func())
	// OnClose is invoked once, after all listeners have been released.
	OnClose func()
}

// Popup is a dialog anchored adjacent to a trigger element. It follows the
// trigger on resize and scroll, and dismisses itself when the trigger moves
// outside the visible bounds of the scroll container rather than being left
// floating at a stale position.
type Popup struct {
	cfg            PopupConfig
	mgr            *Manager
	cancels        []func()
	removeBackdrop func()

	mu     sync.Mutex
	closed bool
}

// Reposition recomputes the popup's placement against the current anchor
// bounds. When the anchor has scrolled out of the container the popup is
// faded out and closed instead.
func (p *Popup) Reposition() {
	anchor := p.cfg.Anchor()
	container := p.cfg.Container()

	if anchor.Top < container.Top || anchor.Bottom() > container.Bottom() {
		p.closeAnimated()
		return
	}

	top := anchor.Top - (p.cfg.Height/2 - anchor.Height/2)
	left := anchor.Right() + popupGap
	if p.cfg.Position != nil {
		p.cfg.Position(top, left)
	}
}

func (p *Popup) closeAnimated() {
	if p.cfg.FadeOut != nil {
		p.cfg.FadeOut(p.Close)
		return
	}
	p.Close()
}

// Close tears the popup down: backdrop removed, resize and scroll listeners
// released, owner notified. Every exit path, including programmatic removal,
// funnels through here; closing twice is a no-op.
func (p *Popup) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
	if p.removeBackdrop != nil {
		p.removeBackdrop()
	}
	if p.mgr != nil {
		p.mgr.clearPopup(p)
	}
	if p.cfg.OnClose != nil {
		p.cfg.OnClose()
	}
}
