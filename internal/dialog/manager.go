// Package dialog owns modal and anchored-popup lifecycles for the event
// panel. A single Manager, owned by the application root, is the only place
// dialogs are opened and closed from: it tracks at most one active modal and
// one active anchored popup, inserts the translucent backdrop behind each,
// and guarantees every registered listener is released on every exit path.
package dialog

import (
	"errors"
	"sync"
)

// ErrModalActive is returned when a modal is opened while another is still
// showing. Modals are blocking; a second one must not be offered.
var ErrModalActive = errors.New("dialog: a modal is already active")

// Host is the presentation surface the manager mutates. InsertBackdrop puts
// a translucent backdrop element behind the dialog being opened and returns
// a function that removes it again.
type Host interface {
	InsertBackdrop(onClick func()) (remove func())
}

// Manager tracks the active dialogs. Open and close calls are safe to make
// from network-completion callbacks as well as user-input handlers.
type Manager struct {
	mu    sync.Mutex
	host  Host
	modal *Modal
	popup *Popup
}

// NewManager creates a manager rendering onto host.
func NewManager(host Host) *Manager {
	return &Manager{host: host}
}

// OpenModal shows a modal dialog behind a backdrop. A click on the backdrop
// requests closure; the modal honors it only when cfg.CanClose allows. At
// most one modal may be active at a time.
func (m *Manager) OpenModal(cfg ModalConfig) (*Modal, error) {
	m.mu.Lock()
	if m.modal != nil {
		m.mu.Unlock()
		return nil, ErrModalActive
	}
	md := &Modal{cfg: cfg, mgr: m}
	m.modal = md
	m.mu.Unlock()

	md.removeBackdrop = m.host.InsertBackdrop(md.RequestClose)
	return md, nil
}

// OpenPopup shows an anchored popup, dismissing any popup already showing.
// The popup subscribes to window resize and to scroll of its designated
// container, repositioning itself on both.
func (m *Manager) OpenPopup(cfg PopupConfig) *Popup {
	m.ClosePopup()

	p := &Popup{cfg: cfg, mgr: m}

	m.mu.Lock()
	m.popup = p
	m.mu.Unlock()

	p.removeBackdrop = m.host.InsertBackdrop(p.Close)
	if cfg.Resize != nil {
		p.cancels = append(p.cancels, cfg.Resize.Subscribe(p.Reposition))
	}
	if cfg.Scroll != nil {
		p.cancels = append(p.cancels, cfg.Scroll.Subscribe(p.Reposition))
	}
	p.Reposition()
	return p
}

// ClosePopup dismisses the active popup, if any.
func (m *Manager) ClosePopup() {
	m.mu.Lock()
	p := m.popup
	m.mu.Unlock()
	if p != nil {
		p.Close()
	}
}

// ActivePopup returns the popup currently showing, or nil.
func (m *Manager) ActivePopup() *Popup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.popup
}

// ActiveModal returns the modal currently showing, or nil.
func (m *Manager) ActiveModal() *Modal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal
}

func (m *Manager) clearModal(md *Modal) {
	m.mu.Lock()
	if m.modal == md {
		m.modal = nil
	}
	m.mu.Unlock()
}

func (m *Manager) clearPopup(p *Popup) {
	m.mu.Lock()
	if m.popup == p {
		m.popup = nil
	}
	m.mu.Unlock()
}
