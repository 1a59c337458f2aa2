package dialog

import "sync"

// ModalConfig describes a blocking dialog. CanClose decides whether a close
// request (typically a backdrop click) is honored; a nil CanClose always
// honors requests. OnClose is invoked once when the modal actually closes.
type ModalConfig struct {
	CanClose func() bool
	OnClose  func()
}

// Modal is a blocking dialog behind a backdrop. Unlike a popup it may refuse
// closure: the save-progress dialog refuses while its request is
// outstanding, which is what makes the save non-dismissible.
type Modal struct {
	cfg            ModalConfig
	mgr            *Manager
	removeBackdrop func()

	mu     sync.Mutex
	closed bool
}

// RequestClose asks the modal to close. The modal decides whether to honor
// the request.
func (m *Modal) RequestClose() {
	if m.cfg.CanClose != nil && !m.cfg.CanClose() {
		return
	}
	m.Close()
}

// Close dismisses the modal unconditionally, removing the backdrop and
// releasing the manager slot. Closing twice is a no-op.
func (m *Modal) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	if m.removeBackdrop != nil {
		m.removeBackdrop()
	}
	if m.mgr != nil {
		m.mgr.clearModal(m)
	}
	if m.cfg.OnClose != nil {
		m.cfg.OnClose()
	}
}
