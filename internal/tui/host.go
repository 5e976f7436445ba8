package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NamanBalaji/payouts/internal/common"
)

// ModalHandle is what a parent view gets from Host.Use.
type ModalHandle struct {
	SetShowModal func(bool)
	Render       *DialogRenderer
}

// DialogRenderer draws the mark-duplicate dialog bound to the visibility and
// commission it was created for. A parent view can compare renderer pointers
// to skip redrawing.
type DialogRenderer struct {
	host       *Host
	visible    bool
	commission *common.Commission
}

// Visible reports whether the renderer draws anything.
func (r *DialogRenderer) Visible() bool {
	return r.visible && r.host.dialog != nil
}

// View renders the dialog, or an empty string when hidden.
func (r *DialogRenderer) View() string {
	if !r.Visible() {
		return ""
	}

	return r.host.dialog.View()
}

// Update forwards msg to the dialog.
func (r *DialogRenderer) Update(msg tea.Msg) tea.Cmd {
	return r.host.Update(msg)
}

// Host owns the mark-duplicate dialog's visibility. The dialog itself is
// created when it is shown and dropped when it is hidden, so every opening
// starts from a fresh execution state.
type Host struct {
	deps       DialogDeps
	show       bool
	commission *common.Commission
	dialog     *MarkDuplicateDialog
	renderer   *DialogRenderer
	width      int
}

func NewHost(deps DialogDeps) *Host {
	return &Host{deps: deps}
}

// Use binds the host to a commission and returns the handle for the current
// state. The returned renderer is the same pointer as long as neither the
// visibility nor the commission pointer changed since the previous call.
func (h *Host) Use(c *common.Commission) ModalHandle {
	if c != h.commission {
		h.commission = c
		if h.show && c != nil {
			h.dialog = h.newDialog(c)
		}
	}

	if h.renderer == nil || h.renderer.visible != h.show || h.renderer.commission != c {
		h.renderer = &DialogRenderer{host: h, visible: h.show, commission: c}
	}

	return ModalHandle{SetShowModal: h.SetShowModal, Render: h.renderer}
}

// SetShowModal shows or hides the dialog.
func (h *Host) SetShowModal(show bool) {
	if show == h.show {
		return
	}

	h.show = show
	if show && h.commission != nil {
		h.dialog = h.newDialog(h.commission)
		return
	}

	h.dialog = nil
}

// Visible reports whether the dialog is shown.
func (h *Host) Visible() bool {
	return h.show && h.dialog != nil
}

// Update forwards msg to the dialog, if there is one.
func (h *Host) Update(msg tea.Msg) tea.Cmd {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		h.width = ws.Width
	}

	if h.dialog == nil {
		return nil
	}

	return h.dialog.Update(msg)
}

func (h *Host) newDialog(c *common.Commission) *MarkDuplicateDialog {
	d := newMarkDuplicateDialog(h.deps, c, h.SetShowModal)
	if h.width > 0 {
		d.Update(tea.WindowSizeMsg{Width: h.width})
	}

	return d
}
