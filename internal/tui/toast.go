package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/NamanBalaji/payouts/internal/tui/styles"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toaster holds the single visible notification. It satisfies
// workflow.Notifier and is only touched from the UI loop.
type toaster struct {
	id       uuid.UUID
	kind     toastKind
	message  string
	visible  bool
	duration time.Duration
	// armed is set when a toast was shown and its hide timer has not been scheduled yet.
	armed bool
}

func newToaster(duration time.Duration) *toaster {
	return &toaster{duration: duration}
}

func (t *toaster) Success(msg string) { t.show(toastSuccess, msg) }

func (t *toaster) Error(msg string) { t.show(toastError, msg) }

func (t *toaster) show(kind toastKind, msg string) {
	t.id = uuid.New()
	t.kind = kind
	t.message = msg
	t.visible = true
	t.armed = true
}

// timer returns the command that hides the current toast, once per toast.
func (t *toaster) timer() tea.Cmd {
	if !t.armed {
		return nil
	}
	t.armed = false

	id := t.id
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{id: id}
	})
}

func (t *toaster) hide(id uuid.UUID) {
	if t.id == id {
		t.visible = false
	}
}

func (t *toaster) View(width int) string {
	if !t.visible {
		return ""
	}

	color := styles.Green
	if t.kind == toastError {
		color = styles.Red
	}

	return styles.ToastStyle.
		BorderForeground(color).
		Foreground(color).
		Width(min(width, 70)).
		Align(lipgloss.Center).
		Render(t.message)
}
