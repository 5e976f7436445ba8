package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/NamanBalaji/payouts/internal/action"
	"github.com/NamanBalaji/payouts/internal/common"
)

// Message types for the TUI
type (
	// commissionsLoadedMsg is sent when the commission list was loaded
	commissionsLoadedMsg struct {
		commissions []*common.Commission
		err         error
	}

	// payoutsLoadedMsg is sent when the payout list was loaded
	payoutsLoadedMsg struct {
		payouts []*common.Payout
		err     error
	}

	// markResultMsg carries the outcome of the mark-duplicate mutation
	markResultMsg struct {
		commissionID string
		result       action.Result
	}

	// invalidatedMsg is sent once the caches affected by a mutation were refreshed
	invalidatedMsg struct {
		commissionID string
		err          error
	}

	// toastTimeoutMsg is sent when a notification should be hidden
	toastTimeoutMsg struct {
		id uuid.UUID
	}
)

// Run starts the TUI application
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
