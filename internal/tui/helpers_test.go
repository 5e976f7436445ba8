package tui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/payouts/internal/cache"
	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/repository"
	"github.com/NamanBalaji/payouts/internal/workflow"
)

// fakeBackend stands in for the API, the cache invalidator and the notifier,
// recording every call in one ordered event log.
type fakeBackend struct {
	mu          sync.Mutex
	events      []string
	marks       [][2]string
	prefixes    [][]string
	markErr     error
	commissions []common.Commission
	payouts     []common.Payout
}

func (f *fakeBackend) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeBackend) MarkCommissionDuplicate(_ context.Context, workspaceID, commissionID, _ string) error {
	f.record("mark")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marks = append(f.marks, [2]string{workspaceID, commissionID})
	return f.markErr
}

func (f *fakeBackend) MutatePrefix(_ context.Context, prefixes ...string) ([]string, error) {
	f.record("invalidate")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefixes)
	return prefixes, nil
}

func (f *fakeBackend) Success(string) { f.record("success") }

func (f *fakeBackend) Error(string) { f.record("error") }

func (f *fakeBackend) ListCommissions(context.Context, string, string) ([]common.Commission, error) {
	return f.commissions, nil
}

func (f *fakeBackend) ListPayouts(context.Context, string, string) ([]common.Payout, error) {
	return f.payouts, nil
}

func (f *fakeBackend) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

var errRejected = errors.New("rejected")

func newTestDeps(f *fakeBackend, workspaceID, programID string) DialogDeps {
	return DialogDeps{
		Context:     context.Background(),
		Workflow:    workflow.New(f, f, f),
		Notifier:    f,
		WorkspaceID: workspaceID,
		ProgramID:   programID,
		Location:    time.UTC,
	}
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	repo, err := repository.NewBoltRepository(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return cache.New(repo)
}

func testCommission() *common.Commission {
	return &common.Commission{
		ID:        "cm_1",
		CreatedAt: time.Date(2024, time.March, 7, 15, 4, 0, 0, time.UTC),
		Amount:    12345,
		Earnings:  500,
		Type:      common.TypeSale,
		Status:    common.StatusPending,
		Customer:  &common.Customer{Name: "Ada"},
		Partner:   &common.Partner{Name: "Acme"},
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// collect runs cmd and any batched commands it produces, returning the
// resulting messages. Commands that take longer than a tick are not expected
// in the paths under test.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}

	if msg == nil {
		return nil
	}

	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}
