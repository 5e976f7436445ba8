package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/workflow"
)

func newTestModel(t *testing.T, f *fakeBackend) Model {
	t.Helper()

	return NewModel(Options{
		Context:       context.Background(),
		Source:        f,
		Cache:         newTestCache(t),
		Workflow:      workflow.New(f, f, f),
		WorkspaceID:   "ws_1",
		ProgramID:     "prog_1",
		Location:      time.UTC,
		ToastDuration: time.Millisecond,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func loaded(t *testing.T, f *fakeBackend) Model {
	t.Helper()
	m := newTestModel(t, f)

	m, _ = update(t, m, m.loadCommissions()())
	m, _ = update(t, m, m.loadPayouts()())

	return m
}

func TestModel_LoadsLists(t *testing.T) {
	older := *testCommission()
	older.ID = "cm_old"
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)

	f := &fakeBackend{
		commissions: []common.Commission{older, *testCommission()},
		payouts:     []common.Payout{{ID: "po_1", PartnerID: "pn_1", Amount: 1000, Status: common.PayoutPending}},
	}

	m := loaded(t, f)

	require.Len(t, m.commissions, 2)
	assert.Equal(t, "cm_1", m.commissions[0].ID, "newest first")
	assert.Len(t, m.payouts, 1)
	assert.Contains(t, m.View(), "Commissions (2)")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(Options{
		Source:   &fakeBackend{},
		Cache:    newTestCache(t),
		Workflow: workflow.New(&fakeBackend{}, &fakeBackend{}, &fakeBackend{}),
	})

	m, _ = update(t, m, commissionsLoadedMsg{err: errRejected})
	assert.Contains(t, m.errorMsg, "Failed to load commissions")
}

func TestModel_MarkDuplicateFlow(t *testing.T) {
	f := &fakeBackend{commissions: []common.Commission{*testCommission()}}
	m := loaded(t, f)

	m, _ = update(t, m, keyPress("d"))
	require.True(t, m.modal.Render.Visible())
	assert.Contains(t, m.View(), "Mark commission as duplicate")

	m, cmd := update(t, m, keyPress("enter"))
	result, ok := findMsg[markResultMsg](collect(cmd))
	require.True(t, ok)

	m, cmd = update(t, m, result)
	assert.True(t, m.toast.visible)
	assert.Equal(t, workflow.SuccessMessage, m.toast.message)
	assert.True(t, m.modal.Render.Visible())

	msgs := collect(cmd)
	invalidated, ok := findMsg[invalidatedMsg](msgs)
	require.True(t, ok)
	_, ok = findMsg[toastTimeoutMsg](msgs)
	assert.True(t, ok, "toast hides itself")

	m, cmd = update(t, m, invalidated)
	assert.False(t, m.modal.Render.Visible())
	assert.Nil(t, m.dialogFor)
	assert.Equal(t, []string{"mark", "invalidate"}, f.eventLog(), "the dashboard notifies through its own toaster")

	_, ok = findMsg[commissionsLoadedMsg](collect(cmd))
	assert.True(t, ok, "lists reload after invalidation")
}

func TestModel_DialogCapturesKeys(t *testing.T) {
	f := &fakeBackend{commissions: []common.Commission{*testCommission()}}
	m := loaded(t, f)

	m, _ = update(t, m, keyPress("d"))
	m, _ = update(t, m, keyPress("q"))

	assert.False(t, m.quitting, "q goes to the dialog while it is open")
	assert.True(t, m.modal.Render.Visible())

	m, _ = update(t, m, keyPress("esc"))
	assert.False(t, m.modal.Render.Visible())

	m, cmd := update(t, m, keyPress("q"))
	assert.True(t, m.quitting)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_AlreadyDuplicate(t *testing.T) {
	c := *testCommission()
	c.Status = common.StatusDuplicate
	m := loaded(t, &fakeBackend{commissions: []common.Commission{c}})

	m, _ = update(t, m, keyPress("d"))

	assert.False(t, m.modal.Render.Visible())
	assert.True(t, m.toast.visible)
	assert.Equal(t, toastError, m.toast.kind)
}

func TestModel_Navigation(t *testing.T) {
	a, b := *testCommission(), *testCommission()
	b.ID = "cm_2"
	b.CreatedAt = a.CreatedAt.Add(-time.Minute)
	m := loaded(t, &fakeBackend{commissions: []common.Commission{a, b}})

	m, _ = update(t, m, keyPress("j"))
	assert.Equal(t, "cm_2", m.selectedCommission().ID)

	m, _ = update(t, m, keyPress("j"))
	assert.Equal(t, 1, m.selected[commissionsTab], "selection stops at the end")

	m, _ = update(t, m, keyPress("k"))
	assert.Equal(t, "cm_1", m.selectedCommission().ID)

	m, _ = update(t, m, keyPress("tab"))
	assert.Equal(t, payoutsTab, m.activeTab)

	m, _ = update(t, m, keyPress("d"))
	assert.False(t, m.modal.Render.Visible(), "duplicate is only offered on the commissions list")
}

func TestToaster_HidesOnlyCurrentToast(t *testing.T) {
	toast := newToaster(time.Millisecond)

	toast.Success("first")
	first, ok := findMsg[toastTimeoutMsg](collect(toast.timer()))
	require.True(t, ok)
	assert.Nil(t, toast.timer(), "timer is scheduled once per toast")

	toast.Error("second")
	toast.hide(first.id)
	assert.True(t, toast.visible)
	assert.Contains(t, toast.View(80), "second")
}
