package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/payouts/internal/cache"
	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/logger"
	"github.com/NamanBalaji/payouts/internal/tui/components"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
	"github.com/NamanBalaji/payouts/internal/workflow"
	"github.com/NamanBalaji/payouts/pkg/api"
)

const defaultToastDuration = 3 * time.Second

// tab represents the different lists in the TUI
type tab int

const (
	commissionsTab tab = iota
	payoutsTab
)

// Source loads the lists shown by the dashboard.
type Source interface {
	ListCommissions(ctx context.Context, workspaceID, programID string) ([]common.Commission, error)
	ListPayouts(ctx context.Context, workspaceID, programID string) ([]common.Payout, error)
}

// Options configure the dashboard.
type Options struct {
	Context       context.Context
	Source        Source
	Cache         *cache.Cache
	Workflow      *workflow.Workflow
	WorkspaceID   string
	ProgramID     string
	Location      *time.Location
	ToastDuration time.Duration
}

// Model represents the main TUI state
type Model struct {
	opts        Options
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	activeTab   tab
	commissions []*common.Commission
	payouts     []*common.Payout
	selected    [2]int
	loading     [2]bool
	width       int
	height      int
	errorMsg    string
	toast       *toaster
	host        *Host
	modal       ModalHandle
	dialogFor   *common.Commission
	quitting    bool
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	toast := newToaster(opts.ToastDuration)
	host := NewHost(DialogDeps{
		Context:     opts.Context,
		Workflow:    opts.Workflow,
		Notifier:    toast,
		WorkspaceID: opts.WorkspaceID,
		ProgramID:   opts.ProgramID,
		Location:    opts.Location,
	})

	return Model{
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: s,
		toast:   toast,
		host:    host,
		modal:   host.Use(nil),
		loading: [2]bool{true, true},
		width:   80,
		height:  24,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCommissions(),
		m.loadPayouts(),
		m.spinner.Tick,
	)
}

// Update handles input and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.modal.Render.Visible() {
			cmds = append(cmds, m.modal.Render.Update(msg))
			break
		}

		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m, cmd = m.updateListView(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmds = append(cmds, m.host.Update(msg))

	case commissionsLoadedMsg:
		m.loading[commissionsTab] = false
		if msg.err != nil {
			m.errorMsg = loadError("commissions", msg.err)
			break
		}
		m.errorMsg = ""
		m.commissions = msg.commissions
		m.selected[commissionsTab] = clampIndex(m.selected[commissionsTab], len(m.commissions))

	case payoutsLoadedMsg:
		m.loading[payoutsTab] = false
		if msg.err != nil {
			m.errorMsg = loadError("payouts", msg.err)
			break
		}
		m.payouts = msg.payouts
		m.selected[payoutsTab] = clampIndex(m.selected[payoutsTab], len(m.payouts))

	case markResultMsg:
		cmds = append(cmds, m.host.Update(msg))

	case invalidatedMsg:
		cmds = append(cmds, m.host.Update(msg))
		// The affected entries were refetched; reading them again is a cache hit.
		cmds = append(cmds, m.loadCommissions(), m.loadPayouts())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd, m.host.Update(msg))

	case toastTimeoutMsg:
		m.toast.hide(msg.id)
	}

	if !m.host.Visible() {
		m.dialogFor = nil
	}
	m.modal = m.host.Use(m.dialogCommission())
	cmds = append(cmds, m.toast.timer())

	return m, tea.Batch(cmds...)
}

func (m Model) updateListView(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected[m.activeTab] = clampIndex(m.selected[m.activeTab]+1, m.listLen())

	case key.Matches(msg, m.keys.Up):
		m.selected[m.activeTab] = clampIndex(m.selected[m.activeTab]-1, m.listLen())

	case key.Matches(msg, m.keys.SwitchTab):
		if m.activeTab == commissionsTab {
			m.activeTab = payoutsTab
		} else {
			m.activeTab = commissionsTab
		}

	case key.Matches(msg, m.keys.Reload):
		m.loading = [2]bool{true, true}
		return m, m.reload()

	case key.Matches(msg, m.keys.Duplicate):
		c := m.selectedCommission()
		if m.activeTab != commissionsTab || c == nil {
			return m, nil
		}
		if c.Status == common.StatusDuplicate {
			m.toast.Error(fmt.Sprintf("Commission %s is already marked as duplicate.", c.ID))
			return m, nil
		}

		m.dialogFor = c
		m.modal = m.host.Use(c)
		m.modal.SetShowModal(true)
	}

	return m, nil
}

func (m Model) listLen() int {
	if m.activeTab == payoutsTab {
		return len(m.payouts)
	}

	return len(m.commissions)
}

func (m Model) selectedCommission() *common.Commission {
	if len(m.commissions) == 0 {
		return nil
	}

	return m.commissions[clampIndex(m.selected[commissionsTab], len(m.commissions))]
}

// dialogCommission is the commission the dialog was opened for, so a list
// refresh while the dialog is open does not rebind it.
func (m Model) dialogCommission() *common.Commission {
	if m.dialogFor != nil {
		return m.dialogFor
	}

	return m.selectedCommission()
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.modal.Render.Visible() {
		content := lipgloss.JoinVertical(lipgloss.Center, m.modal.Render.View(), m.toast.View(m.width))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	contentWidth := max(min(m.width-4, 110), 40)

	var s strings.Builder

	s.WriteString(styles.HeaderStyle.Width(contentWidth).Render("Partner Payouts"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.errorMsg != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(styles.Red).Width(contentWidth).Render(m.errorMsg))
		s.WriteString("\n\n")
	}

	listHeight := max(m.height-12, 3)
	if m.loading[m.activeTab] {
		s.WriteString(m.spinner.View() + " Loading...")
	} else {
		s.WriteString(components.RenderList(m.listItems(), m.selected[m.activeTab], contentWidth, listHeight, m.emptyMessage()))
	}
	s.WriteString("\n")

	if toast := m.toast.View(contentWidth); toast != "" {
		s.WriteString(toast)
		s.WriteString("\n")
	}

	s.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}

func (m Model) renderTabs() string {
	names := []string{
		fmt.Sprintf("Commissions (%d)", len(m.commissions)),
		fmt.Sprintf("Payouts (%d)", len(m.payouts)),
	}

	rendered := make([]string, len(names))
	for i, name := range names {
		if tab(i) == m.activeTab {
			rendered[i] = styles.ActiveTabStyle.Render(name)
		} else {
			rendered[i] = styles.TabStyle.Render(name)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) listItems() []string {
	if m.activeTab == payoutsTab {
		items := make([]string, len(m.payouts))
		for i, p := range m.payouts {
			items[i] = components.PayoutItem(p)
		}
		return items
	}

	items := make([]string, len(m.commissions))
	for i, c := range m.commissions {
		items[i] = components.CommissionItem(c)
	}

	return items
}

func (m Model) emptyMessage() string {
	if m.activeTab == payoutsTab {
		return "No payouts for this program yet"
	}

	return "No commissions for this program yet"
}

func (m Model) loadCommissions() tea.Cmd {
	ctx, c, src := m.opts.Context, m.opts.Cache, m.opts.Source
	ws, prog := m.opts.WorkspaceID, m.opts.ProgramID

	return func() tea.Msg {
		items, err := cache.Get(ctx, c, api.CommissionsKey(ws, prog), func(ctx context.Context) ([]common.Commission, error) {
			return src.ListCommissions(ctx, ws, prog)
		})
		if err != nil {
			logger.Errorf("Failed to load commissions: %v", err)
			return commissionsLoadedMsg{err: err}
		}

		out := make([]*common.Commission, len(items))
		for i := range items {
			out[i] = &items[i]
		}

		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})

		return commissionsLoadedMsg{commissions: out}
	}
}

func (m Model) loadPayouts() tea.Cmd {
	ctx, c, src := m.opts.Context, m.opts.Cache, m.opts.Source
	ws, prog := m.opts.WorkspaceID, m.opts.ProgramID

	return func() tea.Msg {
		items, err := cache.Get(ctx, c, api.PayoutsKey(ws, prog), func(ctx context.Context) ([]common.Payout, error) {
			return src.ListPayouts(ctx, ws, prog)
		})
		if err != nil {
			logger.Errorf("Failed to load payouts: %v", err)
			return payoutsLoadedMsg{err: err}
		}

		out := make([]*common.Payout, len(items))
		for i := range items {
			out[i] = &items[i]
		}

		return payoutsLoadedMsg{payouts: out}
	}
}

// reload drops the cached lists and loads them again.
func (m Model) reload() tea.Cmd {
	ctx, c := m.opts.Context, m.opts.Cache
	prefixes := workflow.Request{ProgramID: m.opts.ProgramID}.Prefixes()

	invalidate := func() tea.Msg {
		if _, err := c.MutatePrefix(ctx, prefixes...); err != nil {
			logger.Warnf("Reload could not refresh every list: %v", err)
		}
		return nil
	}

	return tea.Sequence(invalidate, tea.Batch(m.loadCommissions(), m.loadPayouts()))
}

func loadError(what string, err error) string {
	if errors.Is(err, api.ErrEmptyID) {
		return "No workspace or program configured. Set workspaceId and programId or pass --workspace and --program."
	}

	return fmt.Sprintf("Failed to load %s: %v", what, err)
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}

	return min(max(i, 0), n-1)
}
