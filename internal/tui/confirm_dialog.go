package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/payouts/internal/action"
	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/logger"
	"github.com/NamanBalaji/payouts/internal/tui/components"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
	"github.com/NamanBalaji/payouts/internal/workflow"
)

const (
	dialogTitle   = "Mark commission as duplicate"
	dialogWarning = "This will mark the commission as duplicate and remove it from any upcoming payouts. This action cannot be undone."
	confirmLabel  = "Mark as duplicate"
	cancelLabel   = "Cancel"
)

type button int

const (
	buttonConfirm button = iota
	buttonCancel
)

// DialogDeps are the collaborators and identifiers a mark-duplicate dialog needs.
type DialogDeps struct {
	Context     context.Context
	Workflow    *workflow.Workflow
	Notifier    workflow.Notifier
	WorkspaceID string
	ProgramID   string
	Location    *time.Location
}

// MarkDuplicateDialog asks the user to confirm marking a commission as a
// duplicate and drives the mutation. Enter presses the focused button, y
// confirms directly and Esc cancels.
type MarkDuplicateDialog struct {
	deps       DialogDeps
	commission *common.Commission
	request    workflow.Request
	action     *action.Action[workflow.Request]
	setShow    func(bool)
	spinner    spinner.Model
	help       help.Model
	keys       dialogKeyMap
	focus      button
	width      int
}

func newMarkDuplicateDialog(deps DialogDeps, c *common.Commission, setShow func(bool)) *MarkDuplicateDialog {
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Base)

	return &MarkDuplicateDialog{
		deps:       deps,
		commission: c,
		request: workflow.Request{
			WorkspaceID:  deps.WorkspaceID,
			ProgramID:    deps.ProgramID,
			CommissionID: c.ID,
		},
		action:  action.New[workflow.Request](deps.Workflow.Dispatch),
		setShow: setShow,
		spinner: s,
		help:    help.New(),
		keys:    newDialogKeyMap(),
		focus:   buttonConfirm,
		width:   60,
	}
}

// loading is true while the mutation runs and after it succeeded, until the
// dialog closes, so the confirm button cannot be pressed twice.
func (d *MarkDuplicateDialog) loading() bool {
	return d.action.IsExecuting() || d.action.HasSucceeded()
}

// Update handles keys and the dialog's own result messages.
func (d *MarkDuplicateDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)

	case markResultMsg:
		if msg.commissionID != d.commission.ID {
			return nil
		}
		return d.settle(msg.result)

	case invalidatedMsg:
		if msg.commissionID != d.commission.ID {
			return nil
		}
		d.setShow(false)
		return nil

	case spinner.TickMsg:
		if !d.loading() {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case tea.WindowSizeMsg:
		d.width = max(min(msg.Width-10, 72), 40)
	}

	return nil
}

func (d *MarkDuplicateDialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, d.keys.Cancel):
		return d.cancel()

	case key.Matches(msg, d.keys.Focus):
		if d.focus == buttonConfirm {
			d.focus = buttonCancel
		} else {
			d.focus = buttonConfirm
		}
		return nil

	case key.Matches(msg, d.keys.Yes):
		return d.confirm()

	case key.Matches(msg, d.keys.Confirm):
		if d.focus == buttonCancel {
			return d.cancel()
		}
		return d.confirm()
	}

	return nil
}

func (d *MarkDuplicateDialog) cancel() tea.Cmd {
	if d.action.IsExecuting() {
		return nil
	}

	d.setShow(false)

	return nil
}

func (d *MarkDuplicateDialog) confirm() tea.Cmd {
	if guard := workflow.CanDispatch(d.request); !guard.Allowed {
		logger.Debugf("Ignoring confirm for %s: %s", d.commission.ID, guard.Reason)
		return nil
	}

	if d.action.HasSucceeded() || !d.action.Begin() {
		return nil
	}

	ctx, req, a := d.deps.Context, d.request, d.action
	dispatch := func() tea.Msg {
		return markResultMsg{commissionID: req.CommissionID, result: a.Run(ctx, req)}
	}

	return tea.Batch(dispatch, d.spinner.Tick)
}

func (d *MarkDuplicateDialog) settle(res action.Result) tea.Cmd {
	d.action.Settle(res)

	if !res.Succeeded() {
		d.deps.Notifier.Error(workflow.FailureMessage)
		return nil
	}

	d.deps.Notifier.Success(workflow.SuccessMessage)

	ctx, req, w := d.deps.Context, d.request, d.deps.Workflow
	return func() tea.Msg {
		return invalidatedMsg{commissionID: req.CommissionID, err: w.Invalidate(ctx, req)}
	}
}

// View renders the dialog box.
func (d *MarkDuplicateDialog) View() string {
	innerWidth := d.width - 4

	var s strings.Builder

	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.Text).Render(dialogTitle))
	s.WriteString("\n\n")

	warning := lipgloss.NewStyle().Bold(true).Render("Warning:") + " " + dialogWarning
	s.WriteString(styles.WarningStyle.Width(innerWidth - 2).Render(warning))
	s.WriteString("\n\n")

	fields := components.CommissionSummary(d.commission, d.deps.Location)
	s.WriteString(components.RenderSummary(fields, innerWidth))
	s.WriteString("\n\n")

	s.WriteString(d.renderButtons(innerWidth))
	s.WriteString("\n\n")

	s.WriteString(d.help.View(d.keys))

	return styles.DialogStyle.Width(d.width).Render(s.String())
}

func (d *MarkDuplicateDialog) renderButtons(width int) string {
	cancelStyle := styles.ButtonStyle
	if d.action.IsExecuting() {
		cancelStyle = styles.DisabledButtonStyle
	}

	confirmText := confirmLabel
	if d.loading() {
		confirmText = d.spinner.View() + " " + confirmLabel
	}
	confirmStyle := styles.DangerButtonStyle

	if d.focus == buttonCancel {
		cancelStyle = cancelStyle.Underline(true)
	} else {
		confirmStyle = confirmStyle.Underline(true)
	}

	cancel := cancelStyle.Render(cancelLabel)
	confirm := confirmStyle.Render(confirmText)

	gap := max(width-lipgloss.Width(cancel)-lipgloss.Width(confirm), 1)

	return cancel + strings.Repeat(" ", gap) + confirm
}
