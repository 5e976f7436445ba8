package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/format"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
)

// RenderList displays pre-rendered items, keeping the selected one in view.
func RenderList(items []string, selected, width, height int, empty string) string {
	if len(items) == 0 {
		return renderEmptyView(width, height, empty)
	}

	// Each item takes 1 line plus the selection border
	itemHeight := 3

	visibleCount := max(height/itemHeight, 1)

	start := max(selected-(visibleCount/2), 0)
	end := min(start+visibleCount, len(items))

	var rows []string
	for i := start; i < end; i++ {
		if i == selected {
			rows = append(rows, styles.SelectedItemStyle.Width(width).Render(items[i]))
			continue
		}
		rows = append(rows, styles.ListItemStyle.Width(width).Render(items[i]))
	}

	listContent := lipgloss.JoinVertical(lipgloss.Left, rows...)

	if start > 0 {
		upIndicator := lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			Align(lipgloss.Center).
			Width(width).
			Render("↑ more above")
		listContent = lipgloss.JoinVertical(lipgloss.Top, upIndicator, listContent)
	}

	if end < len(items) {
		downIndicator := lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			Align(lipgloss.Center).
			Width(width).
			Render("↓ more below")
		listContent = lipgloss.JoinVertical(lipgloss.Bottom, listContent, downIndicator)
	}

	return listContent
}

// CommissionItem renders a commission as a single list line.
func CommissionItem(c *common.Commission) string {
	partner := "Unknown partner"
	if c.Partner != nil && (c.Partner.Name != "" || c.Partner.Email != "") {
		partner = c.Partner.Name
		if partner == "" {
			partner = c.Partner.Email
		}
	}

	return fmt.Sprintf("%-14s %-24s %10s %10s  %s %s",
		format.ShortDateTime(c.CreatedAt, nil),
		truncate(partner, 24),
		CommissionAmount(c),
		format.Currency(c.Earnings),
		TypeBadge(c.Type).Render(),
		StatusBadge(c.Status).Render(),
	)
}

// PayoutItem renders a payout as a single list line.
func PayoutItem(p *common.Payout) string {
	partner := p.PartnerID
	if p.Partner != nil && p.Partner.Name != "" {
		partner = p.Partner.Name
	}

	period := "--"
	if !p.PeriodStart.IsZero() && !p.PeriodEnd.IsZero() {
		period = p.PeriodStart.Format("Jan 2") + " - " + p.PeriodEnd.Format("Jan 2, 2006")
	}

	return fmt.Sprintf("%-24s %-24s %12s  %s",
		truncate(partner, 24),
		period,
		format.Currency(p.Amount),
		PayoutBadge(p.Status).Render(),
	)
}

func renderEmptyView(width, height int, message string) string {
	content := lipgloss.NewStyle().Foreground(styles.Subtext0).Italic(true).Render(message)

	return lipgloss.Place(width, max(height, 3), lipgloss.Center, lipgloss.Center, content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-3]) + "..."
}
