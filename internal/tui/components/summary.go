package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/format"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
)

// Field is one label/value line of a summary table.
type Field struct {
	Label string
	Value string
}

// CommissionSummary lists a commission's details in display order.
func CommissionSummary(c *common.Commission, loc *time.Location) []Field {
	return []Field{
		{Label: "Date", Value: format.ShortDateTime(c.CreatedAt, loc)},
		{Label: "Customer", Value: CustomerRow(c.Customer)},
		{Label: "Partner", Value: PartnerRow(c.Partner)},
		{Label: "Type", Value: TypeBadge(c.Type).Render()},
		{Label: "Amount", Value: CommissionAmount(c)},
		{Label: "Commission", Value: format.Currency(c.Earnings)},
		{Label: "Status", Value: StatusBadge(c.Status).Render()},
	}
}

// CommissionAmount is the sale amount for sales and the abbreviated
// quantity for every other commission type.
func CommissionAmount(c *common.Commission) string {
	if c.IsSale() {
		return format.Currency(c.Amount)
	}

	return format.Abbreviate(c.Quantity)
}

// RenderSummary lays the fields out as a two-column table.
func RenderSummary(fields []Field, width int) string {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	labelWidth += 4

	valueWidth := max(width-labelWidth, 10)

	var s strings.Builder
	for i, f := range fields {
		if i > 0 {
			s.WriteString("\n")
		}
		label := styles.LabelStyle.Width(labelWidth).Render(f.Label)
		value := lipgloss.NewStyle().MaxWidth(valueWidth).Render(f.Value)
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	return s.String()
}
