package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
)

// Variant selects a badge's colour scheme.
type Variant int

const (
	VariantNeutral Variant = iota
	VariantNew
	VariantSuccess
	VariantPending
	VariantWarning
	VariantError
)

func (v Variant) String() string {
	switch v {
	case VariantNew:
		return "new"
	case VariantSuccess:
		return "success"
	case VariantPending:
		return "pending"
	case VariantWarning:
		return "warning"
	case VariantError:
		return "error"
	default:
		return "neutral"
	}
}

// Badge is a short coloured label.
type Badge struct {
	Label   string
	Variant Variant
}

// StatusBadge returns the badge for a commission status. Unknown statuses
// render their raw tag with the neutral variant.
func StatusBadge(s common.CommissionStatus) Badge {
	switch s {
	case common.StatusPending:
		return Badge{Label: "Pending", Variant: VariantPending}
	case common.StatusProcessed:
		return Badge{Label: "Processed", Variant: VariantNew}
	case common.StatusPaid:
		return Badge{Label: "Paid", Variant: VariantSuccess}
	case common.StatusRefunded:
		return Badge{Label: "Refunded", Variant: VariantError}
	case common.StatusDuplicate:
		return Badge{Label: "Duplicate", Variant: VariantError}
	case common.StatusFraud:
		return Badge{Label: "Fraud", Variant: VariantError}
	case common.StatusCanceled:
		return Badge{Label: "Canceled", Variant: VariantError}
	default:
		return Badge{Label: string(s), Variant: VariantNeutral}
	}
}

// TypeBadge returns the badge for a commission type.
func TypeBadge(t common.CommissionType) Badge {
	switch t {
	case common.TypeSale:
		return Badge{Label: "Sale", Variant: VariantSuccess}
	case common.TypeLead:
		return Badge{Label: "Lead", Variant: VariantNew}
	case common.TypeClick:
		return Badge{Label: "Click", Variant: VariantNeutral}
	case common.TypeCustom:
		return Badge{Label: "Custom", Variant: VariantPending}
	default:
		return Badge{Label: string(t), Variant: VariantNeutral}
	}
}

// PayoutBadge returns the badge for a payout status.
func PayoutBadge(s common.PayoutStatus) Badge {
	switch s {
	case common.PayoutPending:
		return Badge{Label: "Pending", Variant: VariantPending}
	case common.PayoutProcessing:
		return Badge{Label: "Processing", Variant: VariantNew}
	case common.PayoutCompleted:
		return Badge{Label: "Completed", Variant: VariantSuccess}
	case common.PayoutFailed:
		return Badge{Label: "Failed", Variant: VariantError}
	case common.PayoutCanceled:
		return Badge{Label: "Canceled", Variant: VariantError}
	default:
		return Badge{Label: string(s), Variant: VariantNeutral}
	}
}

// Render draws the badge.
func (b Badge) Render() string {
	return variantStyle(b.Variant).Render(b.Label)
}

func variantStyle(v Variant) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(styles.Base)

	switch v {
	case VariantNew:
		return base.Background(styles.Blue)
	case VariantSuccess:
		return base.Background(styles.Green)
	case VariantPending:
		return base.Background(styles.Yellow)
	case VariantWarning:
		return base.Background(styles.Peach)
	case VariantError:
		return base.Background(styles.Red)
	default:
		return base.Foreground(styles.Text).Background(styles.Surface1)
	}
}
