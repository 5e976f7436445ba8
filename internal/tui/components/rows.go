package components

import (
	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/tui/styles"
)

// CustomerRow renders a customer's identity on one line: the name (or email)
// followed by the email in a faint style when both are known.
func CustomerRow(c *common.Customer) string {
	if c == nil {
		return styles.FaintStyle.Render("Unknown customer")
	}

	return identity(c.Name, c.Email, "Unknown customer")
}

// PartnerRow renders a partner's identity on one line.
func PartnerRow(p *common.Partner) string {
	if p == nil {
		return styles.FaintStyle.Render("Unknown partner")
	}

	return identity(p.Name, p.Email, "Unknown partner")
}

func identity(name, email, fallback string) string {
	switch {
	case name != "" && email != "":
		return styles.ValueStyle.Render(name) + " " + styles.FaintStyle.Render(email)
	case name != "":
		return styles.ValueStyle.Render(name)
	case email != "":
		return styles.ValueStyle.Render(email)
	default:
		return styles.FaintStyle.Render(fallback)
	}
}
