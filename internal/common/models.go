package common

import "time"

// Commission is a ledger entry for a partner's earnings on a tracked event.
// Amount and Earnings are in minor currency units (cents).
type Commission struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Amount    int64            `json:"amount"`
	Quantity  int64            `json:"quantity"`
	Earnings  int64            `json:"earnings"`
	Type      CommissionType   `json:"type"`
	Status    CommissionStatus `json:"status"`
	Customer  *Customer        `json:"customer,omitempty"`
	Partner   *Partner         `json:"partner,omitempty"`
}

// IsSale reports whether the commission was earned on a sale, in which case
// Amount is monetary. Other types carry a Quantity instead.
func (c *Commission) IsSale() bool {
	return c.Type == TypeSale
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Country string `json:"country,omitempty"`
}

type Partner struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	PayoutsEnabled bool   `json:"payoutsEnabled"`
}

// Payout groups a partner's commissions for a payout period.
type Payout struct {
	ID          string       `json:"id"`
	PartnerID   string       `json:"partnerId"`
	Partner     *Partner     `json:"partner,omitempty"`
	Amount      int64        `json:"amount"`
	Status      PayoutStatus `json:"status"`
	PeriodStart time.Time    `json:"periodStart"`
	PeriodEnd   time.Time    `json:"periodEnd"`
}
