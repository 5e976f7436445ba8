package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/NamanBalaji/payouts/internal/cache"
	"github.com/NamanBalaji/payouts/internal/common"
	"github.com/NamanBalaji/payouts/internal/format"
	"github.com/NamanBalaji/payouts/internal/tui/components"
	"github.com/NamanBalaji/payouts/pkg/api"
)

func newCommissionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commissions",
		Short: "List the program's commissions",
		Long: `List the commissions of the configured program, newest first.

Results come from the local cache while they are fresh. Use --refresh to
drop the cached lists and load them from the API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refresh, _ := cmd.Flags().GetBool("refresh")
			return a.listCommissions(cmd, refresh)
		},
	}

	cmd.Flags().Bool("refresh", false, "ignore cached results")

	return cmd
}

func (a *app) listCommissions(cmd *cobra.Command, refresh bool) error {
	ctx := cmd.Context()
	ws, prog := a.cfg.WorkspaceID, a.cfg.ProgramID

	if refresh {
		if _, err := a.cache.MutatePrefix(ctx, a.request("").Prefixes()...); err != nil {
			return err
		}
	}

	items, err := cache.Get(ctx, a.cache, api.CommissionsKey(ws, prog), func(ctx context.Context) ([]common.Commission, error) {
		return a.client.ListCommissions(ctx, ws, prog)
	})
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No commissions for this program yet")
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	fmt.Fprintln(cmd.OutOrStdout(), commissionTable(items, a.cfg.Location()))

	return nil
}

func commissionTable(items []common.Commission, loc *time.Location) string {
	rows := make([][]string, len(items))
	for i := range items {
		c := &items[i]
		rows[i] = []string{
			c.ID,
			format.ShortDateTime(c.CreatedAt, loc),
			customerName(c.Customer),
			partnerName(c.Partner),
			components.TypeBadge(c.Type).Label,
			components.CommissionAmount(c),
			format.Currency(c.Earnings),
			components.StatusBadge(c.Status).Label,
		}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Customer", "Partner", "Type", "Amount", "Commission", "Status").
		Rows(rows...).
		StyleFunc(func(_, _ int) lipgloss.Style { return cell }).
		Render()
}

func customerName(c *common.Customer) string {
	switch {
	case c == nil:
		return "-"
	case c.Name != "":
		return c.Name
	default:
		return c.Email
	}
}

func partnerName(p *common.Partner) string {
	switch {
	case p == nil:
		return "-"
	case p.Name != "":
		return p.Name
	default:
		return p.Email
	}
}
