package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/payouts/internal/workflow"
)

var (
	errMissingIDs = errors.New("workspace and program are required, set them in the config file or pass --workspace and --program")
	errAborted    = errors.New("aborted")
	errMarkFailed = errors.New(workflow.FailureMessage)
)

func newMarkDuplicateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-duplicate <commission-id>",
		Short: "Mark a commission as duplicate",
		Long: `Mark a commission as duplicate and remove it from any upcoming payouts.
This action cannot be undone.

Usage:
  payouts mark-duplicate cm_123          # Ask before marking
  payouts mark-duplicate cm_123 --yes    # Skip the confirmation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return a.markDuplicate(cmd, args[0], yes)
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (a *app) markDuplicate(cmd *cobra.Command, commissionID string, yes bool) error {
	req := a.request(commissionID)
	if guard := workflow.CanDispatch(req); !guard.Allowed {
		return errMissingIDs
	}

	out := cmd.OutOrStdout()

	if !yes {
		fmt.Fprintf(out, "Warning: This will mark commission %s as duplicate and remove it from any upcoming payouts. This action cannot be undone.\n", commissionID)

		ok, err := confirm(cmd.InOrStdin(), out, "Mark as duplicate?")
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	wf := workflow.New(a.client, a.cache, colorNotifier{out: out})

	switch wf.Confirm(cmd.Context(), req, nil) {
	case workflow.OutcomeSucceeded:
		return nil
	case workflow.OutcomeSkipped:
		return errMissingIDs
	default:
		return errMarkFailed
	}
}

// confirm asks a y/N question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
