package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NamanBalaji/payouts/internal/cache"
	"github.com/NamanBalaji/payouts/internal/config"
	"github.com/NamanBalaji/payouts/internal/logger"
	"github.com/NamanBalaji/payouts/internal/repository"
	"github.com/NamanBalaji/payouts/internal/tui"
	"github.com/NamanBalaji/payouts/internal/workflow"
	"github.com/NamanBalaji/payouts/pkg/api"
)

var version = "dev"

var errNoTerminal = errors.New("the dashboard needs an interactive terminal, try 'payouts commissions'")

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	repo   *repository.BoltRepository
	client *api.Client
	cache  *cache.Cache
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "payouts",
		Short:         "Review partner commissions and payouts from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDashboard(cmd.Context())
		},
	}

	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newCommissionsCmd(a))
	root.AddCommand(newMarkDuplicateCmd(a))

	return root
}

// Execute runs the command line until the chosen command returns.
func Execute(ctx context.Context) error {
	a := &app{}
	defer a.close()

	return newRootCmd(a).ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.GetConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.InitLogging(cfg.Debug, config.LogPath()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to initialize logging: %v\n", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	a.repo, err = repository.NewBoltRepository(cfg.CachePath)
	if err != nil {
		return err
	}

	clientCfg := api.DefaultConfig()
	clientCfg.BaseURL = cfg.APIURL
	clientCfg.Token = cfg.Token
	clientCfg.RequestTimeout = cfg.Timeout

	a.client, err = api.NewClient(clientCfg)
	if err != nil {
		return err
	}

	a.cache = cache.New(a.repo, cache.WithTTL(cfg.CacheTTL))

	logger.Debugf("Using API %s, workspace %q, program %q", cfg.APIURL, cfg.WorkspaceID, cfg.ProgramID)

	return nil
}

func (a *app) close() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			logger.Errorf("Error closing cache: %v", err)
		}
	}

	logger.Close()
}

func (a *app) request(commissionID string) workflow.Request {
	return workflow.Request{
		WorkspaceID:  a.cfg.WorkspaceID,
		ProgramID:    a.cfg.ProgramID,
		CommissionID: commissionID,
	}
}

func (a *app) runDashboard(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	model := tui.NewModel(tui.Options{
		Context:       ctx,
		Source:        a.client,
		Cache:         a.cache,
		Workflow:      workflow.New(a.client, a.cache, logNotifier{}),
		WorkspaceID:   a.cfg.WorkspaceID,
		ProgramID:     a.cfg.ProgramID,
		Location:      a.cfg.Location(),
		ToastDuration: a.cfg.ToastDuration,
	})

	return tui.Run(model)
}
