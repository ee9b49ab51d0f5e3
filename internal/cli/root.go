// Package cli implements the cambios command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/cambios/internal/adapters/repository"
	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/internal/config"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/okian/cambios/internal/domain/teams"
	"github.com/okian/cambios/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/okian/cambios/internal/cli.Version=...".
var Version = "dev"

// app holds state shared by every subcommand once the root has loaded configuration.
type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cambios",
		Short: "Substitution impact analysis for Liga MX Femenil referee reports",
		Long: `cambios reads a referee report (PDF or extracted text), lists its goals, cards
and substitutions, and classifies every substitution by the points its side held when it
was made against the points at full time.

Configuration hierarchy (highest to lowest priority):
  1. Command flags
  2. Environment variables (CAMBIOS_*)
  3. Config file (--config or $CAMBIOS_CONFIG)
  4. Defaults`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default: $CAMBIOS_CONFIG)")

	root.AddCommand(
		a.newServeCommand(),
		a.newAnalyzeCommand(),
		a.newBatchCommand(),
		a.newTeamsCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	a.log = logger.Get().Named("cli")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		a.log.Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	a.cfg = cfg
	return nil
}

// newService builds the analysis service from configuration. extra options are applied
// last so command flags win.
func (a *app) newService(extra ...service.Option) *service.Service {
	cfg := a.cfg
	opts := []service.Option{
		service.WithLogger(logger.Get().Named("service")),
		service.WithStore(repository.NewCacheStore(
			repository.WithTTL(time.Duration(cfg.SessionTTLSeconds) * time.Second),
		)),
		service.WithFocusTeam(cfg.FocusTeam),
		service.WithWindowMinutes(cfg.WindowMinutes),
		service.WithRivalSubstitutions(cfg.RivalSubstitutions),
		service.WithDefaultPage(cfg.DefaultPage),
		service.WithExtraTeams(catalogTeams(cfg.Teams)),
	}
	if order, ok := scanner.ParseOrder(cfg.SubOrder); ok {
		opts = append(opts, service.WithSubstitutionOrder(order))
	}
	return service.New(append(opts, extra...)...)
}

func catalogTeams(in []config.Team) []teams.Team {
	out := make([]teams.Team, 0, len(in))
	for _, t := range in {
		out = append(out, teams.Team{ID: model.TeamID(t.ID), Display: t.Display, Aliases: t.Aliases})
	}
	return out
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cambios %s\n", Version)
			return err
		},
	}
}
