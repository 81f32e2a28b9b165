package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/logging"
	"eventhub/internal/ui"
	"eventhub/internal/ui/commands"
)

func newConsoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Bind, emit and inspect events interactively (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConsole(cmd.Context())
		},
	}
}

func (a *app) runConsole(ctx context.Context) error {
	cfg, found, err := a.loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logging.DefaultFile
	}
	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: logFile, Console: true})
	if err != nil {
		return err
	}
	defer closer.Close()

	catalog := actions.NewCatalog(actions.Deps{Logger: log})
	exec, err := commands.NewExecutor(catalog, log, cfg.Listeners, hubOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to build listeners: %w", err)
	}
	exec.Emit(string(domain.EventConfigLoaded), a.configPath, found)

	model := ui.NewModel(exec, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Info().Str("config", a.configPath).Bool("found", found).Msg("starting console")
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("console failed")
		return fmt.Errorf("error running program: %w", err)
	}
	model.Stop()
	log.Info().Msg("console exited normally")
	return nil
}
