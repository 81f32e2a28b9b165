package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/httpapi"
	"eventhub/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose a hub over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, found, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, closer, err := a.stderrLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			m := metrics.New()
			catalog := actions.NewCatalog(actions.Deps{Logger: log, Metrics: m})
			hub, err := buildHub(cfg, catalog)
			if err != nil {
				return err
			}

			srv := httpapi.New(httpapi.Options{
				Hub:            hub,
				Catalog:        catalog,
				Metrics:        m,
				Logger:         log,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			})
			if _, err := srv.Emit(string(domain.EventConfigLoaded), a.configPath, found); err != nil {
				log.Warn().Err(err).Msg("lifecycle listener failed")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env EVENTHUB_ADDR, default :8080)")
	return cmd
}
