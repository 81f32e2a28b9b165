package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventhub"
	"eventhub/internal/actions"
	"eventhub/internal/domain"
	"eventhub/internal/ui/commands"
)

// exitNothingDelivered is the exit code of emit when no listener was bound
const exitNothingDelivered = 2

func newEmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "emit <event> [args...]",
		Short: "Build the configured hub and emit one event",
		Long: "Build the hub from the config file and emit one event. Arguments are\n" +
			"parsed as int, float, bool or string. Exits with status 2 when the\n" +
			"event had no listeners.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, found, err := a.loadConfig()
			if err != nil {
				return err
			}
			log, closer, err := a.stderrLogger(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			catalog := actions.NewCatalog(actions.Deps{Logger: log})
			catalog.Register(commands.DefaultAction, func(event string) eventhub.Listener {
				return func(args ...any) {
					fmt.Fprintf(out, "<- %s %v\n", event, args)
				}
			})
			hub, err := buildHub(cfg, catalog)
			if err != nil {
				return err
			}

			event := args[0]
			values := make([]any, 0, len(args)-1)
			for _, word := range args[1:] {
				values = append(values, commands.ParseArg(word))
			}

			if _, err := emitSafely(hub, string(domain.EventConfigLoaded), a.configPath, found); err != nil {
				return err
			}
			delivered, err := emitSafely(hub, event, values...)
			if err != nil {
				return err
			}
			if !delivered {
				fmt.Fprintf(out, "%s has no listeners\n", event)
				return &exitError{code: exitNothingDelivered}
			}
			fmt.Fprintf(out, "emitted %s\n", event)
			return nil
		},
	}
}

// emitSafely turns a listener panic into an error
func emitSafely(hub *eventhub.Hub, event string, args ...any) (delivered bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener for %s failed: %v", event, r)
		}
	}()
	return hub.Emit(event, args...), nil
}
