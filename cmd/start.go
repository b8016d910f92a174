package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/embeddedengine-io/embeddedengine"
	"github.com/embeddedengine-io/embeddedengine/app"
	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	var demo bool

	start := &cobra.Command{
		Use:   "start",
		Short: "Start the engine",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig(configurationFile)
			if err != nil {
				return err
			}

			app, err := app.New(cfg)
			if err != nil {
				return err
			}

			if demo {
				if err := registerDemoWorkload(app); err != nil {
					return err
				}
			}

			cmd.Print(embeddedengine.Logo)

			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-ctx.Done()
				err = app.Stop()
				if err != nil {
					os.Exit(1)
				}
			}()

			if err := app.Start(); err != nil {
				return err
			}

			app.Wait()

			return nil
		},
	}

	start.PersistentFlags().StringVarP(&configurationFile, "config", "", "", "The configuration filename")
	start.PersistentFlags().BoolVarP(&demo, "demo", "", false, "Register the built-in producer/consumer demo workload")

	return start
}
