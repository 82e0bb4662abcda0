package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"heat/calculator"
	"heat/console"
	"heat/scenario"
	"heat/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "heat",
		Short:         "Steady-state heat diffusion over a wrap-around metal sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", calculator.DefaultConfigPath, "ini config file")

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (calculator.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := calculator.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.SetupLogger()
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation in the terminal",
		Long: `Run reads the sheet size, starting temperature, heat injection and
thermal resistance from stdin (or from a scenario file) and prints every
frame until the sheet converges. A run that does not converge exits 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if w, _ := cmd.Flags().GetInt("workers"); w > 0 {
				cfg.Workers = w
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
			path, _ := cmd.Flags().GetString("scenario")
			if path == "" {
				return c.Run(ctx)
			}
			env, err := scenario.Load(path)
			if err != nil {
				return err
			}
			return c.Simulate(ctx, env)
		},
	}
	cmd.Flags().String("scenario", "", "yaml file with the sheet parameters, skips the prompts")
	cmd.Flags().Int("workers", 0, "number of workers for the stencil sweep (overrides config)")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream simulations to websocket clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			upgrader.CheckOrigin = func(r *http.Request) bool {
				return true
			}
			s := server.NewServer(cfg, upgrader)
			if err := s.Serve(); err != nil {
				log.WithError(err).Error("ListenAndServe")
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (overrides config)")
	return cmd
}
