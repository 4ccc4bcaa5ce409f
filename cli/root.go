package cli

import (
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tasktracker/config"
	"tasktracker/connection"
)

// RootOptions holds flags that override values loaded from the environment.
type RootOptions struct {
	Port     string
	Driver   string
	DataFile string
}

// NewRootCommand creates the command that runs the tracker API server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Project and task tracker API",
		Long:          "Serves the project and task tracker REST API backed by a file, SQLite, Firestore or in-memory store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.apply(cmd, config.Load())
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return connection.StartServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "store driver: file|sqlite|firestore|memory (overrides STORE_DRIVER)")
	cmd.Flags().StringVar(&opts.DataFile, "data-file", "", "JSON data file for the file driver (overrides DATA_FILE)")

	return cmd
}

// apply copies flags the user actually set onto cfg.
func (o *RootOptions) apply(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = o.Port
	}
	if flags.Changed("driver") {
		cfg.StoreDriver = strings.ToLower(strings.TrimSpace(o.Driver))
	}
	if flags.Changed("data-file") {
		cfg.DataFile = o.DataFile
	}
	return cfg
}
