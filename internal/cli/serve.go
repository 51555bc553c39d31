package cli

import (
	"context"

	"github.com/familyboard/familyboard/internal/app"
	"github.com/familyboard/familyboard/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Serve the REST API and front end, with keep-alive pings and daily backups when enabled.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			a, err := app.New(ctx, cfg, afero.NewOsFs())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())
			return a.Run(ctx)
		},
	}
	cmd.Flags().String("port", "", "listen port (PORT)")
	cmd.Flags().String("host", "", "listen host (HOST)")
	cmd.Flags().String("storage", "", "storage backend: file|redis|mongo (STORAGE_BACKEND)")
	cmd.Flags().String("data-dir", "", "directory for file storage (DATA_DIR)")
	cmd.Flags().String("static-dir", "", "directory with the front end (STATIC_DIR)")
	bindFlag(cmd, "PORT", "port", false)
	bindFlag(cmd, "HOST", "host", false)
	bindFlag(cmd, "STORAGE_BACKEND", "storage", false)
	bindFlag(cmd, "DATA_DIR", "data-dir", false)
	bindFlag(cmd, "STATIC_DIR", "static-dir", false)
	return cmd
}
