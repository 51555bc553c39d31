package cli

import (
	"context"
	"fmt"

	"github.com/familyboard/familyboard/internal/app"
	"github.com/familyboard/familyboard/internal/backup"
	"github.com/familyboard/familyboard/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a snapshot of both collections now",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			a, err := openApp(cmd.Context(), fs)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			snap := a.Snapshotter(cmd.Context())
			if list, _ := cmd.Flags().GetBool("list"); list {
				names, err := snap.List()
				if err != nil {
					return err
				}
				for _, n := range names {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}
			path, err := snap.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().Bool("list", false, "list existing snapshots instead of writing one")
	cmd.Flags().String("dir", "", "backup directory (BACKUP_DIR)")
	bindFlag(cmd, "BACKUP_DIR", "dir", false)
	return cmd
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot.json>",
		Short: "Replace both collections with a snapshot's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			a, err := openApp(cmd.Context(), fs)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			st := a.Storage()
			snap, err := backup.Restore(cmd.Context(), fs, args[0], st.Recipes, st.Wishes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %d recipes and %d wishes from %s\n", len(snap.Recipes), len(snap.Wishes), snap.Timestamp)
			return nil
		},
	}
}

func openApp(ctx context.Context, fs afero.Fs) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, fs)
}
