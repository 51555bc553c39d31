package cli

import (
	"github.com/familyboard/familyboard/internal/client"
	"github.com/familyboard/familyboard/internal/poller"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a running board in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipesEvery, err := cmd.Flags().GetDuration("recipes-interval")
			if err != nil {
				return err
			}
			pingEvery, err := cmd.Flags().GetDuration("ping-interval")
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			c := client.New(url, nil)
			return poller.New(poller.ForClient(c), cmd.OutOrStdout(), recipesEvery, pingEvery).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:3000", "board base URL")
	cmd.Flags().Duration("recipes-interval", poller.DefaultRecipesInterval, "recipe refresh interval")
	cmd.Flags().Duration("ping-interval", poller.DefaultPingInterval, "server check interval")
	return cmd
}
