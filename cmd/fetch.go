package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/gmail"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

func newFetchCmd() *cobra.Command {
	var (
		maxResults   int64
		keepUnread   bool
		keepExisting bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch inbox emails into the mailbox",
		Long: `Fetches emails from the Gmail inbox and stores each one in its own
mailbox folder together with its attachments. The mailbox is cleared
first so a run starts from a clean slate; pass --keep-existing to append
instead. Fetched messages are marked as read unless --keep-unread is
given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			provider, err := newMetricsProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer provider.Shutdown(ctx)

			client, err := gmail.NewClient(ctx, cfg.Gmail.CredentialsFile)
			if err != nil {
				return err
			}

			store := mailbox.NewStore(cfg.Mailbox.Dir)
			if !keepExisting {
				if err := store.Reset(); err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("max-results") {
				maxResults = cfg.Gmail.MaxResults
			}

			folders, err := client.FetchToStore(ctx, store, maxResults, !keepUnread)
			if err != nil {
				return err
			}

			provider.Metrics().RecordEmailsFetched(ctx, len(folders))

			fmt.Printf("Fetched %d emails into %s\n", len(folders), store.Dir())
			return nil
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max-results", 50, "maximum number of emails to fetch")
	cmd.Flags().BoolVar(&keepUnread, "keep-unread", false, "do not mark fetched messages as read")
	cmd.Flags().BoolVar(&keepExisting, "keep-existing", false, "do not clear the mailbox before fetching")

	return cmd
}
