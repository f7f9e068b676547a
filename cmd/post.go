package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/bc"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post [email-folder]",
		Short: "Post identified orders to Business Central",
		Long: `Posts identified sales orders to Business Central. Each posting creates
a sales order header and one sales line per item, and the resulting
receipt is saved next to the identified order.

With an email folder argument only that folder is posted; otherwise every
identified order in the mailbox is.`,
		Args: cobra.MaximumNArgs(1),
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

			client, err := newBCClient(cfg, provider.Metrics())
			if err != nil {
				return err
			}
			metrics := provider.Metrics()

			if len(args) == 1 {
				start := time.Now()
				receipt, err := client.PostFolder(ctx, args[0])
				if errors.Is(err, bc.ErrNoOrder) {
					fmt.Println("No identified order in folder.")
					return nil
				}
				if err != nil {
					metrics.RecordPosting(ctx, "error", time.Since(start))
					return err
				}
				metrics.RecordPosting(ctx, "success", time.Since(start))
				fmt.Printf("Created sales order %s with %d lines\n", receipt.OrderNo, len(receipt.Lines))
				return nil
			}

			store := mailbox.NewStore(cfg.Mailbox.Dir)
			results, err := client.PostAll(ctx, store)
			if err != nil {
				return err
			}

			posted, failed := 0, 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					metrics.RecordPosting(ctx, "error", 0)
					continue
				}
				posted++
				metrics.RecordPosting(ctx, "success", 0)
				fmt.Printf("Created sales order %s from %s\n", r.Receipt.OrderNo, r.Folder)
			}

			fmt.Printf("Posted %d orders, %d failed\n", posted, failed)
			return nil
		},
	}
	return cmd
}
