package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/mailbox"
)

func newIdentifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify [email-folder]",
		Short: "Identify sales orders from stored emails",
		Long: `Runs order identification over stored emails. Each email's text and
attachment images are compared against the product catalog by a vision
model, and the identified order is validated against the customer and
item master data and saved next to the email.

With an email folder argument only that folder is processed; otherwise
every folder in the mailbox is.`,
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

			identifier := newIdentifier(cfg)
			metrics := provider.Metrics()

			if len(args) == 1 {
				start := time.Now()
				res, err := identifier.IdentifyFolder(ctx, args[0])
				if err != nil {
					metrics.RecordIdentification(ctx, "error", time.Since(start))
					return err
				}
				if res.Empty() {
					metrics.RecordIdentification(ctx, "no_order", time.Since(start))
					fmt.Println("No order identified.")
					return nil
				}
				metrics.RecordIdentification(ctx, "identified", time.Since(start))
				fmt.Printf("Identified order for %s (%s), %d items, confidence %.2f\n",
					res.Details.Customer.Name, res.Details.Customer.Number,
					len(res.Details.Items), res.Confidence)
				return nil
			}

			store := mailbox.NewStore(cfg.Mailbox.Dir)
			results, err := identifier.IdentifyAll(ctx, store)
			if err != nil {
				return err
			}

			identified, failed := 0, 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					metrics.RecordIdentification(ctx, "error", 0)
				case r.Result.Empty():
					metrics.RecordIdentification(ctx, "no_order", 0)
				default:
					identified++
					metrics.RecordIdentification(ctx, "identified", 0)
				}
			}

			fmt.Printf("Processed %d emails: %d orders identified, %d failed\n",
				len(results), identified, failed)
			return nil
		},
	}
	return cmd
}
