package cmd

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/agentmesh/core"
	amlogging "github.com/hupe1980/agentmesh/logging"
	"github.com/hupe1980/agentmesh/model/openai"
	"github.com/hupe1980/agentmesh/runner"
	"github.com/spf13/cobra"

	"github.com/jkivimaki/orderintake/internal/agents"
	"github.com/jkivimaki/orderintake/internal/gmail"
	"github.com/jkivimaki/orderintake/internal/logging"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

const defaultRunPrompt = "Process new order emails: fetch the emails from the inbox, " +
	"identify sales orders from them, and post the identified orders to Business Central. " +
	"Summarize the outcome."

func newRunCmd() *cobra.Command {
	var (
		prompt     string
		keepUnread bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent-driven order intake workflow",
		Long: `Runs the full order intake pipeline as an agent workflow. An
orchestration agent delegates to sub-agents for fetching emails,
identifying orders and posting them to Business Central, using the same
pipeline services as the individual commands.`,
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

			gmailClient, err := gmail.NewClient(ctx, cfg.Gmail.CredentialsFile)
			if err != nil {
				return err
			}
			bcClient, err := newBCClient(cfg, provider.Metrics())
			if err != nil {
				return err
			}

			toolset := &agents.Toolset{
				Gmail:      gmailClient,
				Store:      mailbox.NewStore(cfg.Mailbox.Dir),
				Identifier: newIdentifier(cfg),
				BC:         bcClient,
				Metrics:    provider.Metrics(),
				MaxResults: cfg.Gmail.MaxResults,
				MarkAsRead: !keepUnread,
			}

			llm := openai.NewModel(func(o *openai.Options) {
				o.Model = cfg.Extract.Model
			})

			orchestrator, err := agents.Build(toolset, llm)
			if err != nil {
				return err
			}

			r := runner.New(orchestrator, func(o *runner.Options) {
				o.Logger = amlogging.NewSlogAdapter(slog.Default())
			})

			_, events, errs, err := r.Run(ctx, "orderintake", core.Content{
				Role:  "user",
				Parts: []core.Part{core.TextPart{Text: prompt}},
			})
			if err != nil {
				return fmt.Errorf("failed to start agent run: %w", err)
			}

			logger := slog.Default()
			for events != nil || errs != nil {
				select {
				case ev, ok := <-events:
					if !ok {
						events = nil
						continue
					}
					if ev.Content == nil || ev.IsPartial() {
						continue
					}
					for _, part := range ev.Content.Parts {
						switch p := part.(type) {
						case core.TextPart:
							fmt.Printf("[%s] %s\n", ev.Author, p.Text)
						case core.FunctionCallPart:
							logger.Info("tool call",
								slog.String(logging.KeyTool, p.FunctionCall.Name),
								slog.String("agent", ev.Author))
						case core.FunctionResponsePart:
							if p.FunctionResponse.Error != "" {
								logger.Error("tool failed",
									slog.String(logging.KeyTool, p.FunctionResponse.Name),
									slog.String("error", p.FunctionResponse.Error))
							}
						}
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					if err != nil {
						return fmt.Errorf("agent run failed: %w", err)
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", defaultRunPrompt, "instruction given to the orchestration agent")
	cmd.Flags().BoolVar(&keepUnread, "keep-unread", false, "do not mark fetched messages as read")

	return cmd
}
