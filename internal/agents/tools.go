package agents

import (
	"errors"
	"time"

	"github.com/hupe1980/agentmesh/core"
	"github.com/hupe1980/agentmesh/tool"

	"github.com/jkivimaki/orderintake/internal/bc"
	"github.com/jkivimaki/orderintake/internal/extract"
	"github.com/jkivimaki/orderintake/internal/gmail"
	"github.com/jkivimaki/orderintake/internal/instrumentation"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

// Toolset bundles the pipeline services the agent tools operate on.
type Toolset struct {
	Gmail      *gmail.Client
	Store      *mailbox.Store
	Identifier *extract.Identifier
	BC         *bc.Client
	Metrics    *instrumentation.Metrics

	// MaxResults caps how many inbox messages a fetch pulls.
	MaxResults int64

	// MarkAsRead marks fetched messages read in the mailbox.
	MarkAsRead bool
}

// record wraps tool execution with invocation metrics.
func (ts *Toolset) record(toolCtx *core.ToolContext, name string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ts.Metrics.RecordToolInvocation(toolCtx.Context(), name, status, time.Since(start))
}

// FetchEmailsTool downloads inbox emails into the mailbox store.
func (ts *Toolset) FetchEmailsTool() tool.Tool {
	return tool.NewFunctionTool(
		"fetch_gmail_emails",
		"Fetch emails from the Gmail inbox and store each one in its own mailbox folder together with its attachments",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"max_results": map[string]any{
					"type":        "number",
					"description": "Maximum number of emails to fetch",
				},
			},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) { ts.record(toolCtx, "fetch_gmail_emails", start, err) }(time.Now())

			maxResults := ts.MaxResults
			if v, ok := args["max_results"].(float64); ok && v > 0 {
				maxResults = int64(v)
			}

			if err := ts.Store.Reset(); err != nil {
				return nil, err
			}

			folders, err := ts.Gmail.FetchToStore(toolCtx.Context(), ts.Store, maxResults, ts.MarkAsRead)
			if err != nil {
				return nil, err
			}

			ts.Metrics.RecordEmailsFetched(toolCtx.Context(), len(folders))
			return map[string]any{
				"fetched": len(folders),
				"folders": folders,
			}, nil
		},
	)
}

// SendEmailTool sends an email through the Gmail account.
func (ts *Toolset) SendEmailTool() tool.Tool {
	return tool.NewFunctionTool(
		"send_gmail_email",
		"Send an email from the Gmail account",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"to":      map[string]any{"type": "string", "description": "Recipient address"},
				"subject": map[string]any{"type": "string", "description": "Email subject"},
				"body":    map[string]any{"type": "string", "description": "Email body text"},
			},
			"required": []string{"to", "subject", "body"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) { ts.record(toolCtx, "send_gmail_email", start, err) }(time.Now())

			to, _ := args["to"].(string)
			subject, _ := args["subject"].(string)
			body, _ := args["body"].(string)

			id, err := ts.Gmail.SendEmail(&gmail.EmailMessage{
				To:      []string{to},
				Subject: subject,
				Body:    body,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{"message_id": id}, nil
		},
	)
}

// IdentifyOrderTool runs order identification for one stored email.
func (ts *Toolset) IdentifyOrderTool() tool.Tool {
	return tool.NewFunctionTool(
		"identify_orders_from_emails",
		"Identify a sales order from a single stored email folder using its text, attachments and the product catalog",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"email_folder": map[string]any{
					"type":        "string",
					"description": "Path of the stored email folder",
				},
			},
			"required": []string{"email_folder"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) { ts.record(toolCtx, "identify_orders_from_emails", start, err) }(time.Now())

			folder, _ := args["email_folder"].(string)

			start := time.Now()
			res, err := ts.Identifier.IdentifyFolder(toolCtx.Context(), folder)
			if err != nil {
				ts.Metrics.RecordIdentification(toolCtx.Context(), "error", time.Since(start))
				return nil, err
			}
			if res.Empty() {
				ts.Metrics.RecordIdentification(toolCtx.Context(), "no_order", time.Since(start))
				return map[string]any{"order_found": false}, nil
			}
			ts.Metrics.RecordIdentification(toolCtx.Context(), "identified", time.Since(start))
			return map[string]any{"order_found": true, "order": res}, nil
		},
	)
}

// IdentifyAllOrdersTool runs order identification over every stored email.
func (ts *Toolset) IdentifyAllOrdersTool() tool.Tool {
	return tool.NewFunctionTool(
		"identify_orders_from_all_emails",
		"Identify sales orders from every stored email folder",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) { ts.record(toolCtx, "identify_orders_from_all_emails", start, err) }(time.Now())

			results, err := ts.Identifier.IdentifyAll(toolCtx.Context(), ts.Store)
			if err != nil {
				return nil, err
			}

			identified := 0
			summaries := make([]map[string]any, 0, len(results))
			for _, r := range results {
				summary := map[string]any{"email_folder": r.Folder}
				switch {
				case r.Err != nil:
					summary["error"] = r.Err.Error()
				case r.Result.Empty():
					summary["order_found"] = false
				default:
					summary["order_found"] = true
					summary["order"] = r.Result
					identified++
				}
				summaries = append(summaries, summary)
			}

			return map[string]any{
				"processed":  len(results),
				"identified": identified,
				"results":    summaries,
			}, nil
		},
	)
}

// PostOrderTool posts one identified order to Business Central.
func (ts *Toolset) PostOrderTool() tool.Tool {
	return tool.NewFunctionTool(
		"post_order_to_business_central",
		"Post the identified sales order from a stored email folder to Business Central",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"email_folder": map[string]any{
					"type":        "string",
					"description": "Path of the stored email folder",
				},
			},
			"required": []string{"email_folder"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) { ts.record(toolCtx, "post_order_to_business_central", start, err) }(time.Now())

			folder, _ := args["email_folder"].(string)

			start := time.Now()
			receipt, err := ts.BC.PostFolder(toolCtx.Context(), folder)
			if errors.Is(err, bc.ErrNoOrder) {
				return map[string]any{"posted": false, "reason": "no identified order in folder"}, nil
			}
			if err != nil {
				ts.Metrics.RecordPosting(toolCtx.Context(), "error", time.Since(start))
				return nil, err
			}
			ts.Metrics.RecordPosting(toolCtx.Context(), "success", time.Since(start))
			return map[string]any{"posted": true, "receipt": receipt}, nil
		},
	)
}

// PostAllOrdersTool posts every identified order to Business Central.
func (ts *Toolset) PostAllOrdersTool() tool.Tool {
	return tool.NewFunctionTool(
		"post_all_orders_to_business_central",
		"Post every identified sales order in the mailbox to Business Central",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (result any, err error) {
			defer func(start time.Time) {
				ts.record(toolCtx, "post_all_orders_to_business_central", start, err)
			}(time.Now())

			results, err := ts.BC.PostAll(toolCtx.Context(), ts.Store)
			if err != nil {
				return nil, err
			}

			posted := 0
			summaries := make([]map[string]any, 0, len(results))
			for _, r := range results {
				summary := map[string]any{"email_folder": r.Folder}
				if r.Err != nil {
					summary["error"] = r.Err.Error()
					ts.Metrics.RecordPosting(toolCtx.Context(), "error", 0)
				} else {
					summary["receipt"] = r.Receipt
					posted++
					ts.Metrics.RecordPosting(toolCtx.Context(), "success", 0)
				}
				summaries = append(summaries, summary)
			}

			return map[string]any{
				"processed": len(results),
				"posted":    posted,
				"results":   summaries,
			}, nil
		},
	)
}
