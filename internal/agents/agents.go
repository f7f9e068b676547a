package agents

import (
	"fmt"

	"github.com/hupe1980/agentmesh/agent"
	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
)

const emailAgentInstruction = `You are an email processing agent for a sales order intake pipeline.

Your responsibilities:
- Fetch new emails from the Gmail inbox with the fetch_gmail_emails tool. Each fetched email is stored in its own folder together with its attachments.
- Send emails with the send_gmail_email tool when the user asks for a reply or notification.

Report the stored email folders back so other agents can process them. Do not interpret order contents yourself.`

const orderAgentInstruction = `You are an order identification agent.

Your responsibilities:
- Use identify_orders_from_all_emails to analyze every stored email, or identify_orders_from_emails for a single email folder.
- The tools compare email text and attachment images against the product catalog and validate the result against customer and item master data.

Report which folders contained orders, the identified customers and items, and any data repair notes. Emails without order information are normal; report them as such.`

const bcAgentInstruction = `You are a Business Central posting agent.

Your responsibilities:
- Use post_all_orders_to_business_central to post every identified order, or post_order_to_business_central for a single email folder.
- Each posting creates a sales order header and one sales line per item.

Report the created order numbers. If a posting fails, report the error for that folder and continue with the rest.`

const orchestratorInstruction = `You are the orchestrator of a sales order intake pipeline that turns emails into Business Central sales orders.

The pipeline has three stages, each handled by a sub-agent:
1. email_agent fetches emails from the Gmail inbox into the mailbox.
2. order_identification_agent identifies sales orders from the stored emails and repairs them against master data.
3. business_central_agent posts the identified orders to Business Central.

Run the stages in order and pass the relevant folder information between them. Summarize the outcome at the end: how many emails were fetched, how many orders were identified, and which sales orders were created. When the user asks for only part of the pipeline, run only the stages they asked for.`

// Build assembles the agent hierarchy: an orchestrator with email, order
// identification and Business Central sub-agents, each carrying the tools
// for its pipeline stage.
func Build(ts *Toolset, llm model.Model) (*agent.ModelAgent, error) {
	emailAgent := agent.NewModelAgent("email_agent", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(emailAgentInstruction)
		o.Tools = toolMap(ts.FetchEmailsTool(), ts.SendEmailTool())
	})

	orderAgent := agent.NewModelAgent("order_identification_agent", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(orderAgentInstruction)
		o.Tools = toolMap(ts.IdentifyOrderTool(), ts.IdentifyAllOrdersTool())
	})

	bcAgent := agent.NewModelAgent("business_central_agent", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(bcAgentInstruction)
		o.Tools = toolMap(ts.PostOrderTool(), ts.PostAllOrdersTool())
	})

	orchestrator := agent.NewModelAgent("orchestration_agent", llm, func(o *agent.ModelAgentOptions) {
		o.Instruction = agent.NewInstructionFromText(orchestratorInstruction)
	})

	if err := orchestrator.SetSubAgents(emailAgent, orderAgent, bcAgent); err != nil {
		return nil, fmt.Errorf("failed to assemble agent hierarchy: %w", err)
	}

	return orchestrator, nil
}

func toolMap(tools ...tool.Tool) map[string]tool.Tool {
	m := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		m[t.Name()] = t
	}
	return m
}
