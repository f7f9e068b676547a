package agents

import (
	"testing"

	"github.com/hupe1980/agentmesh/model"
	"github.com/hupe1980/agentmesh/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkivimaki/orderintake/internal/instrumentation"
)

func testToolset() *Toolset {
	return &Toolset{
		Metrics:    &instrumentation.Metrics{},
		MaxResults: 50,
		MarkAsRead: true,
	}
}

func TestToolDefinitions(t *testing.T) {
	ts := testToolset()

	tests := []struct {
		tool     tool.Tool
		name     string
		required []string
	}{
		{ts.FetchEmailsTool(), "fetch_gmail_emails", nil},
		{ts.SendEmailTool(), "send_gmail_email", []string{"to", "subject", "body"}},
		{ts.IdentifyOrderTool(), "identify_orders_from_emails", []string{"email_folder"}},
		{ts.IdentifyAllOrdersTool(), "identify_orders_from_all_emails", nil},
		{ts.PostOrderTool(), "post_order_to_business_central", []string{"email_folder"}},
		{ts.PostAllOrdersTool(), "post_all_orders_to_business_central", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tool.Name())
			assert.NotEmpty(t, tt.tool.Description())

			params := tt.tool.Parameters()
			assert.Equal(t, "object", params["type"])

			if tt.required != nil {
				assert.Equal(t, tt.required, params["required"])
			}
		})
	}
}

func TestBuild(t *testing.T) {
	llm := model.NewMockModel("test-model", "mock")

	orchestrator, err := Build(testToolset(), llm)
	require.NoError(t, err)

	assert.Equal(t, "orchestration_agent", orchestrator.Name())

	subs := orchestrator.SubAgents()
	require.Len(t, subs, 3)

	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"email_agent", "order_identification_agent", "business_central_agent"}, names)
}
