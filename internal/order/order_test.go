package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() *Details {
	return &Details{
		Customer: CustomerInfo{Name: "Adatum Corporation", Number: "10000"},
		Dates:    Dates{RequestedDelivery: "2026-09-13"},
		Items: []Item{
			{Number: "1900-S", Description: "PARIS-vierastuoli, musta", Quantity: 3, Unit: DefaultUnit},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Details)
		wantErr string
	}{
		{name: "valid", mutate: func(d *Details) {}},
		{
			name:    "missing customer number",
			mutate:  func(d *Details) { d.Customer.Number = "" },
			wantErr: "no customer number",
		},
		{
			name:    "missing delivery date",
			mutate:  func(d *Details) { d.Dates.RequestedDelivery = "" },
			wantErr: "no requested delivery date",
		},
		{
			name:    "no items",
			mutate:  func(d *Details) { d.Items = nil },
			wantErr: "no items",
		},
		{
			name:    "item without number",
			mutate:  func(d *Details) { d.Items[0].Number = "" },
			wantErr: "item 0 has no item number",
		},
		{
			name:    "zero quantity",
			mutate:  func(d *Details) { d.Items[0].Quantity = 0 },
			wantErr: "non-positive quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(d)
			err := d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	var nilDetails *Details
	assert.Error(t, nilDetails.Validate())
}

func TestEmpty(t *testing.T) {
	var nilResult *Result
	assert.True(t, nilResult.Empty())
	assert.True(t, (&Result{}).Empty())
	assert.True(t, (&Result{Details: &Details{}}).Empty())
	assert.False(t, (&Result{Details: validDetails()}).Empty())
}

func TestResultJSONShape(t *testing.T) {
	res := &Result{Details: validDetails(), Confidence: 0.92}
	res.Details.AddRepairNote("Delivery date set to %s because no date was specified", "2026-09-13")

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "order_details")
	assert.Contains(t, raw, "confidence_score")

	details := raw["order_details"].(map[string]any)
	assert.Contains(t, details, "customer_info")
	assert.Contains(t, details, "dates")
	assert.Contains(t, details, "items")
	assert.Contains(t, details, "data_repair_notes")

	item := details["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "1900-S", item["item_number"])
	assert.Equal(t, "KPL", item["unit"])
	assert.Equal(t, false, item["matched_from_image"])
}
