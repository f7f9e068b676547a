package order

import "fmt"

// DefaultUnit is the unit of measure applied when an email does not name one.
// KPL is Finnish for piece, matching the master data.
const DefaultUnit = "KPL"

// Result is the outcome of identifying an order from one email. Details is
// nil when no valid order information could be found.
type Result struct {
	Details    *Details `json:"order_details"`
	Confidence float64  `json:"confidence_score"`
	Error      string   `json:"error,omitempty"`
}

// Details is the structured order record extracted from an email.
type Details struct {
	Customer    CustomerInfo `json:"customer_info"`
	Dates       Dates        `json:"dates"`
	Items       []Item       `json:"items"`
	RepairNotes []string     `json:"data_repair_notes"`
}

// CustomerInfo identifies the ordering customer after master-data repair.
type CustomerInfo struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Number        string `json:"customer_number"`
	// OriginalName preserves the pre-repair customer name when it differed.
	OriginalName string `json:"original_customer_name,omitempty"`
}

// Dates carries the order dates in YYYY-MM-DD form.
type Dates struct {
	RequestedDelivery string `json:"requested_delivery_date"`
	Due               string `json:"due_date,omitempty"`
}

// Item is one order line after master-data repair.
type Item struct {
	Number      string  `json:"item_number"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	// OriginalInfo preserves the pre-repair item reference when it differed.
	OriginalInfo string `json:"original_item_info,omitempty"`
	// MatchedFromImage is true when the item was identified by comparing an
	// email attachment against the product catalog pictures.
	MatchedFromImage bool `json:"matched_from_image"`
}

// Empty reports whether the result carries no usable order.
func (r *Result) Empty() bool {
	return r == nil || r.Details == nil || len(r.Details.Items) == 0
}

// Validate checks that an identified order is complete enough to post.
func (d *Details) Validate() error {
	if d == nil {
		return fmt.Errorf("order details are nil")
	}
	if d.Customer.Number == "" {
		return fmt.Errorf("order has no customer number")
	}
	if d.Dates.RequestedDelivery == "" {
		return fmt.Errorf("order has no requested delivery date")
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("order has no items")
	}
	for i, item := range d.Items {
		if item.Number == "" {
			return fmt.Errorf("order item %d has no item number", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("order item %d has non-positive quantity", i)
		}
	}
	return nil
}

// AddRepairNote appends a data-repair note to the order.
func (d *Details) AddRepairNote(format string, args ...any) {
	d.RepairNotes = append(d.RepairNotes, fmt.Sprintf(format, args...))
}
