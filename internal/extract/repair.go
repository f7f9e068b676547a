package extract

import (
	"time"

	"github.com/jkivimaki/orderintake/internal/catalog"
	"github.com/jkivimaki/orderintake/internal/order"
)

// repairResult normalizes a model response against the master data. The
// model is instructed to repair on its own, but its output is not trusted:
// customer and item identifiers are re-matched here, missing quantities and
// units get their defaults, and the requested delivery date is forced into
// the future. Every change is recorded in the repair notes.
func repairResult(res *order.Result, now time.Time, leadDays int) {
	if res.Empty() {
		return
	}
	d := res.Details

	repairCustomer(d)
	for i := range d.Items {
		repairItem(d, &d.Items[i])
	}
	repairDates(d, now, leadDays)
}

func repairCustomer(d *order.Details) {
	// A customer number from the model is only kept when it exists.
	if c, ok := catalog.CustomerByNumber(d.Customer.Number); ok {
		if d.Customer.Name != c.Name {
			if d.Customer.OriginalName == "" && d.Customer.Name != "" {
				d.Customer.OriginalName = d.Customer.Name
			}
			d.Customer.Name = c.Name
		}
		return
	}

	c, ok := catalog.MatchCustomer(d.Customer.Name)
	if !ok {
		return
	}
	if d.Customer.Name != c.Name {
		if d.Customer.OriginalName == "" {
			d.Customer.OriginalName = d.Customer.Name
		}
		d.AddRepairNote("Matched customer %q to %q (%s)", d.Customer.Name, c.Name, c.Number)
		d.Customer.Name = c.Name
	}
	d.Customer.Number = c.Number
}

func repairItem(d *order.Details, it *order.Item) {
	if item, ok := catalog.MatchItemNumber(it.Number); ok {
		if it.Number != item.Number {
			d.AddRepairNote("Completed item number %q to %q", it.Number, item.Number)
		}
		it.Number = item.Number
		if it.Description == "" {
			it.Description = item.Description
		}
	} else if item, ok := catalog.MatchItemDescription(it.Description); ok {
		d.AddRepairNote("Matched item %q to %s", it.Description, item.Number)
		it.Number = item.Number
		it.Description = item.Description
	}

	if it.Quantity <= 0 {
		it.Quantity = 1
		d.AddRepairNote("Quantity missing for item %s, defaulted to 1", it.Number)
	}
	if it.Unit == "" {
		it.Unit = order.DefaultUnit
	}
}

func repairDates(d *order.Details, now time.Time, leadDays int) {
	fallback := now.AddDate(0, 0, leadDays).Format("2006-01-02")
	today := now.Format("2006-01-02")

	requested, err := time.Parse("2006-01-02", d.Dates.RequestedDelivery)
	switch {
	case d.Dates.RequestedDelivery == "":
		d.Dates.RequestedDelivery = fallback
		d.AddRepairNote("No delivery date specified, defaulted to %s", fallback)
	case err != nil:
		d.AddRepairNote("Unparseable delivery date %q, defaulted to %s", d.Dates.RequestedDelivery, fallback)
		d.Dates.RequestedDelivery = fallback
	case requested.Format("2006-01-02") <= today:
		d.AddRepairNote("Delivery date %s is not in the future, moved to %s", d.Dates.RequestedDelivery, fallback)
		d.Dates.RequestedDelivery = fallback
	}
}
