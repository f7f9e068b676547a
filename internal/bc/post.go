package bc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jkivimaki/orderintake/internal/logging"
	"github.com/jkivimaki/orderintake/internal/mailbox"
	"github.com/jkivimaki/orderintake/internal/order"
)

// ErrNoOrder is returned when a folder holds no identified order.
var ErrNoOrder = errors.New("no identified order in folder")

// lineNoStep spaces sales line numbers so lines can be inserted later.
const lineNoStep = 10000

// PostOrder creates a sales order header and one sales line per item.
// Dates on the header are anchored to today; a due date carried on the
// order wins, otherwise it defaults to a week out.
func (c *Client) PostOrder(ctx context.Context, d *order.Details) (*Receipt, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("order is not postable: %w", err)
	}

	now := c.now()
	today := now.Format("2006-01-02")
	dueDate := d.Dates.Due
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, dueDateOffsetDays).Format("2006-01-02")
	}
	header := SalesOrderHeader{
		DocumentType:          "Order",
		SellToCustomerNo:      d.Customer.Number,
		SellToCustomerName:    d.Customer.Name,
		SellToContact:         d.Customer.ContactPerson,
		ExternalDocumentNo:    externalDocumentNo,
		DocumentDate:          today,
		PostingDate:           today,
		VATReportingDate:      today,
		OrderDate:             today,
		DueDate:               dueDate,
		RequestedDeliveryDate: d.Dates.RequestedDelivery,
		Status:                "Open",
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/SalesOrder", header)
	if err != nil {
		return nil, fmt.Errorf("failed to create sales order: %w", err)
	}

	var created SalesOrder
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("failed to parse sales order response: %w", err)
	}
	if created.No == "" {
		return nil, fmt.Errorf("sales order response carries no order number")
	}

	logger := c.opts.Logger.With(
		slog.String(logging.KeyOrderNo, created.No),
		slog.String(logging.KeyCustomer, d.Customer.Number))
	logger.InfoContext(ctx, "sales order created")

	receipt := &Receipt{
		OrderNo:      created.No,
		CustomerNo:   d.Customer.Number,
		CustomerName: d.Customer.Name,
		PostedAt:     now.Format(time.RFC3339),
	}

	for i, item := range d.Items {
		line := SalesOrderLine{
			DocumentType: "Order",
			DocumentNo:   created.No,
			LineNo:       (i + 1) * lineNoStep,
			Type:         "Item",
			No:           item.Number,
			Quantity:     item.Quantity,
			LocationCode: "",
		}
		lineData, err := c.doRequest(ctx, http.MethodPost, "/SalesOrderSalesLines", line)
		if err != nil {
			return nil, fmt.Errorf("failed to add line %d for order %s: %w", line.LineNo, created.No, err)
		}
		var createdLine SalesOrderLine
		if err := json.Unmarshal(lineData, &createdLine); err != nil {
			return nil, fmt.Errorf("failed to parse sales line response: %w", err)
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			LineNo:    line.LineNo,
			ItemNo:    item.Number,
			Quantity:  line.Quantity,
			Unit:      item.Unit,
			UnitPrice: createdLine.UnitPrice,
		})
	}

	logger.InfoContext(ctx, "sales lines added", slog.Int("lines", len(receipt.Lines)))
	return receipt, nil
}

// PostFolder posts the identified order stored in an email folder and writes
// the resulting receipt back into the folder. Returns ErrNoOrder when the
// folder has no identified order.
func (c *Client) PostFolder(ctx context.Context, folder string) (*Receipt, error) {
	var res order.Result
	if err := mailbox.ReadOrder(folder, &res); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoOrder
		}
		return nil, fmt.Errorf("failed to read identified order: %w", err)
	}
	if res.Empty() {
		return nil, ErrNoOrder
	}

	receipt, err := c.PostOrder(ctx, res.Details)
	if err != nil {
		return nil, err
	}

	if err := mailbox.SaveReceipt(folder, receipt); err != nil {
		return nil, fmt.Errorf("failed to save posting receipt: %w", err)
	}
	return receipt, nil
}

// FolderReceipt pairs a posting result with its source folder.
type FolderReceipt struct {
	Folder  string
	Receipt *Receipt
	Err     error
}

// PostAll posts every identified order in the store. Folders without an
// identified order are skipped; failed folders are reported in the result
// slice instead of aborting the run.
func (c *Client) PostAll(ctx context.Context, store *mailbox.Store) ([]FolderReceipt, error) {
	folders, err := store.Folders()
	if err != nil {
		return nil, fmt.Errorf("failed to list email folders: %w", err)
	}

	var results []FolderReceipt
	for _, folder := range folders {
		if !mailbox.HasOrder(folder) {
			continue
		}
		receipt, err := c.PostFolder(ctx, folder)
		if err != nil {
			c.opts.Logger.ErrorContext(ctx, "posting failed",
				slog.String(logging.KeyFolder, folder), logging.Err(err))
		}
		results = append(results, FolderReceipt{Folder: folder, Receipt: receipt, Err: err})
	}
	return results, nil
}
