package extract

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jkivimaki/orderintake/internal/catalog"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

// imageExtensions are the attachment types forwarded to the vision model.
var imageExtensions = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
}

// systemPrompt renders the extraction instructions, including the master
// data tables the model repairs against and the date rules anchored to now.
func systemPrompt(now time.Time, leadDays int) string {
	today := now.Format("2006-01-02")
	defaultDelivery := now.AddDate(0, 0, leadDays).Format("2006-01-02")

	var customers strings.Builder
	for _, c := range catalog.Customers {
		fmt.Fprintf(&customers, "- %s - %s\n", c.Name, c.Number)
	}

	var items strings.Builder
	for _, item := range catalog.Items {
		fmt.Fprintf(&items, "- %s - %s\n", item.Number, item.Description)
	}

	return fmt.Sprintf(`You are an expert at identifying sales orders from emails and images.
You must validate and repair order information using the existing master data records.

Valid Customers (Customer Name - Customer Number):
%s
Valid Items (Item Number - Description):
%s
IMAGE MATCHING INSTRUCTIONS:
- You will receive email attachments and product catalog images
- CAREFULLY COMPARE any email attachment images with ALL product catalog images
- Look for visual similarities in shape, color, and features
- If an email attachment shows a product, identify which catalog product it matches
- Even if the email text doesn't mention a specific product, the attachment may show the product being ordered
- When matching images, use the item number and description of the matching catalog product

Data Repair Instructions:
1. Customer Names:
   - If a customer name is slightly misspelled or has different capitalization, match it to the closest valid customer
   - If the email signature mentions a company name, use that as the customer

2. Item Numbers and Descriptions:
   - If an item number is found without a description, add the correct description from the master data
   - If a description is found without an item number, try to match it with the correct item number
   - Match partial item numbers (e.g., "1896" should be matched to "1896-S")

3. Dates:
   - Today's date is %s
   - The default delivery date (today + %d days) is %s
   - Ensure all dates are in YYYY-MM-DD format
   - IMPORTANT: The requested delivery date must ALWAYS be in the future
   - If a delivery date is mentioned but it's in the past, use %s instead
   - If no delivery date is specified at all, set it to %s
   - ALWAYS include your reasoning for the delivery date in the data_repair_notes

4. Quantities:
   - If a quantity is mentioned in the email (e.g., "3 pieces", "5 units"), use that quantity
   - If no quantity is specified, default to 1
   - The unit of measurement should be "KPL" unless otherwise specified

Extract all order information and return it in a structured JSON format. Always try to repair and match data before rejecting it.

Structure:
{
    "order_details": {
        "customer_info": {
            "name": "string",
            "contact_person": "string",
            "customer_number": "string",
            "original_customer_name": "string"
        },
        "dates": {
            "requested_delivery_date": "YYYY-MM-DD"
        },
        "items": [
            {
                "item_number": "string",
                "description": "string",
                "quantity": 1,
                "unit": "KPL",
                "original_item_info": "string",
                "matched_from_image": false
            }
        ],
        "data_repair_notes": ["string"]
    },
    "confidence_score": 0.0
}

If no valid order information can be found, or if the data cannot be repaired to match the master data, return {"order_details": null, "confidence_score": 0}`,
		customers.String(), items.String(),
		today, leadDays, defaultDelivery, defaultDelivery, defaultDelivery)
}

// userPrompt renders the per-email analysis request that precedes the images.
func userPrompt(email *mailbox.Email, attachments []string, pictures []catalog.Picture) string {
	var b strings.Builder

	b.WriteString("Please analyze this email and any attached images to extract sales order information.\n\n")
	b.WriteString("Email Content:\n-------------\n")
	b.WriteString(email.Content)
	b.WriteString("\n\nAttachments Found:\n----------------\n")
	if len(attachments) == 0 {
		b.WriteString("No attachments\n")
	}
	for _, att := range attachments {
		fmt.Fprintf(&b, "- %s\n", filepath.Base(att))
	}

	b.WriteString("\nProduct Catalog Images Available:\n-------------------------------\n")
	for _, pic := range pictures {
		fmt.Fprintf(&b, "- %s - %s\n", pic.ItemNumber, pic.Description)
	}

	b.WriteString("\nCompare any attached images with all product catalog images to identify what product is being ordered. Return null if no valid order information can be found.\n")

	return b.String()
}

// imageDataURL reads an image file and encodes it as a base64 data URL.
// Returns false for non-image files.
func imageDataURL(path string) (string, bool, error) {
	subtype, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	return fmt.Sprintf("data:image/%s;base64,%s", subtype, base64.StdEncoding.EncodeToString(data)), true, nil
}
