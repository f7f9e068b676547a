package bc

// SalesOrderHeader is the ODataV4 payload for creating a sales order.
type SalesOrderHeader struct {
	DocumentType          string `json:"Document_Type"`
	SellToCustomerNo      string `json:"Sell_to_Customer_No"`
	SellToCustomerName    string `json:"Sell_to_Customer_Name"`
	SellToContact         string `json:"Sell_to_Contact"`
	ExternalDocumentNo    string `json:"External_Document_No"`
	DocumentDate          string `json:"Document_Date"`
	PostingDate           string `json:"Posting_Date"`
	VATReportingDate      string `json:"VAT_Reporting_Date"`
	OrderDate             string `json:"Order_Date"`
	DueDate               string `json:"Due_Date"`
	RequestedDeliveryDate string `json:"Requested_Delivery_Date"`
	Status                string `json:"Status"`
}

// SalesOrder is the subset of the created order entity the pipeline uses.
type SalesOrder struct {
	No               string `json:"No"`
	SellToCustomerNo string `json:"Sell_to_Customer_No"`
	Status           string `json:"Status"`
}

// SalesOrderLine is the ODataV4 payload for adding a line to a sales order.
// UnitPrice is filled by the API in the response and never sent.
type SalesOrderLine struct {
	DocumentType string  `json:"Document_Type"`
	DocumentNo   string  `json:"Document_No"`
	LineNo       int     `json:"Line_No"`
	Type         string  `json:"Type"`
	No           string  `json:"No"`
	Quantity     float64 `json:"Quantity"`
	LocationCode string  `json:"Location_Code"`
	UnitPrice    float64 `json:"Unit_Price,omitempty"`
}

// Receipt records a successful posting. It is persisted next to the
// identified order it came from.
type Receipt struct {
	OrderNo      string        `json:"order_no"`
	CustomerNo   string        `json:"customer_no"`
	CustomerName string        `json:"customer_name"`
	Lines        []ReceiptLine `json:"lines"`
	PostedAt     string        `json:"posted_at"`
}

// ReceiptLine records one posted sales line.
type ReceiptLine struct {
	LineNo    int     `json:"line_no"`
	ItemNo    string  `json:"item_no"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}
