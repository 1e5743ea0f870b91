package procurement

import "strings"

// Supplier is the read-only supplier reference served by the upstream API.
type Supplier struct {
	ID      int    `json:"id"`
	Company string `json:"company"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
}

// PONumberResponse is the body returned by the last-PO-number endpoint.
type PONumberResponse struct {
	PONumber string `json:"poNumber"`
}

// CreateOrderLine is one submitted line. The upstream schema denormalizes the
// order-level terms onto every line, so each carries the full terms block.
type CreateOrderLine struct {
	Description   string  `json:"Description"`
	LineID        int     `json:"LineID"`
	Qty           float64 `json:"Qty"`
	UnitPrice     float64 `json:"UnitPrice"`
	Total         float64 `json:"Total"`
	PaymenTerms   string  `json:"PaymenTerms"`
	Warranty      string  `json:"Warranty"`
	AMCTerms      string  `json:"AMCTerms"`
	DeliveryTerms string  `json:"DeliveryTerms"`
	Installation  string  `json:"Installation"`
	Validity      string  `json:"Validity"`
}

// CreateOrderInput is the exact wire shape of the create-PO endpoint. Field
// names match the upstream database columns, misspellings included
// (PaymenTerms).
type CreateOrderInput struct {
	PONumber      string  `json:"PONumber"`
	SID           int     `json:"SID"`
	DID           int     `json:"DID"`
	Attendee      string  `json:"Attendee"`
	Description   string  `json:"Description"`
	QuotationDate string  `json:"QuotationDate"`
	Currency      string  `json:"Currency"`
	Status        int     `json:"Status"`
	Total         float64 `json:"Total"`
	IsCreated     int     `json:"isCreated"`
	IsApproved    int     `json:"isApproved"`
	IsCancelled   int     `json:"isCancelled"`
	IsPrinted     int     `json:"isPrinted"`
	Remark        string  `json:"Remark"`
	Type          string  `json:"Type"`

	DiscountPercentage float64 `json:"DiscountPercentage"`
	DiscountAmount     float64 `json:"DiscountAmount"`
	VATPercentage      float64 `json:"VATPercentage"`
	VATAmount          float64 `json:"VATAmount"`
	TaxPercentage      float64 `json:"TaxPercentage"`
	TaxAmount          float64 `json:"TaxAmount"`

	Items []CreateOrderLine `json:"items"`
}

// MissingFields lists the required header fields that are absent. Presence is
// checked explicitly per field type; a legitimate zero Total is not treated
// as missing.
func (in CreateOrderInput) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(in.PONumber) == "" {
		missing = append(missing, "PONumber")
	}
	if in.SID <= 0 {
		missing = append(missing, "SID")
	}
	if in.DID <= 0 {
		missing = append(missing, "DID")
	}
	if strings.TrimSpace(in.Attendee) == "" {
		missing = append(missing, "Attendee")
	}
	if strings.TrimSpace(in.QuotationDate) == "" {
		missing = append(missing, "QuotationDate")
	}
	if strings.TrimSpace(in.Currency) == "" {
		missing = append(missing, "Currency")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "Type")
	}
	return missing
}

// OrderTerms is the terms block as the upstream returns it on order
// summaries.
type OrderTerms struct {
	Payment      string `json:"payment"`
	Warranty     string `json:"warranty"`
	AMC          string `json:"amc"`
	Delivery     string `json:"delivery"`
	Installation string `json:"installation"`
	Validity     string `json:"validity"`
}

// OrderSummary is one entry of the order list endpoint.
type OrderSummary struct {
	ID              int        `json:"id"`
	PONumber        string     `json:"poNumber"`
	Date            string     `json:"date"`
	SupplierName    string     `json:"supplierName"`
	SupplierAddress string     `json:"supplierAddress"`
	SupplierEmail   string     `json:"supplierEmail"`
	Attendee        string     `json:"attendee"`
	Description     string     `json:"description"`
	Department      string     `json:"department"`
	Total           float64    `json:"total"`
	Currency        string     `json:"currency"`
	Status          int        `json:"status"`
	Terms           OrderTerms `json:"terms"`
}

// OrderLine is one entry of the PO details endpoint.
type OrderLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// CreateOrderResult is the upstream acknowledgement of a created order.
type CreateOrderResult struct {
	ID       int    `json:"id"`
	PONumber string `json:"poNumber"`
	Message  string `json:"message,omitempty"`
}

// StatusUpdateInput is the body of the status-update endpoint.
type StatusUpdateInput struct {
	ID      int    `json:"id"`
	PIN     string `json:"pin"`
	IsPrint bool   `json:"isPrint"`
}

// StatusUpdateResult is the parsed status-update response.
type StatusUpdateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PrintableLine is a monetary-normalized line of the print-ready structure.
type PrintableLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   string  `json:"unitPrice"`
	TotalPrice  string  `json:"totalPrice"`
}

// PrintableTerm is a labeled, non-empty term entry.
type PrintableTerm struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PrintableOrder is the flat structure handed to the PDF renderer.
type PrintableOrder struct {
	ID              int             `json:"id"`
	PONumber        string          `json:"poNumber"`
	Date            string          `json:"date"`
	SupplierName    string          `json:"supplierName"`
	SupplierAddress string          `json:"supplierAddress"`
	SupplierEmail   string          `json:"supplierEmail"`
	Attendee        string          `json:"attendee"`
	Description     string          `json:"description"`
	Department      string          `json:"department"`
	Items           []PrintableLine `json:"items"`
	Terms           []PrintableTerm `json:"terms"`
	Total           string          `json:"total"`
	Currency        string          `json:"currency"`
	SignatureName   string          `json:"signatureName"`
	SignatureTitle  string          `json:"signatureTitle"`
}
