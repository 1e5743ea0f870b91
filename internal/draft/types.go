package draft

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies what the purchase order pays for.
type TransactionType string

const (
	TransactionRepair  TransactionType = "Repair"
	TransactionService TransactionType = "Service"
	TransactionCapital TransactionType = "Capital"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionRepair, TransactionService, TransactionCapital:
		return true
	}
	return false
}

// Currency is the settlement currency of the order.
type Currency string

const (
	CurrencyLKR Currency = "LKR"
	CurrencyUSD Currency = "USD"
)

func (c Currency) IsValid() bool {
	return c == CurrencyLKR || c == CurrencyUSD
}

// AdjustmentKind names one of the three order-level adjustments.
type AdjustmentKind string

const (
	KindDiscount AdjustmentKind = "discount"
	KindVAT      AdjustmentKind = "vat"
	KindTax      AdjustmentKind = "tax"
)

func (k AdjustmentKind) IsValid() bool {
	switch k {
	case KindDiscount, KindVAT, KindTax:
		return true
	}
	return false
}

// AdjustmentType switches an adjustment between percentage-of-subtotal and a
// flat amount.
type AdjustmentType string

const (
	AdjustmentPercentage AdjustmentType = "percentage"
	AdjustmentFixed      AdjustmentType = "fixed"
)

func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentPercentage || t == AdjustmentFixed
}

// LineField names an editable column of a line item.
type LineField string

const (
	FieldDescription LineField = "description"
	FieldQuantity    LineField = "quantity"
	FieldUnitPrice   LineField = "unit_price"
)

// LineItem is one row of the order. TotalPrice is derived and recomputed on
// every quantity or unit-price edit.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Adjustment keeps the operator's raw text and the parsed numeric value in
// lockstep; both are replaced together on every accepted edit.
type Adjustment struct {
	Type  AdjustmentType  `json:"type"`
	Raw   string          `json:"raw"`
	Value decimal.Decimal `json:"value"`
}

// Adjustments is the discount/VAT/tax triple applied after the subtotal.
type Adjustments struct {
	Discount Adjustment `json:"discount"`
	VAT      Adjustment `json:"vat"`
	Tax      Adjustment `json:"tax"`
}

func defaultAdjustments() Adjustments {
	def := Adjustment{Type: AdjustmentPercentage, Raw: "", Value: decimal.Zero}
	return Adjustments{Discount: def, VAT: def, Tax: def}
}

// Totals are derived, never edited directly.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	Display        TotalsDisplay   `json:"display"`
}

// TotalsDisplay carries the grouped renderings of the computed totals, so the
// entry form shows "1,234.50" without formatting on the client.
type TotalsDisplay struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	VATAmount      string `json:"vat_amount"`
	TaxAmount      string `json:"tax_amount"`
	Total          string `json:"total"`
}

// Terms is the order-level terms block. It is denormalized onto every
// submitted line, but edited once per order.
type Terms struct {
	Payment      string `json:"payment"`
	Warranty     string `json:"warranty"`
	AMC          string `json:"amc"`
	Delivery     string `json:"delivery"`
	Installation string `json:"installation"`
	Validity     string `json:"validity"`
}

// Draft is the in-progress purchase order owned by a single user.
type Draft struct {
	ID           uuid.UUID `json:"id"`
	PONumber     string    `json:"po_number"`
	SupplierID   int       `json:"supplier_id"`
	DepartmentID int       `json:"department_id"`

	Attendee        string          `json:"attendee"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transaction_type"`
	Currency        Currency        `json:"currency"`
	QuotationDate   string          `json:"quotation_date"`
	Remark          string          `json:"remark"`
	Terms           Terms           `json:"terms"`

	Items       []LineItem  `json:"items"`
	Adjustments Adjustments `json:"adjustments"`
	Totals      Totals      `json:"totals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns a fresh draft for the given department: one default line, all
// adjustments at percentage/zero, currency defaulting to LKR.
func New(departmentID int, now time.Time) *Draft {
	d := &Draft{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		Currency:     CurrencyLKR,
		Adjustments:  defaultAdjustments(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	d.AddLineItem()
	return d
}
