package draft

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/senurad/procuretrack-backend/internal/procurement"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// AddLineItem appends a fresh row with quantity 1 and zero pricing.
func (d *Draft) AddLineItem() LineItem {
	item := LineItem{
		ID:         uuid.New(),
		Quantity:   decimal.NewFromInt(1),
		UnitPrice:  decimal.Zero,
		TotalPrice: decimal.Zero,
	}
	d.Items = append(d.Items, item)
	d.recalculate()
	return item
}

// UpdateLineItem edits one field of the identified row. Quantity and unit
// price accept raw operator text: grouping commas are stripped and anything
// unparseable becomes zero. Editing either recomputes the row total and the
// draft totals.
func (d *Draft) UpdateLineItem(lineID uuid.UUID, field LineField, raw string) error {
	idx := d.lineIndex(lineID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}

	item := &d.Items[idx]
	switch field {
	case FieldUnitPrice:
		item.UnitPrice = money.ParseNonNegative(raw)
		item.TotalPrice = item.Quantity.Mul(item.UnitPrice)
	case FieldQuantity:
		item.Quantity = money.ParseNonNegative(raw)
		item.TotalPrice = item.Quantity.Mul(item.UnitPrice)
	case FieldDescription:
		item.Description = raw
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown line item field")
	}

	d.recalculate()
	return nil
}

// RemoveLineItem deletes the identified row. An unknown id is a no-op.
func (d *Draft) RemoveLineItem(lineID uuid.UUID) {
	idx := d.lineIndex(lineID)
	if idx < 0 {
		return
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	d.recalculate()
}

func (d *Draft) lineIndex(lineID uuid.UUID) int {
	for i := range d.Items {
		if d.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

// SetAdjustmentType switches the named adjustment between percentage and
// fixed. The stored value carries over; only its interpretation changes.
func (d *Draft) SetAdjustmentType(kind AdjustmentKind, typ AdjustmentType) error {
	adj := d.Adjustments.byKind(kind)
	if adj == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown adjustment kind")
	}
	if !typ.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "adjustment type must be percentage or fixed")
	}
	adj.Type = typ
	d.recalculate()
	return nil
}

// SetAdjustmentValue accepts raw operator text for the named adjustment.
// Input must be empty or digits with at most one decimal point; anything else
// is rejected and the previous value is retained. Accepted input replaces the
// raw text and the parsed value together, and totals are recomputed against
// the new value in the same pass.
func (d *Draft) SetAdjustmentValue(kind AdjustmentKind, raw string) error {
	adj := d.Adjustments.byKind(kind)
	if adj == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown adjustment kind")
	}
	if !money.IsDecimalInput(raw) {
		return pkgerrors.New(pkgerrors.CodeValidation, "adjustment value must be a plain decimal number")
	}

	next := d.Adjustments
	updated := next.byKind(kind)
	updated.Raw = raw
	updated.Value = money.Parse(raw)

	d.Adjustments = next
	d.Totals = ComputeTotals(d.Items, next)
	return nil
}

func (a *Adjustments) byKind(kind AdjustmentKind) *Adjustment {
	switch kind {
	case KindDiscount:
		return &a.Discount
	case KindVAT:
		return &a.VAT
	case KindTax:
		return &a.Tax
	}
	return nil
}

// ComputeTotals derives the totals block from a line list and an adjustments
// snapshot. Callers may pass an adjustments value that differs from the
// draft's committed state, so an in-flight edit can be priced before it
// lands.
func ComputeTotals(items []LineItem, adjustments Adjustments) Totals {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].TotalPrice)
	}

	discount := adjustmentAmount(subtotal, adjustments.Discount)
	vat := adjustmentAmount(subtotal, adjustments.VAT)
	tax := adjustmentAmount(subtotal, adjustments.Tax)

	total := subtotal.Sub(discount).Add(vat).Add(tax)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		VATAmount:      vat,
		TaxAmount:      tax,
		Total:          total,
		Display: TotalsDisplay{
			Subtotal:       money.FormatDecimal(subtotal),
			DiscountAmount: money.FormatDecimal(discount),
			VATAmount:      money.FormatDecimal(vat),
			TaxAmount:      money.FormatDecimal(tax),
			Total:          money.FormatDecimal(total),
		},
	}
}

func adjustmentAmount(subtotal decimal.Decimal, adj Adjustment) decimal.Decimal {
	if adj.Type == AdjustmentPercentage {
		return subtotal.Mul(adj.Value).Div(hundred)
	}
	return adj.Value
}

func (d *Draft) recalculate() {
	d.Totals = ComputeTotals(d.Items, d.Adjustments)
}

// Validate checks submission readiness in a fixed order and reports the first
// violation, matching the order the form walks its fields.
func (d *Draft) Validate() error {
	switch {
	case d.SupplierID <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "Please select a supplier")
	case !d.TransactionType.IsValid():
		return pkgerrors.New(pkgerrors.CodeValidation, "Please select a transaction type")
	case strings.TrimSpace(d.Attendee) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "Please enter attendee")
	case strings.TrimSpace(d.QuotationDate) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "Please select a date")
	case len(d.Items) == 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "Please add at least one item")
	}

	for i := range d.Items {
		item := &d.Items[i]
		if strings.TrimSpace(item.Description) == "" || item.Quantity.IsZero() || item.UnitPrice.IsZero() {
			return pkgerrors.New(pkgerrors.CodeValidation, "Please fill in all item details")
		}
	}

	if d.Totals.Total.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Total amount cannot be zero")
	}
	return nil
}

// SubmissionPayload shapes the draft into the upstream wire contract. For
// each adjustment exactly one of the percentage/amount columns is non-zero,
// chosen by the adjustment's type; line ids are 1-based positions; the
// order-level terms block is stamped onto every line.
func (d *Draft) SubmissionPayload() procurement.CreateOrderInput {
	in := procurement.CreateOrderInput{
		PONumber:      d.PONumber,
		SID:           d.SupplierID,
		DID:           d.DepartmentID,
		Attendee:      d.Attendee,
		Description:   d.Description,
		QuotationDate: d.QuotationDate,
		Currency:      string(d.Currency),
		Status:        1,
		Total:         d.Totals.Total.InexactFloat64(),
		IsCreated:     1,
		IsApproved:    0,
		IsCancelled:   0,
		IsPrinted:     0,
		Remark:        d.Remark,
		Type:          string(d.TransactionType),
	}

	assign := func(adj Adjustment) (percentage, amount float64) {
		if adj.Type == AdjustmentPercentage {
			return adj.Value.InexactFloat64(), 0
		}
		return 0, adj.Value.InexactFloat64()
	}
	in.DiscountPercentage, in.DiscountAmount = assign(d.Adjustments.Discount)
	in.VATPercentage, in.VATAmount = assign(d.Adjustments.VAT)
	in.TaxPercentage, in.TaxAmount = assign(d.Adjustments.Tax)

	in.Items = make([]procurement.CreateOrderLine, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		in.Items = append(in.Items, procurement.CreateOrderLine{
			Description:   item.Description,
			LineID:        i + 1,
			Qty:           item.Quantity.InexactFloat64(),
			UnitPrice:     item.UnitPrice.InexactFloat64(),
			Total:         item.TotalPrice.InexactFloat64(),
			PaymenTerms:   d.Terms.Payment,
			Warranty:      d.Terms.Warranty,
			AMCTerms:      d.Terms.AMC,
			DeliveryTerms: d.Terms.Delivery,
			Installation:  d.Terms.Installation,
			Validity:      d.Terms.Validity,
		})
	}

	return in
}
