package procurement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/senurad/procuretrack-backend/pkg/config"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
)

type orderReader interface {
	ListPurchaseOrders(ctx context.Context, token string) ([]OrderSummary, error)
	PODetails(ctx context.Context, token string, poHeaderID int) ([]OrderLine, error)
}

// Printer assembles the flat print-ready structure for one order. The order
// header and its lines are fetched concurrently; both must succeed.
type Printer struct {
	reader orderReader
	cfg    config.PrintConfig
	now    func() time.Time
}

// NewPrinter builds a printer on top of the given order reader.
func NewPrinter(reader orderReader, cfg config.PrintConfig) (*Printer, error) {
	if reader == nil {
		return nil, fmt.Errorf("order reader is required")
	}
	return &Printer{
		reader: reader,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// AssemblePrintableOrder fetches the order and its lines and normalizes them
// for rendering: monetary values become fixed two-decimal strings, blank
// supplier contact fields become "N/A", and empty or "N/A" terms are dropped.
func (p *Printer) AssemblePrintableOrder(ctx context.Context, token string, poID int) (*PrintableOrder, error) {
	if poID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "po id must be positive")
	}

	var (
		lines  []OrderLine
		orders []OrderSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := p.reader.PODetails(gctx, token, poID)
		if err != nil {
			return err
		}
		lines = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := p.reader.ListPurchaseOrders(gctx, token)
		if err != nil {
			return err
		}
		orders = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var order *OrderSummary
	for i := range orders {
		if orders[i].ID == poID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
	}

	out := &PrintableOrder{
		ID:              order.ID,
		PONumber:        order.PONumber,
		Date:            order.Date,
		SupplierName:    order.SupplierName,
		SupplierAddress: fallbackNA(order.SupplierAddress),
		SupplierEmail:   fallbackNA(order.SupplierEmail),
		Attendee:        order.Attendee,
		Description:     order.Description,
		Department:      order.Department,
		Total:           fixedTwo(order.Total),
		Currency:        order.Currency,
		SignatureName:   p.cfg.SignatureName,
		SignatureTitle:  p.cfg.SignatureTitle,
	}
	if out.Date == "" {
		out.Date = p.now().Format("2006-01-02")
	}
	if out.Currency == "" {
		out.Currency = "LKR"
	}

	out.Items = make([]PrintableLine, 0, len(lines))
	for _, line := range lines {
		out.Items = append(out.Items, PrintableLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   fixedTwo(line.UnitPrice),
			TotalPrice:  fixedTwo(line.Total),
		})
	}

	out.Terms = printableTerms(order.Terms)
	return out, nil
}

// printableTerms keeps only the terms an operator actually entered, in the
// order they appear on the printed document.
func printableTerms(terms OrderTerms) []PrintableTerm {
	candidates := []PrintableTerm{
		{Label: "Payment Terms", Value: terms.Payment},
		{Label: "Warranty", Value: terms.Warranty},
		{Label: "Delivery", Value: terms.Delivery},
		{Label: "Installation", Value: terms.Installation},
		{Label: "AMC Terms", Value: terms.AMC},
		{Label: "Validity", Value: terms.Validity},
	}
	out := make([]PrintableTerm, 0, len(candidates))
	for _, term := range candidates {
		if term.Value == "" || term.Value == "N/A" {
			continue
		}
		out = append(out, term)
	}
	return out
}

func fallbackNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

func fixedTwo(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
