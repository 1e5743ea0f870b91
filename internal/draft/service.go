package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/senurad/procuretrack-backend/internal/procurement"
	"github.com/senurad/procuretrack-backend/pkg/auth"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/logger"
)

type orderGateway interface {
	Suppliers(ctx context.Context, token string) ([]procurement.Supplier, error)
	NextPONumber(ctx context.Context, token string) (string, error)
	CreatePurchaseOrder(ctx context.Context, token string, in procurement.CreateOrderInput) (*procurement.CreateOrderResult, error)
}

type draftRepository interface {
	Save(ctx context.Context, userID string, d *Draft) error
	Load(ctx context.Context, userID string) (*Draft, error)
	Delete(ctx context.Context, userID string) error
}

// OpenResult is the draft plus the reference data the entry form needs.
// Warnings carry non-fatal reference fetch problems; the draft itself is
// always usable.
type OpenResult struct {
	Draft     *Draft                 `json:"draft"`
	Suppliers []procurement.Supplier `json:"suppliers"`
	Warnings  []string               `json:"warnings,omitempty"`
}

// HeaderInput is a partial header update. Nil fields are left untouched.
type HeaderInput struct {
	SupplierID      *int             `json:"supplier_id"`
	Attendee        *string          `json:"attendee"`
	Description     *string          `json:"description"`
	TransactionType *TransactionType `json:"transaction_type"`
	Currency        *Currency        `json:"currency"`
	QuotationDate   *string          `json:"quotation_date"`
	Remark          *string          `json:"remark"`
	Terms           *Terms           `json:"terms"`
}

// AdjustmentInput updates the type and/or raw value of one adjustment. Nil
// fields are left untouched.
type AdjustmentInput struct {
	Type  *AdjustmentType `json:"type"`
	Value *string         `json:"value"`
}

// SubmitResult is the upstream acknowledgement plus the PO number reserved
// for the next order.
type SubmitResult struct {
	Order        *procurement.CreateOrderResult `json:"order"`
	NextPONumber string                         `json:"next_po_number,omitempty"`
	Warnings     []string                       `json:"warnings,omitempty"`
}

// Service owns the draft lifecycle: one in-progress order per user, edited
// incrementally and submitted upstream once valid.
type Service interface {
	Open(ctx context.Context, sess auth.Session) (*OpenResult, error)
	Current(ctx context.Context, sess auth.Session) (*Draft, error)
	Discard(ctx context.Context, sess auth.Session) error
	SetHeader(ctx context.Context, sess auth.Session, input HeaderInput) (*Draft, error)
	AddItem(ctx context.Context, sess auth.Session) (*Draft, error)
	UpdateItem(ctx context.Context, sess auth.Session, lineID uuid.UUID, field LineField, raw string) (*Draft, error)
	RemoveItem(ctx context.Context, sess auth.Session, lineID uuid.UUID) (*Draft, error)
	SetAdjustment(ctx context.Context, sess auth.Session, kind AdjustmentKind, input AdjustmentInput) (*Draft, error)
	Submit(ctx context.Context, sess auth.Session) (*SubmitResult, error)
}

type service struct {
	repo    draftRepository
	gateway orderGateway
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the draft service.
func NewService(repo draftRepository, gateway orderGateway, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("draft repository required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("order gateway required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		gateway: gateway,
		logg:    logg,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Open returns the user's in-progress draft, creating one when none exists.
// The supplier list and the next PO number are fetched concurrently; a
// supplier fetch failure degrades to a warning so the form still opens.
func (s *service) Open(ctx context.Context, sess auth.Session) (*OpenResult, error) {
	var (
		suppliers []procurement.Supplier
		poNumber  string
		warnings  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.gateway.Suppliers(gctx, sess.Token)
		if err != nil {
			s.logg.Error(gctx, "fetching suppliers", err)
			warnings = append(warnings, "supplier list unavailable")
			return nil
		}
		suppliers = list
		return nil
	})
	g.Go(func() error {
		number, err := s.gateway.NextPONumber(gctx, sess.Token)
		if err != nil {
			return err
		}
		poNumber = number
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d, err := s.repo.Load(ctx, sess.UserID.String())
	switch {
	case err == nil:
		// Resume the existing draft; only refresh a missing PO number.
		if d.PONumber == "" {
			d.PONumber = poNumber
			if err := s.repo.Save(ctx, sess.UserID.String(), d); err != nil {
				return nil, err
			}
		}
	case pkgerrors.Is(err, pkgerrors.CodeNotFound):
		d = New(sess.DepartmentID, s.now())
		d.PONumber = poNumber
		if err := s.repo.Save(ctx, sess.UserID.String(), d); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &OpenResult{Draft: d, Suppliers: suppliers, Warnings: warnings}, nil
}

// Current returns the user's in-progress draft.
func (s *service) Current(ctx context.Context, sess auth.Session) (*Draft, error) {
	return s.repo.Load(ctx, sess.UserID.String())
}

// Discard drops the user's draft.
func (s *service) Discard(ctx context.Context, sess auth.Session) error {
	return s.repo.Delete(ctx, sess.UserID.String())
}

// SetHeader applies a partial header update and revalidates enum fields.
func (s *service) SetHeader(ctx context.Context, sess auth.Session, input HeaderInput) (*Draft, error) {
	return s.mutate(ctx, sess, func(d *Draft) error {
		if input.SupplierID != nil {
			if *input.SupplierID < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "supplier id must not be negative")
			}
			d.SupplierID = *input.SupplierID
		}
		if input.TransactionType != nil {
			if !input.TransactionType.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown transaction type")
			}
			d.TransactionType = *input.TransactionType
		}
		if input.Currency != nil {
			if !input.Currency.IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown currency")
			}
			d.Currency = *input.Currency
		}
		if input.Attendee != nil {
			d.Attendee = *input.Attendee
		}
		if input.Description != nil {
			d.Description = *input.Description
		}
		if input.QuotationDate != nil {
			d.QuotationDate = *input.QuotationDate
		}
		if input.Remark != nil {
			d.Remark = *input.Remark
		}
		if input.Terms != nil {
			d.Terms = *input.Terms
		}
		return nil
	})
}

// AddItem appends a fresh line to the draft.
func (s *service) AddItem(ctx context.Context, sess auth.Session) (*Draft, error) {
	return s.mutate(ctx, sess, func(d *Draft) error {
		d.AddLineItem()
		return nil
	})
}

// UpdateItem edits one field of one line.
func (s *service) UpdateItem(ctx context.Context, sess auth.Session, lineID uuid.UUID, field LineField, raw string) (*Draft, error) {
	return s.mutate(ctx, sess, func(d *Draft) error {
		return d.UpdateLineItem(lineID, field, raw)
	})
}

// RemoveItem deletes one line. Unknown line ids leave the draft unchanged.
func (s *service) RemoveItem(ctx context.Context, sess auth.Session, lineID uuid.UUID) (*Draft, error) {
	return s.mutate(ctx, sess, func(d *Draft) error {
		d.RemoveLineItem(lineID)
		return nil
	})
}

// SetAdjustment updates the type and/or raw value of one adjustment.
func (s *service) SetAdjustment(ctx context.Context, sess auth.Session, kind AdjustmentKind, input AdjustmentInput) (*Draft, error) {
	if input.Type == nil && input.Value == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment update requires a type or a value")
	}
	return s.mutate(ctx, sess, func(d *Draft) error {
		if input.Type != nil {
			if err := d.SetAdjustmentType(kind, *input.Type); err != nil {
				return err
			}
		}
		if input.Value != nil {
			if err := d.SetAdjustmentValue(kind, *input.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Submit validates the draft, shapes it into the upstream contract, and
// creates the order. On success the draft is dropped and the next PO number
// is fetched eagerly, so the following order starts with a fresh number. The
// draft is preserved intact when the upstream rejects the order.
func (s *service) Submit(ctx context.Context, sess auth.Session) (*SubmitResult, error) {
	d, err := s.repo.Load(ctx, sess.UserID.String())
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	result, err := s.gateway.CreatePurchaseOrder(ctx, sess.Token, d.SubmissionPayload())
	if err != nil {
		return nil, err
	}

	out := &SubmitResult{Order: result}
	if err := s.repo.Delete(ctx, sess.UserID.String()); err != nil {
		s.logg.Error(ctx, "dropping submitted draft", err)
		out.Warnings = append(out.Warnings, "submitted draft could not be cleared")
	}
	next, err := s.gateway.NextPONumber(ctx, sess.Token)
	if err != nil {
		s.logg.Error(ctx, "refreshing po number after submit", err)
		out.Warnings = append(out.Warnings, "next po number unavailable")
	} else {
		out.NextPONumber = next
	}
	return out, nil
}

func (s *service) mutate(ctx context.Context, sess auth.Session, fn func(d *Draft) error) (*Draft, error) {
	d, err := s.repo.Load(ctx, sess.UserID.String())
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, sess.UserID.String(), d); err != nil {
		return nil, err
	}
	return d, nil
}
