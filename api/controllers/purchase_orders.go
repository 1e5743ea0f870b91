package controllers

import (
	"context"
	"net/http"

	"github.com/senurad/procuretrack-backend/api/middleware"
	"github.com/senurad/procuretrack-backend/api/responses"
	"github.com/senurad/procuretrack-backend/api/validators"
	"github.com/senurad/procuretrack-backend/internal/procurement"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/logger"
)

// POGateway is the slice of the procurement client the order endpoints use.
type POGateway interface {
	ListPurchaseOrders(ctx context.Context, token string) ([]procurement.OrderSummary, error)
	PODetails(ctx context.Context, token string, poHeaderID int) ([]procurement.OrderLine, error)
	UpdateStatus(ctx context.Context, token string, in procurement.StatusUpdateInput) (*procurement.StatusUpdateResult, error)
}

// POPrinter assembles the print-ready structure for one order.
type POPrinter interface {
	AssemblePrintableOrder(ctx context.Context, token string, poID int) (*procurement.PrintableOrder, error)
}

// POList returns every purchase order visible to the caller.
func POList(gateway POGateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "procurement gateway unavailable"))
			return
		}

		sess, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := gateway.ListPurchaseOrders(r.Context(), sess.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// POLines returns the line items of one order.
func POLines(gateway POGateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "procurement gateway unavailable"))
			return
		}

		sess, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		poID, err := validators.ParseIntParam(r, "poID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := gateway.PODetails(r.Context(), sess.Token, poID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

type statusUpdateRequest struct {
	Pin     string `json:"pin" validate:"required"`
	IsPrint bool   `json:"is_print"`
}

// POUpdateStatus posts a PIN-authorized status change for one order.
func POUpdateStatus(gateway POGateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "procurement gateway unavailable"))
			return
		}

		sess, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		poID, err := validators.ParseIntParam(r, "poID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := gateway.UpdateStatus(r.Context(), sess.Token, procurement.StatusUpdateInput{
			ID:      poID,
			PIN:     payload.Pin,
			IsPrint: payload.IsPrint,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// POPrint returns the print-ready structure for one order.
func POPrint(printer POPrinter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if printer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "printer unavailable"))
			return
		}

		sess, err := middleware.SessionFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		poID, err := validators.ParseIntParam(r, "poID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		printable, err := printer.AssemblePrintableOrder(r.Context(), sess.Token, poID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, printable)
	}
}
