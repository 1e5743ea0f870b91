package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/senurad/procuretrack-backend/internal/draft"
	"github.com/senurad/procuretrack-backend/internal/procurement"
	pkgauth "github.com/senurad/procuretrack-backend/pkg/auth"
	"github.com/senurad/procuretrack-backend/pkg/config"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/logger"
)

type stubDraftService struct {
	current *draft.Draft
}

func (s *stubDraftService) Open(context.Context, pkgauth.Session) (*draft.OpenResult, error) {
	return &draft.OpenResult{Draft: s.current}, nil
}

func (s *stubDraftService) Current(context.Context, pkgauth.Session) (*draft.Draft, error) {
	if s.current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no draft in progress")
	}
	return s.current, nil
}

func (s *stubDraftService) Discard(context.Context, pkgauth.Session) error { return nil }

func (s *stubDraftService) SetHeader(_ context.Context, _ pkgauth.Session, _ draft.HeaderInput) (*draft.Draft, error) {
	return s.current, nil
}

func (s *stubDraftService) AddItem(context.Context, pkgauth.Session) (*draft.Draft, error) {
	return s.current, nil
}

func (s *stubDraftService) UpdateItem(_ context.Context, _ pkgauth.Session, _ uuid.UUID, _ draft.LineField, _ string) (*draft.Draft, error) {
	return s.current, nil
}

func (s *stubDraftService) RemoveItem(_ context.Context, _ pkgauth.Session, _ uuid.UUID) (*draft.Draft, error) {
	return s.current, nil
}

func (s *stubDraftService) SetAdjustment(_ context.Context, _ pkgauth.Session, _ draft.AdjustmentKind, _ draft.AdjustmentInput) (*draft.Draft, error) {
	return s.current, nil
}

func (s *stubDraftService) Submit(context.Context, pkgauth.Session) (*draft.SubmitResult, error) {
	return &draft.SubmitResult{Order: &procurement.CreateOrderResult{ID: 1}}, nil
}

type stubPOGateway struct{}

func (stubPOGateway) ListPurchaseOrders(context.Context, string) ([]procurement.OrderSummary, error) {
	return []procurement.OrderSummary{{ID: 1, PONumber: "2026/0001"}}, nil
}

func (stubPOGateway) PODetails(context.Context, string, int) ([]procurement.OrderLine, error) {
	return []procurement.OrderLine{{Description: "Pump"}}, nil
}

func (stubPOGateway) UpdateStatus(context.Context, string, procurement.StatusUpdateInput) (*procurement.StatusUpdateResult, error) {
	return &procurement.StatusUpdateResult{Success: true}, nil
}

type stubPrinter struct{}

func (stubPrinter) AssemblePrintableOrder(context.Context, string, int) (*procurement.PrintableOrder, error) {
	return &procurement.PrintableOrder{PONumber: "2026/0001"}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080", CORSOrigins: []string{"http://localhost:3000"}},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "procuretrack", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
	d := draft.New(4, time.Now().UTC())
	return NewRouter(testConfig(), logg, stubPinger{}, &stubDraftService{current: d}, stubPOGateway{}, stubPrinter{})
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:       uuid.New(),
		DepartmentID: 4,
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, w.Code)
		}
	}
}

func TestHealthReadyReportsRedisFailure(t *testing.T) {
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
	router := NewRouter(testConfig(), logg, stubPinger{err: context.DeadlineExceeded},
		&stubDraftService{}, stubPOGateway{}, stubPrinter{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/v1/drafts"},
		{http.MethodGet, "/api/v1/drafts/current"},
		{http.MethodGet, "/api/v1/purchase-orders"},
		{http.MethodGet, "/api/v1/purchase-orders/1/print"},
	}
	for _, tc := range paths {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s returned %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestDraftRoutesRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	header := authHeader(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil)
	r.Header.Set("Authorization", header)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("open draft returned %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data struct {
			Draft draft.Draft `json:"draft"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding open response: %v", err)
	}
	if len(envelope.Data.Draft.Items) != 1 {
		t.Fatalf("draft = %+v", envelope.Data.Draft)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/v1/drafts/current/submit", nil)
	r.Header.Set("Authorization", header)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}
}

func TestPurchaseOrderRoutes(t *testing.T) {
	router := newTestRouter(t)
	header := authHeader(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders", nil)
	r.Header.Set("Authorization", header)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/1/lines", nil)
	r.Header.Set("Authorization", header)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("lines returned %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/abc/lines", nil)
	r.Header.Set("Authorization", header)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id returned %d", w.Code)
	}
}
