package procurement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/senurad/procuretrack-backend/pkg/config"
	pkgerrors "github.com/senurad/procuretrack-backend/pkg/errors"
	"github.com/senurad/procuretrack-backend/pkg/logger"
)

const (
	lastPONumberPath = "/api/po/last-number"
	createOrderPath  = "/api/po/create"
	listOrdersPath   = "/api/po"
	orderDetailsPath = "/api/po/details"
	updateStatusPath = "/api/po/status"
	suppliersPath    = "/api/suppliers"
)

const maxErrorBodyBytes = 4 << 10

var errLoggerRequired = errors.New("procurement logger is required")

// Client talks to the upstream procurement API with centralized auth
// forwarding, logging, and error mapping. The caller's bearer token is passed
// through on every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
	now        func() time.Time
}

// NewClient validates the upstream configuration and builds the client.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("upstream base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		return nil, errors.New("upstream timeout must be positive")
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		logger:     logg,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// NextPONumber fetches the next available PO number. When the upstream cannot
// serve one, a fallback first-of-year number is returned so order entry can
// proceed; the failure is logged, not surfaced.
func (c *Client) NextPONumber(ctx context.Context, token string) (string, error) {
	var out PONumberResponse
	if err := c.do(ctx, token, http.MethodGet, lastPONumberPath, nil, nil, &out); err != nil {
		c.logger.Error(ctx, "fetching next po number, using fallback", err)
		return fmt.Sprintf("%d/0001", c.now().Year()), nil
	}
	if strings.TrimSpace(out.PONumber) == "" {
		return fmt.Sprintf("%d/0001", c.now().Year()), nil
	}
	return out.PONumber, nil
}

// CreatePurchaseOrder submits the order. Required header fields are checked
// before any bytes leave the process.
func (c *Client) CreatePurchaseOrder(ctx context.Context, token string, in CreateOrderInput) (*CreateOrderResult, error) {
	if missing := in.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	ctx = c.logger.WithPONumber(ctx, in.PONumber)
	var out CreateOrderResult
	if err := c.do(ctx, token, http.MethodPost, createOrderPath, nil, in, &out); err != nil {
		return nil, err
	}
	c.logger.Info(ctx, "purchase order created")
	return &out, nil
}

// ListPurchaseOrders returns every order visible to the caller.
func (c *Client) ListPurchaseOrders(ctx context.Context, token string) ([]OrderSummary, error) {
	var out []OrderSummary
	if err := c.do(ctx, token, http.MethodGet, listOrdersPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PODetails returns the line items of one order header.
func (c *Client) PODetails(ctx context.Context, token string, poHeaderID int) ([]OrderLine, error) {
	if poHeaderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "po header id must be positive")
	}
	query := url.Values{"poHeaderId": []string{strconv.Itoa(poHeaderID)}}
	var out []OrderLine
	if err := c.do(ctx, token, http.MethodGet, orderDetailsPath, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus posts a PIN-authorized status change for one order.
func (c *Client) UpdateStatus(ctx context.Context, token string, in StatusUpdateInput) (*StatusUpdateResult, error) {
	if in.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	if strings.TrimSpace(in.PIN) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pin is required")
	}
	var out StatusUpdateResult
	if err := c.do(ctx, token, http.MethodPost, updateStatusPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suppliers returns the supplier reference list.
func (c *Client) Suppliers(ctx context.Context, token string) ([]Supplier, error) {
	var out []Supplier
	if err := c.do(ctx, token, http.MethodGet, suppliersPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding upstream request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("calling %s %s", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		upstream := &pkgerrors.UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
		code := domainCodeForStatus(resp.StatusCode)
		err := pkgerrors.Wrap(code, upstream, upstreamMessage(raw, method, path))
		c.logger.Error(ctx, fmt.Sprintf("upstream %s %s failed", method, path), err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decoding %s %s response", method, path))
	}
	return nil
}

// upstreamMessage prefers the upstream's own error text when the body carries
// one. The API is inconsistent about the key: create failures use "error",
// other endpoints use "message".
func upstreamMessage(raw []byte, method, path string) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("upstream %s %s failed", method, path)
}

func domainCodeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
