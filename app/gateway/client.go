package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 30 * time.Second

// Result is the uniform outcome of every gateway call. Transport failures
// and gateway-level errors both land in Error; callers never see a raw
// http error from this package.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// PaymentRequest is the payload for a create-transaction call.
type PaymentRequest struct {
	OrderID     string                 `json:"orderId"`
	Amount      decimal.Decimal        `json:"amount"`
	Currency    string                 `json:"currency"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Client talks to the payment gateway. Calls are not retried here; retry
// policy, if any, belongs to the caller.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient builds a gateway client with the fixed per-call timeout.
func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log.WithField("component", "gateway"),
	}
}

// SubmitPayment sends a create-transaction request.
func (c *Client) SubmitPayment(req PaymentRequest) Result {
	return c.post(c.baseURL+"/payment", req)
}

// SubmitRefund sends a refund request. A nil amount means full refund per
// the gateway's default.
func (c *Client) SubmitRefund(transactionID string, amount *decimal.Decimal) Result {
	body := map[string]interface{}{}
	if amount != nil {
		body["amount"] = *amount
	}

	return c.post(c.baseURL+"/payment/"+url.PathEscape(transactionID)+"/refund", body)
}

// ListTransactions fetches the transaction feed, optionally bounded by an
// inclusive [dateMin, dateMax] window (YYYY-MM-DD). Only the single page the
// gateway returns is fetched.
func (c *Client) ListTransactions(dateMin, dateMax string) Result {
	endpoint := c.baseURL + "/transactions/list"

	params := url.Values{}
	if dateMin != "" {
		params.Set("transaction_date_min", dateMin)
	}
	if dateMax != "" {
		params.Set("transaction_date_max", dateMax)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return c.failure("list transactions", err.Error())
	}

	return c.do(req, "list transactions")
}

func (c *Client) post(endpoint string, payload interface{}) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return c.failure("encode request", err.Error())
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return c.failure("build request", err.Error())
	}

	return c.do(req, endpoint)
}

func (c *Client) do(req *http.Request, op string) Result {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.failure(op, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failure(op, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(op, extractErrorMessage(data, resp.Status))
	}

	return Result{Success: true, Data: data}
}

func (c *Client) failure(op, msg string) Result {
	c.log.WithField("op", op).Warn(msg)
	return Result{Success: false, Error: msg}
}

// extractErrorMessage pulls a human-readable message out of a gateway error
// body, falling back to the HTTP status line.
func extractErrorMessage(body []byte, fallback string) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	return fallback
}
