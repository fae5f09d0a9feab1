package bankful

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"pigbank.backend/internal/config"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/pkg/logger"
)

// Client talks to the Bankful processor reporting API. Every call is a
// form-encoded POST against the same base URL; the action is selected by
// the transaction_type field.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a processor client from config
func NewClient(cfg config.BankfulConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Credentials are the merchant's processor API credentials, passed through
// per request and never stored.
type Credentials struct {
	Username string
	Password string
}

// ReportParams narrows the report window
type ReportParams struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Limit     int
}

// Record is one transaction row as the processor reports it
type Record struct {
	OrderID       string `json:"ORDERID"`
	Date          string `json:"DATETIME"`
	CustomerName  string `json:"CUSTOMER_NAME"`
	CustomerEmail string `json:"CUSTOMER_EMAIL"`
	Amount        string `json:"AMOUNT"`
	PaymentMethod string `json:"PAYMENT_METHOD"`
	Status        string `json:"TRANS_STATUS_NAME"`
	RiskTier      string `json:"RISK"`
	AVSResult     string `json:"AVS_RESULT"`
}

// envelope is the common response wrapper. A failure is signaled by the
// TRANS_STATUS_NAME/status markers rather than the HTTP status code.
type envelope struct {
	TransStatusName string   `json:"TRANS_STATUS_NAME"`
	Status          string   `json:"status"`
	Error           string   `json:"error"`
	Message         string   `json:"message"`
	Transactions    []Record `json:"transactions"`
}

// FetchReport pulls transactions for the given window
func (c *Client) FetchReport(ctx context.Context, creds Credentials, params ReportParams) ([]Record, error) {
	form := url.Values{}
	form.Set("transaction_type", "REPORT")
	if params.StartDate != "" {
		form.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		form.Set("end_date", params.EndDate)
	}
	if params.Limit > 0 {
		form.Set("limit", strconv.Itoa(params.Limit))
	}

	env, err := c.post(ctx, creds, form)
	if err != nil {
		return nil, err
	}
	return env.Transactions, nil
}

// VerifyCredentials performs a STATUS call to check the credentials work
func (c *Client) VerifyCredentials(ctx context.Context, creds Credentials) error {
	form := url.Values{}
	form.Set("transaction_type", "STATUS")

	_, err := c.post(ctx, creds, form)
	return err
}

func (c *Client) post(ctx context.Context, creds Credentials, form url.Values) (*envelope, error) {
	form.Set("req_username", creds.Username)
	form.Set("req_password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(ctx, "bankful request failed", zap.Error(err))
		return nil, domainerrors.Upstream("payment processor unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Upstream("failed to read processor response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error(ctx, "bankful returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(body, 256)))
		return nil, domainerrors.Upstream(fmt.Sprintf("payment processor returned status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domainerrors.Upstream("invalid processor response")
	}

	if isFailure(&env) {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "payment processor reported a failure"
		}
		return nil, domainerrors.Upstream(msg)
	}

	return &env, nil
}

func isFailure(env *envelope) bool {
	if strings.EqualFold(env.TransStatusName, "FAILURE") || strings.EqualFold(env.TransStatusName, "ERROR") {
		return true
	}
	if strings.EqualFold(env.Status, "error") || strings.EqualFold(env.Status, "failure") {
		return true
	}
	return false
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// MapStatus translates the processor's status vocabulary to ours.
// Unrecognized values land on Pending so a vocabulary drift upstream
// never drops rows.
func MapStatus(providerStatus string) entities.TransactionStatus {
	switch strings.ToUpper(strings.TrimSpace(providerStatus)) {
	case "APPROVED", "CAPTURED", "SETTLED":
		return entities.TransactionCompleted
	case "PENDING":
		return entities.TransactionPending
	case "DECLINED":
		return entities.TransactionFailed
	case "VOIDED", "REFUNDED":
		return entities.TransactionRefunded
	default:
		return entities.TransactionPending
	}
}

// ExternalID derives the dedup key for an imported row
func ExternalID(orderID string) string {
	return "BF-" + orderID
}
