package bankful

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pigbank.backend/internal/config"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(config.BankfulConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return client, srv
}

func TestFetchReport_Success(t *testing.T) {
	var gotForm map[string]string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"req_username":     r.PostFormValue("req_username"),
			"req_password":     r.PostFormValue("req_password"),
			"transaction_type": r.PostFormValue("transaction_type"),
			"start_date":       r.PostFormValue("start_date"),
			"end_date":         r.PostFormValue("end_date"),
			"limit":            r.PostFormValue("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"TRANS_STATUS_NAME": "SUCCESS",
			"transactions": [
				{"ORDERID": "100001", "DATETIME": "2026-03-01 12:00:00", "CUSTOMER_NAME": "Dana West", "AMOUNT": "49.99", "PAYMENT_METHOD": "card", "TRANS_STATUS_NAME": "APPROVED"},
				{"ORDERID": "100002", "DATETIME": "2026-03-02 09:30:00", "CUSTOMER_NAME": "Eli Ford", "AMOUNT": "12.00", "PAYMENT_METHOD": "ach", "TRANS_STATUS_NAME": "DECLINED"}
			]
		}`))
	})
	defer srv.Close()

	records, err := client.FetchReport(context.Background(), Credentials{Username: "merchant", Password: "secret"}, ReportParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Limit:     100,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "100001", records[0].OrderID)
	assert.Equal(t, "APPROVED", records[0].Status)

	assert.Equal(t, "merchant", gotForm["req_username"])
	assert.Equal(t, "secret", gotForm["req_password"])
	assert.Equal(t, "REPORT", gotForm["transaction_type"])
	assert.Equal(t, "2026-03-01", gotForm["start_date"])
	assert.Equal(t, "2026-03-31", gotForm["end_date"])
	assert.Equal(t, "100", gotForm["limit"])
}

func TestFetchReport_FailureMarker(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"TRANS_STATUS_NAME": "FAILURE", "error": "invalid credentials"}`))
	})
	defer srv.Close()

	_, err := client.FetchReport(context.Background(), Credentials{Username: "bad", Password: "creds"}, ReportParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstream))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestFetchReport_StatusFieldFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "message": "rate limited"}`))
	})
	defer srv.Close()

	_, err := client.FetchReport(context.Background(), Credentials{}, ReportParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstream))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFetchReport_Non2xx(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.FetchReport(context.Background(), Credentials{}, ReportParams{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUpstream))
}

func TestVerifyCredentials(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "STATUS", r.PostFormValue("transaction_type"))
		w.Write([]byte(`{"TRANS_STATUS_NAME": "SUCCESS"}`))
	})
	defer srv.Close()

	require.NoError(t, client.VerifyCredentials(context.Background(), Credentials{Username: "u", Password: "p"}))
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     entities.TransactionStatus
	}{
		{"APPROVED", entities.TransactionCompleted},
		{"CAPTURED", entities.TransactionCompleted},
		{"SETTLED", entities.TransactionCompleted},
		{"settled", entities.TransactionCompleted},
		{"PENDING", entities.TransactionPending},
		{"DECLINED", entities.TransactionFailed},
		{"VOIDED", entities.TransactionRefunded},
		{"REFUNDED", entities.TransactionRefunded},
		{"SOMETHING_NEW", entities.TransactionPending},
		{"", entities.TransactionPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapStatus(tt.provider), "provider status %q", tt.provider)
	}
}

func TestExternalID(t *testing.T) {
	assert.Equal(t, "BF-100001", ExternalID("100001"))
}
