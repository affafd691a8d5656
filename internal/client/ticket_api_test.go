package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supportbot/support-center/internal/ticket"
	"go.uber.org/zap"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func sampleForm() ticket.Form {
	return ticket.Form{
		Name:     "Asha",
		Email:    "asha@example.com",
		Subject:  "Refund",
		Message:  "Please refund my order.",
		Priority: ticket.PriorityLow,
		Category: "billing",
	}
}

func TestTicketAPIClient_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tickets", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req CreateTicketRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "low", req.Priority)
		assert.Equal(t, "billing", req.Category)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateTicketResponse{ID: "EXT-42"})
	}))
	defer server.Close()

	c := NewTicketAPIClient(server.URL+"/", "test-key", fastRetry(), zap.NewNop())
	receipt, err := c.Submit(context.Background(), sampleForm())
	require.NoError(t, err)
	assert.Equal(t, "EXT-42", receipt.Reference)
	assert.False(t, receipt.CreatedAt.IsZero())
}

func TestTicketAPIClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(CreateTicketResponse{ID: "EXT-3"})
	}))
	defer server.Close()

	c := NewTicketAPIClient(server.URL, "", fastRetry(), zap.NewNop())
	receipt, err := c.Submit(context.Background(), sampleForm())
	require.NoError(t, err)
	assert.Equal(t, "EXT-3", receipt.Reference)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTicketAPIClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid ticket"))
	}))
	defer server.Close()

	c := NewTicketAPIClient(server.URL, "", fastRetry(), zap.NewNop())
	_, err := c.Submit(context.Background(), sampleForm())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTicketAPIClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewTicketAPIClient(server.URL, "", fastRetry(), zap.NewNop())
	_, err := c.Submit(context.Background(), sampleForm())
	require.Error(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestTicketAPIClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	slow := RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	c := NewTicketAPIClient(server.URL, "", slow, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Submit(ctx, sampleForm())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackoff_Capped(t *testing.T) {
	c := NewTicketAPIClient("http://x", "", RetryConfig{BaseDelay: time.Second, MaxDelay: 2 * time.Second}, zap.NewNop())
	assert.Equal(t, time.Second, c.backoff(0))
	assert.Equal(t, 1500*time.Millisecond, c.backoff(1))
	assert.Equal(t, 2*time.Second, c.backoff(5))
}

func TestNewTicketAPIClient_FillsDefaultRetry(t *testing.T) {
	c := NewTicketAPIClient("http://x", "", RetryConfig{BaseDelay: 10 * time.Millisecond}, zap.NewNop())

	def := DefaultRetryConfig()
	assert.Equal(t, def.MaxRetries, c.retry.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, c.retry.BaseDelay)
	assert.Equal(t, def.MaxDelay, c.retry.MaxDelay)
}
