package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/payouts/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.Token = "secret"

	client, err := NewClient(config)
	require.NoError(t, err)

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with nil config", func(t *testing.T) {
		client, err := NewClient(nil)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		_, err := NewClient(&ClientConfig{BaseURL: "ftp://example.com"})
		assert.Error(t, err)
	})
}

func TestMarkCommissionDuplicate(t *testing.T) {
	t.Run("sends workspace and idempotency key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/commissions/cm_123/duplicate", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ws_1", body["workspaceId"])

			w.WriteHeader(http.StatusOK)
		})

		err := client.MarkCommissionDuplicate(context.Background(), "ws_1", "cm_123", "key-1")
		assert.NoError(t, err)
	})

	t.Run("generates an idempotency key when empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Len(t, r.Header.Get("Idempotency-Key"), 36)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.MarkCommissionDuplicate(context.Background(), "ws_1", "cm_123", ""))
	})

	t.Run("server rejection carries the message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"bad_request","message":"Commission already paid"}}`))
		})

		err := client.MarkCommissionDuplicate(context.Background(), "ws_1", "cm_123", "")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrorTypeHTTP, apiErr.Type)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.EqualError(t, apiErr.Err, "Commission already paid")
	})

	t.Run("missing ids are a validation error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		err := client.MarkCommissionDuplicate(context.Background(), "", "cm_123", "")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrorTypeValidation, apiErr.Type)
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("context cancellation", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := client.MarkCommissionDuplicate(ctx, "ws_1", "cm_123", "")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Contains(t, []ErrorType{ErrorTypeNetwork, ErrorTypeTimeout}, apiErr.Type)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestListCommissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/commissions", r.URL.Path)
		assert.Equal(t, "ws_1", r.URL.Query().Get("workspaceId"))
		assert.Equal(t, "prog_1", r.URL.Query().Get("programId"))

		_, _ = w.Write([]byte(`[{"id":"cm_1","amount":12345,"earnings":500,"type":"sale","status":"pending","createdAt":"2024-03-07T15:04:00Z"}]`))
	})

	got, err := client.ListCommissions(context.Background(), "ws_1", "prog_1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cm_1", got[0].ID)
	assert.Equal(t, int64(12345), got[0].Amount)
	assert.Equal(t, common.TypeSale, got[0].Type)
	assert.Equal(t, common.StatusPending, got[0].Status)
}

func TestListPayouts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/programs/prog_1/payouts", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"po_1","partnerId":"pn_1","amount":1000,"status":"pending"}]`))
	})

	got, err := client.ListPayouts(context.Background(), "ws_1", "prog_1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, common.PayoutPending, got[0].Status)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "/api/commissions?programId=prog_1&workspaceId=ws_1", CommissionsKey("ws_1", "prog_1"))
	assert.Equal(t, "/api/programs/prog_1/payouts?workspaceId=ws_1", PayoutsKey("ws_1", "prog_1"))
	assert.Equal(t, "/api/programs/prog_1/payouts", PayoutsPrefix("prog_1"))
	assert.Equal(t, "/api/commissions", CommissionsPrefix())
}
