package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushal311201/subtrack/internal/common"
)

func TestEmailClient_SendEmail(t *testing.T) {
	var received emailRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewEmailClient(server.URL)
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), "user@example.com", "Payment Reminder",
		"Payment of USD 9.99 for Streamify is due in 2 days.")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", received.To)
	assert.Equal(t, "Payment Reminder", received.Subject)
	assert.Contains(t, received.Message, "Streamify")
}

func TestEmailClient_SendEmail_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "mailbox full", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewEmailClient(server.URL)
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), "user@example.com", "s", "m")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNetworkFailure))
}

func TestEmailClient_SendEmail_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // closed before use

	client, err := NewEmailClient(server.URL)
	require.NoError(t, err)

	err = client.SendEmail(context.Background(), "user@example.com", "s", "m")
	assert.True(t, errors.Is(err, common.ErrNetworkFailure))
}

func TestNewEmailClient_RequiresEndpoint(t *testing.T) {
	_, err := NewEmailClient("")
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}
