package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeven(t *testing.T, handler http.HandlerFunc) *SevenService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &SevenService{
		baseURL:  server.URL,
		apiKey:   "test-key",
		senderID: "TankSmart",
		client:   server.Client(),
	}
}

func TestSevenNotConfigured(t *testing.T) {
	svc := &SevenService{client: http.DefaultClient}

	_, err := svc.SendSMS(context.Background(), "+491701234567", "Hallo")
	assert.ErrorIs(t, err, ErrSevenNotConfigured)
	_, err = svc.Status(context.Background(), "123")
	assert.ErrorIs(t, err, ErrSevenNotConfigured)
	_, err = svc.Balance(context.Background())
	assert.ErrorIs(t, err, ErrSevenNotConfigured)
}

func TestSevenSendSMS(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{"success":"100","messages":[{"id":77401234567}]}`))
	})

	result, err := svc.SendSMS(context.Background(), "+491701234567", "Ihre Lieferung kommt am 02.03.2026")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "77401234567", result.MessageID)
}

func TestSevenSendSMSRejected(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":"402","messages":[]}`))
	})

	result, err := svc.SendSMS(context.Background(), "+491701234567", "Hallo")
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Empty(t, result.MessageID)
}

func TestSevenStatus(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		assert.Equal(t, "77401234567", r.URL.Query().Get("msg_id"))
		w.Write([]byte("delivered\n"))
	})

	status, err := svc.Status(context.Background(), "77401234567")
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", status)
}

func TestSevenBalance(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("13.37"))
	})

	balance, err := svc.Balance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 13.37, balance, 1e-9)
}

func TestSevenLookupHLR(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup/hlr", r.URL.Path)
		w.Write([]byte(`{
			"status": true,
			"status_message": "Subscriber reachable",
			"ported": false,
			"country_code": "DE",
			"international_format": "+491701234567",
			"current_carrier": {"name": "Telekom", "network_type": "gsm"}
		}`))
	})

	result, err := svc.LookupHLR(context.Background(), "+491701234567")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.Reachable)
	assert.Equal(t, "Telekom", result.Carrier)
	assert.Equal(t, "gsm", result.NetworkType)
	assert.Equal(t, "DE", result.Country)
}

func TestSevenLookupCNAM(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup/cnam", r.URL.Path)
		w.Write([]byte(`{"name":"MUSTERMANN MAX","number":"+491701234567"}`))
	})

	result, err := svc.LookupCNAM(context.Background(), "+491701234567")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "MUSTERMANN MAX", result.Name)
}

func TestSevenGatewayError(t *testing.T) {
	svc := newTestSeven(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid api key"))
	})

	_, err := svc.Balance(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
