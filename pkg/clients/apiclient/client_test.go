package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithToken(context.Background(), server.URL, 5*time.Second, "test-token")
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListAccommodationLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_SessionExpiredDetection(t *testing.T) {
	// The marker can arrive inside a 200 payload; it must still map to
	// ErrSessionExpired.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	})

	_, err := client.ListAccommodationLogs(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestClient_NonArrayListCoercesToEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detail": "something went sideways"}`))
	})

	logs, err := client.ListAccommodationLogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestClient_DeleteConflictParsesAffectedLogs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"affected_logs": ["{\"traveler\": \"Smith/Jane\"}", "{\"traveler\": \"Jones/Bob\"}"]}`))
	})

	err := client.DeleteCountry(context.Background(), "ke")
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, conflict.AffectedLogs, 2)
}

func TestClient_Authenticate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "amy@example.com", r.Form.Get("username"))
		assert.Equal(t, "hunter2", r.Form.Get("password"))
		w.Write([]byte(`{"access_token": "tok-123", "role": "admin", "email": "amy@example.com"}`))
	})

	identity, err := client.Authenticate(context.Background(), "amy@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", identity.Token)
	assert.Equal(t, "admin", identity.Role)
	assert.Equal(t, "amy@example.com", identity.Email)
}

func TestClient_AuthenticateRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	})

	identity, err := client.Authenticate(context.Background(), "amy@example.com", "wrong")
	assert.Error(t, err)
	assert.Nil(t, identity)
}

func TestClient_RelatedEntriesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Smith/Jane", r.URL.Query().Get("identifier"))
		assert.Equal(t, "traveler", r.URL.Query().Get("identifier_type"))
		w.Write([]byte(`[{"id": "e1", "primary_traveler": "Smith/Jane"}]`))
	})

	entries, err := client.ListRelatedEntries(context.Background(), "Smith/Jane", "traveler")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
}
