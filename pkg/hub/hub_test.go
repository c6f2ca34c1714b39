package hub_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/hub"
)

func TestLoadConnector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connector.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"HUB_URL=https://hub.example.com/\nHUB_KEY=anon-key\n"), 0o600))

	connector, err := hub.LoadConnector(path)
	require.NoError(t, err)
	assert.Equal(t, "https://hub.example.com", connector.URL)
	assert.Equal(t, "anon-key", connector.Key)
}

func TestLoadConnectorMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connector.env")
	require.NoError(t, os.WriteFile(path, []byte("HUB_URL=https://hub.example.com\n"), 0o600))

	_, err := hub.LoadConnector(path)
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadConnectorMissingFile(t *testing.T) {
	_, err := hub.LoadConnector(filepath.Join(t.TempDir(), "nonexistent.env"))
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

// hubStub is a minimal in-memory identity service.
type hubStub struct {
	existing  map[string]bool   // emails already signed up
	usermeta  map[string]string // auth id -> uid
	signups   int
	signouts  int
	inserted  int
	rejectAll bool
}

func newHubServer(t *testing.T, stub *hubStub) (*hub.Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stub.signups++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body["password"])

		identities := []map[string]string{{"id": "identity-1"}}
		if stub.existing[body["email"]] {
			identities = nil
		}
		writeJSON(t, w, map[string]any{"identities": identities})
	})

	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if stub.rejectAll {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		writeJSON(t, w, map[string]any{
			"access_token": "token-1",
			"user":         map[string]string{"id": "auth-1"},
		})
	})

	mux.HandleFunc("/rest/v1/usermeta", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			rows := []map[string]string{}
			if uid, ok := stub.usermeta["auth-1"]; ok {
				rows = append(rows, map[string]string{"id": "auth-1", "uid": uid})
			}
			writeJSON(t, w, rows)
		case http.MethodPost:
			stub.inserted++
			var row map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&row))
			stub.usermeta[row["id"]] = row["uid"]
			writeJSON(t, w, []map[string]string{row})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		stub.signouts++
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := hub.New(
		&hub.Connector{URL: server.URL, Key: "anon-key"},
		hub.WithHTTPClient(server.Client()),
	)
	return client, server
}

func TestSignUpNewAccount(t *testing.T) {
	stub := &hubStub{existing: map[string]bool{}, usermeta: map[string]string{}}
	client, _ := newHubServer(t, stub)

	secret, err := client.SignUp("new@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Equal(t, 1, stub.signups)
}

func TestSignUpExistingAccount(t *testing.T) {
	stub := &hubStub{existing: map[string]bool{"old@example.com": true}, usermeta: map[string]string{}}
	client, _ := newHubServer(t, stub)

	_, err := client.SignUp("old@example.com")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestSignInFirstTimeCompletesRegistration(t *testing.T) {
	stub := &hubStub{existing: map[string]bool{}, usermeta: map[string]string{}}
	client, _ := newHubServer(t, stub)

	userID, err := client.SignIn("new@example.com", "secret")
	require.NoError(t, err)
	assert.Len(t, userID, 8)
	assert.Equal(t, 1, stub.inserted)
	assert.Equal(t, userID, stub.usermeta["auth-1"])
	assert.Equal(t, 1, stub.signouts)
}

func TestSignInExistingUser(t *testing.T) {
	stub := &hubStub{existing: map[string]bool{}, usermeta: map[string]string{"auth-1": "abcd1234"}}
	client, _ := newHubServer(t, stub)

	userID, err := client.SignIn("old@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", userID)
	assert.Zero(t, stub.inserted)
	assert.Equal(t, 1, stub.signouts)
}

func TestSignInBadCredentials(t *testing.T) {
	stub := &hubStub{existing: map[string]bool{}, usermeta: map[string]string{}, rejectAll: true}
	client, _ := newHubServer(t, stub)

	_, err := client.SignIn("who@example.com", "wrong")
	require.Error(t, err)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestNewUserID(t *testing.T) {
	id := hub.NewUserID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, hub.NewUserID())
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
