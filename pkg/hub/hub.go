// Package hub provides sign-up and sign-in against the hosted identity
// service. Connector settings are loaded from an env file; the HTTP client
// is injectable so tests never touch the network.
package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/logging"
)

// Connector holds the hub endpoint settings.
type Connector struct {
	URL string
	Key string
}

// Connector env file keys.
const (
	EnvURL = "HUB_URL"
	EnvKey = "HUB_KEY"
)

// LoadConnector reads connector settings from an env file.
func LoadConnector(path string) (*Connector, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.WrapParse("env", path, err)
	}
	connector := &Connector{
		URL: strings.TrimRight(values[EnvURL], "/"),
		Key: values[EnvKey],
	}
	if connector.URL == "" || connector.Key == "" {
		return nil, errors.NewConfigError("hub", "connector env file must set "+EnvURL+" and "+EnvKey, nil)
	}
	return connector, nil
}

// Client talks to the hub identity service.
type Client struct {
	connector *Connector
	http      *http.Client
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client, e.g. a test transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a hub client for the given connector.
func New(connector *Connector, opts ...Option) *Client {
	c := &Client{
		connector: connector,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSecret generates a fresh login secret.
func NewSecret() string {
	return uuid.NewString()
}

// NewUserID generates a short user identifier.
func NewUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

type signUpResponse struct {
	Identities []json.RawMessage `json:"identities"`
}

// SignUp registers a new account and returns the generated login secret.
// The caller must confirm the sign-up email before signing in. If the
// account already exists the service returns a user without identities and
// SignUp reports errors.ErrAlreadyExists.
func (c *Client) SignUp(email string) (string, error) {
	secret := NewSecret()
	var resp signUpResponse
	if err := c.post("/auth/v1/signup", "", map[string]string{
		"email":    email,
		"password": secret,
	}, &resp); err != nil {
		return "", err
	}
	if len(resp.Identities) == 0 {
		return "", errors.WrapResource("sign up", "account", email, errors.ErrAlreadyExists)
	}
	c.logger.Info().
		Str("email", email).
		Msg("confirm the sign-up email, then sign in with the generated secret")
	return secret, nil
}

type session struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

type userMeta struct {
	ID     string `json:"id"`
	UserID string `json:"uid"`
	Handle string `json:"handle"`
}

// SignIn authenticates an account and returns its user id, completing
// first-time registration when the account has no user metadata yet. The
// metadata insert must persist at least one row; a silent rejection is an
// integrity violation.
func (c *Client) SignIn(email, secret string) (string, error) {
	var sess session
	if err := c.post("/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": secret,
	}, &sess); err != nil {
		return "", err
	}
	defer c.signOut(sess.AccessToken)

	var rows []userMeta
	if err := c.get("/rest/v1/usermeta?id=eq."+sess.User.ID, sess.AccessToken, &rows); err != nil {
		return "", err
	}
	if len(rows) > 0 {
		return rows[0].UserID, nil
	}

	// first sign-in: complete the registration
	userID := NewUserID()
	var inserted []userMeta
	if err := c.post("/rest/v1/usermeta", sess.AccessToken, userMeta{
		ID:     sess.User.ID,
		UserID: userID,
		Handle: userID,
	}, &inserted); err != nil {
		return "", err
	}
	if len(inserted) == 0 {
		return "", errors.NewIntegrityError("insert", "usermeta", 1, 0)
	}
	c.logger.Info().Str("user_id", userID).Msg("completed user sign up")
	return userID, nil
}

func (c *Client) signOut(token string) {
	req, err := http.NewRequest(http.MethodPost, c.connector.URL+"/auth/v1/logout", nil)
	if err != nil {
		return
	}
	c.authorize(req, token)
	if resp, err := c.http.Do(req); err == nil {
		_ = resp.Body.Close()
	}
}

func (c *Client) authorize(req *http.Request, token string) {
	req.Header.Set("apikey", c.connector.Key)
	if token == "" {
		token = c.connector.Key
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) post(path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.connector.URL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	c.authorize(req, token)
	return c.do(req, out)
}

func (c *Client) get(path, token string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.connector.URL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req, token)
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewAPIError("hub", 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAPIError("hub", resp.StatusCode, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewAPIError("hub", resp.StatusCode, fmt.Sprintf("%s %s: %s", req.Method, req.URL.Path, strings.TrimSpace(string(data))))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
