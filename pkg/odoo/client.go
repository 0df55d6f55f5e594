package odoo

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync/atomic"
	"time"

	"github.com/nasma-hq/nasma-insights-api/pkg/config"
)

// Condition is a single Odoo domain triple (field, operator, value).
type Condition [3]interface{}

// C builds a domain condition.
func C(field, operator string, value interface{}) Condition {
	return Condition{field, operator, value}
}

// Client is a minimal JSON-RPC client for the ERP's /web endpoints.
// Authenticate must succeed before any dataset call; the session cookie is
// kept in the client's jar.
type Client struct {
	baseURL  string
	db       string
	username string
	password string
	http     *http.Client
	callID   int64
	observe  func(duration time.Duration)
}

// OnRequest registers a hook invoked with the duration of every RPC call.
// Set it before the client is shared across goroutines.
func (c *Client) OnRequest(observe func(duration time.Duration)) {
	c.observe = observe
}

// New constructs a client. The cookie jar carries the session across calls.
func New(cfg config.OdooConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := http.DefaultTransport
	if cfg.InsecureTLS {
		// Staging certificates are self-signed.
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}} //nolint:gosec
	}

	return &Client{
		baseURL:  cfg.URL,
		db:       cfg.DB,
		username: cfg.Username,
		password: cfg.Password,
		http: &http.Client{
			Jar:       jar,
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
	}, nil
}

type rpcEnvelope struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int64       `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("odoo rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) post(ctx context.Context, path string, params interface{}) (json.RawMessage, error) {
	envelope := rpcEnvelope{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  params,
		ID:      atomic.AddInt64(&c.callID, 1),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode rpc payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observe != nil {
		c.observe(time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode rpc response from %s: %w", path, err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	return decoded.Result, nil
}

// Authenticate opens a session via /web/session/authenticate and verifies a
// user id came back. The resulting cookie authorises subsequent calls.
func (c *Client) Authenticate(ctx context.Context) error {
	params := map[string]interface{}{
		"db":       c.db,
		"login":    c.username,
		"password": c.password,
	}
	result, err := c.post(ctx, "/web/session/authenticate", params)
	if err != nil {
		return err
	}

	var session struct {
		UID json.Number `json:"uid"`
	}
	if err := json.Unmarshal(result, &session); err != nil {
		return fmt.Errorf("decode session payload: %w", err)
	}
	if uid, err := session.UID.Int64(); err != nil || uid <= 0 {
		return fmt.Errorf("authentication rejected, uid=%q", session.UID.String())
	}
	return nil
}

// Call invokes an arbitrary model method through /web/dataset/call_kw.
func (c *Client) Call(ctx context.Context, model, method string, args []interface{}, kwargs map[string]interface{}) (json.RawMessage, error) {
	if args == nil {
		args = []interface{}{}
	}
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}
	params := map[string]interface{}{
		"model":  model,
		"method": method,
		"args":   args,
		"kwargs": kwargs,
	}
	return c.post(ctx, "/web/dataset/call_kw", params)
}

// SearchRead fetches rows of a model matching a domain and decodes them into dest.
func (c *Client) SearchRead(ctx context.Context, model string, domain []Condition, fields []string, dest interface{}) error {
	result, err := c.Call(ctx, model, "search_read",
		[]interface{}{domain, fields},
		map[string]interface{}{"limit": 0},
	)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(result, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", model, err)
	}
	return nil
}
