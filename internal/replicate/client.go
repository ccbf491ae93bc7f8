// Package replicate is a small client for the Replicate predictions API.
package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Replicate API endpoint.
const DefaultBaseURL = "https://api.replicate.com"

const (
	defaultPollInterval = time.Second
	defaultWaitSeconds  = 60
	maxErrorBody        = 4096
)

// Prediction statuses.
const (
	StatusStarting   = "starting"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// Config holds client settings. Zero values select defaults.
type Config struct {
	BaseURL        string
	Token          string
	PollInterval   time.Duration
	WaitSeconds    int
	ConnectTimeout time.Duration
	// RequestTimeout bounds a whole Run including polling; zero disables it.
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         zerolog.Logger
}

// Client runs predictions against the Replicate API.
type Client struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	waitSeconds  int
	reqTimeout   time.Duration
	httpClient   *http.Client
	log          zerolog.Logger
}

// New constructs a client.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		pollInterval: cfg.PollInterval,
		waitSeconds:  cfg.WaitSeconds,
		reqTimeout:   cfg.RequestTimeout,
		httpClient:   cfg.HTTPClient,
		log:          cfg.Logger.With().Str("component", "replicate").Logger(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.waitSeconds <= 0 {
		c.waitSeconds = defaultWaitSeconds
	}
	if c.httpClient == nil {
		connect := cfg.ConnectTimeout
		if connect <= 0 {
			connect = 10 * time.Second
		}
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connect,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Deadlines come from the request context.
		c.httpClient = &http.Client{Transport: tr, Timeout: 0}
	}
	return c
}

// Configured reports whether an API token is set.
func (c *Client) Configured() bool { return c.token != "" }

// Token returns the API token so callers can redact it from messages.
func (c *Client) Token() string { return c.token }

// Ref is a parsed model reference: owner/name or owner/name:version.
type Ref struct {
	Owner   string
	Name    string
	Version string
}

// ParseRef splits a model reference.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	var r Ref
	path := s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		path, r.Version = s[:i], s[i+1:]
		if r.Version == "" {
			return Ref{}, fmt.Errorf("invalid model ref %q: empty version", s)
		}
	}
	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Ref{}, fmt.Errorf("invalid model ref %q: want owner/name[:version]", s)
	}
	r.Owner, r.Name = owner, name
	return r, nil
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  json.RawMessage `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

// pending reports whether the prediction is still running. Unknown statuses
// end polling and surface as a failed prediction.
func (p prediction) pending() bool {
	return p.Status == StatusStarting || p.Status == StatusProcessing
}

func (p prediction) errorText() string {
	raw := bytes.TrimSpace(p.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Run creates a prediction for ref with input and waits for it to finish.
// It returns the raw prediction output.
func (c *Client) Run(ctx context.Context, ref string, input map[string]any) (json.RawMessage, error) {
	if c.token == "" {
		return nil, errors.New("replicate: api token not configured")
	}
	r, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}

	body := map[string]any{"input": input}
	endpoint := c.baseURL + "/v1/predictions"
	if r.Version != "" {
		body["version"] = r.Version
	} else {
		endpoint = c.baseURL + "/v1/models/" + url.PathEscape(r.Owner) + "/" + url.PathEscape(r.Name) + "/predictions"
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait="+strconv.Itoa(c.waitSeconds))

	var p prediction
	if err := c.do(ctx, req, &p); err != nil {
		return nil, err
	}
	c.log.Debug().Str("prediction", p.ID).Str("status", p.Status).Msg("prediction created")

	for p.pending() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
		getURL, err := c.pollURL(p)
		if err != nil {
			return nil, err
		}
		greq, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
		if err != nil {
			return nil, err
		}
		if err := c.do(ctx, greq, &p); err != nil {
			return nil, err
		}
	}

	if p.Status != StatusSucceeded {
		return nil, &PredictionError{ID: p.ID, Status: p.Status, Detail: p.errorText()}
	}
	return p.Output, nil
}

// pollURL returns where to poll p. urls.get is only followed when it points
// at the configured API host, so the token is never sent elsewhere.
func (c *Client) pollURL(p prediction) (string, error) {
	if p.URLs.Get != "" {
		u, err := url.Parse(p.URLs.Get)
		base, berr := url.Parse(c.baseURL)
		if err == nil && berr == nil && u.Scheme == base.Scheme && u.Host == base.Host {
			return p.URLs.Get, nil
		}
		c.log.Warn().Str("prediction", p.ID).Msg("ignoring poll url on foreign host")
	}
	if p.ID == "" {
		return "", errors.New("replicate: prediction has no id to poll")
	}
	return c.baseURL + "/v1/predictions/" + url.PathEscape(p.ID), nil
}

// Locators runs a prediction and normalizes its output to a list of URLs.
func (c *Client) Locators(ctx context.Context, ref string, input map[string]any) ([]string, error) {
	raw, err := c.Run(ctx, ref, input)
	if err != nil {
		return nil, err
	}
	return NormalizeOutput(raw)
}

func (c *Client) do(ctx context.Context, req *http.Request, out *prediction) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode prediction: %w", err)
	}
	return nil
}

// errorDetail extracts the "detail" field of an API error body, falling back
// to the raw text.
func errorDetail(b []byte) string {
	var e struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(b, &e); err == nil {
		if e.Detail != "" {
			return e.Detail
		}
		if e.Title != "" {
			return e.Title
		}
	}
	return strings.TrimSpace(string(b))
}
