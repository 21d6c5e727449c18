package hirez

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// Vendor methods the engine issues on its own behalf. Both bypass the session
// check: running it for them would recurse forever.
const (
	methodCreateSession = "createsession"
	methodTestSession   = "testsession"
)

// Param is one named request parameter. Names key call sites and debug logs;
// slice order defines the position of each value in the request path, which is
// what the vendor's URL format consumes.
type Param struct {
	Name  string
	Value string
}

// requester builds signed vendor URLs, owns the session token, performs the
// HTTP call and validates the response envelope. It is the only component
// that touches credentials.
type requester struct {
	devID      string
	authKey    string
	baseURLs   map[Endpoint]string
	httpClient *http.Client
	userAgent  string
	logger     log.Interface

	// mu guards the session token and makes test-then-create a single-flight
	// critical section across concurrent authenticated calls.
	mu      sync.Mutex
	session string

	now func() time.Time
}

func newRequester(cfg *ClientConfig, httpClient *http.Client) *requester {
	return &requester{
		devID:      cfg.DevID,
		authKey:    cfg.AuthKey,
		baseURLs:   cfg.BaseURLs,
		httpClient: httpClient,
		userAgent:  cfg.userAgentOrDefault(),
		logger:     cfg.loggerOrDefault(),
		now:        time.Now,
	}
}

func (r *requester) baseURL(endpoint Endpoint) string {
	if u, ok := r.baseURLs[endpoint]; ok {
		return u
	}
	return endpoint.BaseURL()
}

// timestamp returns the current UTC time in the vendor's YYYYMMDDHHMMSS form.
func (r *requester) timestamp() string {
	return r.now().UTC().Format("20060102150405")
}

// signature computes the lowercase hex MD5 digest of
// devId + method + authKey + timestamp. MD5 is mandated by the vendor's
// signing scheme; the digest proves possession of the key without sending it.
func (r *requester) signature(method, ts string) string {
	sum := md5.Sum([]byte(r.devID + method + r.authKey + ts))
	return hex.EncodeToString(sum[:])
}

type issueOpts struct {
	// noAuth builds a bare endpoint/methodJson/params URL with no
	// credentials, signature or session token.
	noAuth bool
	// session is the token to place in the signed path. Empty for
	// createsession, which is signed but has no token yet.
	session string
}

// issue turns one logical operation into exactly one outbound HTTP GET and
// returns the decoded JSON payload verbatim. It never consults or mutates the
// stored session; callers that need one go through authenticated.
func (r *requester) issue(ctx context.Context, endpoint Endpoint, method string, params []Param, opts issueOpts) (json.RawMessage, error) {
	if !endpoint.Valid() {
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
	if method == "" {
		return nil, fmt.Errorf("method name must not be empty")
	}

	segments := []string{r.baseURL(endpoint), method + "Json"}
	if !opts.noAuth {
		// The timestamp in the path and the one inside the signature must be
		// the same instant, so compute once and share.
		ts := r.timestamp()
		segments = append(segments, url.PathEscape(r.devID), r.signature(method, ts))
		if opts.session != "" {
			segments = append(segments, url.PathEscape(opts.session))
		}
		segments = append(segments, ts)
	}
	for _, p := range params {
		segments = append(segments, url.PathEscape(p.Value))
	}
	target := strings.Join(segments, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	r.logger.WithField("method", method).WithField("url", target).Debug("issuing API request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Method: http.MethodGet, URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DecodeError{URL: target, Err: err}
	}

	payload := bytes.TrimSpace(body)
	if len(payload) == 0 {
		return nil, &DecodeError{URL: target, Err: fmt.Errorf("response body was empty")}
	}
	if !json.Valid(payload) {
		return nil, &DecodeError{URL: target, Err: fmt.Errorf("response body was not JSON")}
	}

	// Error envelopes only ever arrive as a single object; a list payload is
	// always real data.
	if payload[0] == '{' {
		var envelope struct {
			RetMsg *string `json:"ret_msg"`
		}
		if err := json.Unmarshal(payload, &envelope); err == nil && envelope.RetMsg != nil {
			if strings.Contains(strings.ToLower(*envelope.RetMsg), "exception") {
				return nil, &APIError{Message: *envelope.RetMsg}
			}
		}
	}

	return json.RawMessage(payload), nil
}

// authenticated ensures a usable session and then issues the request with it.
func (r *requester) authenticated(ctx context.Context, endpoint Endpoint, method string, params []Param) (json.RawMessage, error) {
	token, err := r.ensureSession(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return r.issue(ctx, endpoint, method, params, issueOpts{session: token})
}

// unauthenticated issues a request that must not carry credentials.
func (r *requester) unauthenticated(ctx context.Context, endpoint Endpoint, method string, params []Param) (json.RawMessage, error) {
	return r.issue(ctx, endpoint, method, params, issueOpts{noAuth: true})
}

// ensureSession returns a session token the caller may use. A held token is
// liveness-checked first; a stale or missing one is replaced with a fresh
// createsession. The whole flow runs under the session mutex so concurrent
// callers cannot clobber each other's token.
func (r *requester) ensureSession(ctx context.Context, endpoint Endpoint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != "" {
		if r.testSession(ctx, endpoint, r.session) {
			return r.session, nil
		}
		r.logger.Debug("session is stale, replacing it")
		r.session = ""
	}

	token, err := r.createSession(ctx, endpoint)
	if err != nil {
		return "", err
	}
	r.session = token
	return token, nil
}

// testSession checks a token's liveness. Anything other than a response
// carrying the vendor's success marker counts as stale.
func (r *requester) testSession(ctx context.Context, endpoint Endpoint, token string) bool {
	raw, err := r.issue(ctx, endpoint, methodTestSession, nil, issueOpts{session: token})
	if err != nil {
		r.logger.WithError(err).Debug("session liveness check failed")
		return false
	}
	return payloadReportsSuccess(raw)
}

func (r *requester) createSession(ctx context.Context, endpoint Endpoint) (string, error) {
	raw, err := r.issue(ctx, endpoint, methodCreateSession, nil, issueOpts{})
	if err != nil {
		return "", err
	}

	var res struct {
		SessionID string `json:"session_id"`
		RetMsg    string `json:"ret_msg"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", &DecodeError{Err: fmt.Errorf("createsession: %w", err)}
	}
	if res.SessionID == "" {
		return "", &DecodeError{Err: fmt.Errorf("createsession response is missing session_id (ret_msg: %q)", res.RetMsg)}
	}

	r.logger.WithField("endpoint", endpoint.String()).Debug("created API session")
	return res.SessionID, nil
}

// payloadReportsSuccess reports whether a ping or testsession payload carries
// the vendor's success marker. Both methods answer with a bare JSON string.
func payloadReportsSuccess(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	return strings.Contains(strings.ToLower(s), "successful")
}
