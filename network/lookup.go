package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/status"
)

// DefaultLookupURL is the public student record API
const DefaultLookupURL = "https://api.dahandin.com/openapi/v1"

// Offline fallback record returned when the lookup service cannot be reached
const (
	OfflineStudentName = "오프라인 모드"
	OfflineCookies     = 500
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrEmptyCode       = errors.New("empty student code")
)

// Student is a looked-up student record
type Student struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Cookies int    `json:"cookies"`

	// Offline marks the fallback record used when the service is unreachable
	Offline bool `json:"offline,omitempty"`
}

// testerCodes resolve locally without a request
var testerCodes = map[string]Student{
	"TESTER": {Name: "테스터", Cookies: 1000},
	"TEST":   {Name: "테스트 계정", Cookies: 500},
	"DEMO":   {Name: "데모 계정", Cookies: 300},
}

// lookupResponse is the remote API envelope
type lookupResponse struct {
	Result bool `json:"result"`
	Data   *struct {
		Name        string `json:"name"`
		TotalCookie int    `json:"totalCookie"`
	} `json:"data"`
	Message string `json:"message"`
}

// LookupClient resolves student codes to names and cookie totals
type LookupClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
	stats   *status.Registry
}

// NewLookupClient creates a client; an empty baseURL always yields the offline record
func NewLookupClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger, stats *status.Registry) *LookupClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	return &LookupClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		stats:   stats,
	}
}

// Lookup resolves code
// Tester codes match case-insensitively; transport and HTTP failures degrade to the offline record
func (c *LookupClient) Lookup(ctx context.Context, code string) (*Student, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	if tester, ok := testerCodes[strings.ToUpper(code)]; ok {
		tester.Code = code
		return &tester, nil
	}

	student, err := c.fetch(ctx, code)
	if err == nil || errors.Is(err, ErrStudentNotFound) {
		return student, err
	}

	c.stats.Ints.Get(status.KeyLookupOffline).Add(1)
	c.logger.Warn().Err(err).Str("code", code).Msg("student lookup failed, using offline record")
	return &Student{Code: code, Name: OfflineStudentName, Cookies: OfflineCookies, Offline: true}, nil
}

// fetch performs the remote request
func (c *LookupClient) fetch(ctx context.Context, code string) (*Student, error) {
	if c.baseURL == "" {
		return nil, errors.New("lookup service not configured")
	}

	endpoint := c.baseURL + "/get/student/total?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !body.Result || body.Data == nil {
		c.logger.Info().Str("code", code).Str("message", body.Message).Msg("student verification failed")
		return nil, fmt.Errorf("%w: %s", ErrStudentNotFound, body.Message)
	}

	return &Student{Code: code, Name: body.Data.Name, Cookies: body.Data.TotalCookie}, nil
}
