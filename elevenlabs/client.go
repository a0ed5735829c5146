package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public ElevenLabs API host
const DefaultBaseURL = "https://api.elevenlabs.io"

// DefaultTimeout bounds a single upstream call when none is configured
const DefaultTimeout = 30 * time.Second

// Result is a successful upstream response
type Result struct {
	StatusCode int
	Body       []byte
	// Data is the decoded JSON body.
	Data interface{}
}

// Client makes exactly one POST per Do call. It never retries.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient returns a client for the given API host and key
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
				TLSHandshakeTimeout: 3 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

// URL returns the absolute upstream URL for the call
func (c *Client) URL(call Call) string {
	return c.baseURL + call.Path
}

// Do sends the call to ElevenLabs and decodes the answer.
func (c *Client) Do(ctx context.Context, call Call) (*Result, error) {
	body, err := json.Marshal(call.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode the ElevenLabs payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(call), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare the ElevenLabs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	response, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{Kind: Timeout, Err: fmt.Errorf("no response within %s: %w", c.timeout, err)}
		}
		return nil, &Error{Kind: NetworkFailure, Err: err}
	}
	defer response.Body.Close()

	respBody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{Kind: Timeout, StatusCode: response.StatusCode, Err: err}
		}
		return nil, &Error{Kind: NetworkFailure, StatusCode: response.StatusCode, Err: err}
	}

	// A body that is not JSON is malformed whatever the status.
	var data interface{}
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, &Error{
			Kind:       MalformedResponse,
			StatusCode: response.StatusCode,
			Details:    string(respBody),
			Err:        err,
		}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &Error{Kind: UpstreamRejected, StatusCode: response.StatusCode, Details: data}
	}
	return &Result{StatusCode: response.StatusCode, Body: respBody, Data: data}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Identifier returns the value of key in an upstream JSON object as it was
// sent. Missing, null, empty, zero or false values and non-object results
// yield "unknown".
func Identifier(data interface{}, key string) interface{} {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return unknownIdentifier
	}
	value, ok := obj[key]
	if !ok && key == CallSidKey {
		value = obj["callSid"]
	}
	switch v := value.(type) {
	case nil:
		return unknownIdentifier
	case string:
		if v == "" {
			return unknownIdentifier
		}
	case float64:
		if v == 0 {
			return unknownIdentifier
		}
	case bool:
		if !v {
			return unknownIdentifier
		}
	}
	return value
}
