package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

const DEFAULT_TIMEOUT = 30 * time.Second

// HTTPClient holds the base URL and HTTP client shared by typed API clients.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DEFAULT_TIMEOUT},
	}
}

// StatusError is returned for non-2xx replies. Message is the "error" field
// of a JSON error body, when there is one.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status code: %s: %s", e.Status, e.Message)
	}
	return "unexpected status code: " + e.Status
}

// Request sends body as JSON, when non-nil, and decodes a 2xx reply into response.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, query url.Values, body interface{}, response interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := c.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		se := &StatusError{StatusCode: res.StatusCode, Status: res.Status}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resBody, &envelope) == nil {
			se.Message = envelope.Error
		}
		return se
	}

	if response != nil {
		return json.Unmarshal(resBody, response)
	}
	return nil
}
