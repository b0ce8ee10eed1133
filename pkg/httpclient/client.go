package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultUserAgent identifies the bot to the wiki and the feed host.
// MediaWiki asks automated clients to send a descriptive User-Agent.
const DefaultUserAgent = "podwiki/1.0 (episode sync bot)"

// HTTPClient wraps an http.Client with a session cookie jar and fixed headers
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewClient creates a new HTTP client that keeps cookies across requests,
// which the wiki needs to hold a login session.
func NewClient(userAgent string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := &http.Client{
		Jar:     jar,
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:    client,
		userAgent: userAgent,
	}, nil
}

// Do executes an HTTP request with the bot headers set
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Client returns the underlying http.Client, for libraries that take one directly
func (c *HTTPClient) Client() *http.Client {
	return c.client
}

// UserAgent returns the User-Agent sent with every request
func (c *HTTPClient) UserAgent() string {
	return c.userAgent
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}
