package upstage

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

type opt func(*Client)

// WithApiKey sets the Upstage API key sent as a bearer token.
func WithApiKey(key string) opt {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseUrl overrides the URL at which the Upstage API is available.
//
// If not specified, https://api.upstage.ai/v1 is used.
func WithBaseUrl(url string) opt {
	return func(c *Client) {
		c.baseUrl = strings.TrimRight(url, "/")
	}
}

// WithHttpClient provides the *http.Client requests are sent with. Timeouts
// and cancellation are entirely up to this client and the request context.
func WithHttpClient(client *http.Client) opt {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLogger(logger *log.Logger) opt {
	return func(c *Client) {
		c.logger = logger
	}
}
