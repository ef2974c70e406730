package roster

import "net/http"

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the underlying HTTP client, e.g. to set timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}
