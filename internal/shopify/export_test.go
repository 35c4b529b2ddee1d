package shopify

import "net/http"

// SetHTTPClient swaps the underlying http.Client so tests can point a Client
// at an httptest TLS server.
func SetHTTPClient(c *Client, httpClient *http.Client) {
	c.httpClient = httpClient
}
