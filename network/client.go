// Package network provides pre-configured HTTP clients shared by the catalog and site clients.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client used for catalog lookups.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// New returns a client with the given per-request timeout.
// With fingerprint set, https requests present a browser TLS handshake.
func New(timeout time.Duration, fingerprint bool) *http.Client {
	var transport http.RoundTripper = newTransport()
	if fingerprint {
		transport = newFingerprintTransport(transport)
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// newTransport initializes a tuned http.Transport with larger pools.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
