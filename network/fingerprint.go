package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// fingerprintTransport sends https requests over a uTLS connection that mimics Chrome's
// Client Hello, which DDoS-Guard style front ends expect. HTTP/2 is tried first and
// HTTP/1.1 is used when h2 negotiation fails. Plain http requests go to fallback.
type fingerprintTransport struct {
	h2       *http2.Transport
	h1       *http.Transport
	fallback http.RoundTripper
}

func newFingerprintTransport(fallback http.RoundTripper) *fingerprintTransport {
	return &fingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, "h2", "http/1.1")
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, network, addr, "http/1.1")
			},
		},
		fallback: fallback,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.fallback.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// bodies can't be replayed, only idempotent reads fall back
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}
	return t.h1.RoundTrip(req.Clone(req.Context()))
}

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint advertising protos.
func dialTLS(ctx context.Context, network, addr string, protos ...string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
