package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// FingerprintClient presents a Chrome TLS ClientHello. Some CDNs in front of player
// scripts reject the Go default handshake.
var FingerprintClient = &http.Client{
	Timeout:   time.Minute,
	Transport: &fingerprintTransport{},
}

// fingerprintTransport prefers HTTP/2 and falls back to HTTP/1.1 when the h2 attempt fails.
type fingerprintTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

func (t *fingerprintTransport) init() {
	if t.h2 != nil {
		return
	}
	t.h2 = &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialChrome(ctx, network, addr, nil)
		},
	}
	t.h1 = &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialChrome(ctx, network, addr, []string{"http/1.1"})
		},
	}
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.EqualFold(req.URL.Scheme, "https") {
		return Client.Transport.RoundTrip(req)
	}

	t.init()
	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// Only bodiless requests are retried; script fetches are plain GETs.
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}
	return t.h1.RoundTrip(req.Clone(req.Context()))
}

func dialChrome(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
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
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
