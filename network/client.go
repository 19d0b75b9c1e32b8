// Package network provides the HTTP clients used to download player scripts.
package network

import (
	"net/http"
	"time"

	"github.com/mediaspawn/mediaspawn/key"
	"github.com/spf13/viper"
)

// Client is the shared plain HTTP client.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 32
	t.MaxIdleConnsPerHost = 8
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// Select returns the fingerprinted client when fetch.tls_fingerprint is set, Client otherwise.
func Select() *http.Client {
	if viper.GetBool(key.FetchTLSFingerprint) {
		return FingerprintClient
	}
	return Client
}
