package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediaspawn/mediaspawn/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestSelect(t *testing.T) {
	Convey("Select follows fetch.tls_fingerprint", t, func() {
		viper.Set(key.FetchTLSFingerprint, false)
		So(Select(), ShouldEqual, Client)

		viper.Set(key.FetchTLSFingerprint, true)
		So(Select(), ShouldEqual, FingerprintClient)
		viper.Set(key.FetchTLSFingerprint, false)
	})
}

func TestFingerprintPlainHTTP(t *testing.T) {
	Convey("Plain http requests bypass the TLS fingerprint", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "define('x', {})")
		}))
		defer srv.Close()

		resp, err := FingerprintClient.Get(srv.URL)
		So(err, ShouldBeNil)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		So(string(body), ShouldEqual, "define('x', {})")
	})
}
