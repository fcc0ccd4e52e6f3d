package httpd

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressible(body string) *Response {
	r := Text(200, body)
	r.Compressible = true
	return r
}

func TestNegotiate_Gzip(t *testing.T) {
	resp := compressible("hello hello hello hello")
	Negotiate("gzip", resp)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(bytes.NewReader(resp.Body))
	require.NoError(t, err)
	dec, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "hello hello hello hello", string(dec))
}

func TestNegotiate_Brotli(t *testing.T) {
	resp := compressible("hello hello hello hello")
	Negotiate("br", resp)
	assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))

	dec, err := io.ReadAll(brotli.NewReader(bytes.NewReader(resp.Body)))
	require.NoError(t, err)
	assert.Equal(t, "hello hello hello hello", string(dec))
}

func TestNegotiate_ServerPreferenceOrder(t *testing.T) {
	// gzip is preferred whatever order the client lists.
	resp := compressible("abc")
	Negotiate("br, gzip", resp)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestNegotiate_NoMatchPassthrough(t *testing.T) {
	resp := compressible("abc")
	Negotiate("deflate, zstd", resp)
	assert.Equal(t, "", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "abc", string(resp.Body))

	resp = compressible("abc")
	Negotiate("", resp)
	assert.Equal(t, "", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "abc", string(resp.Body))
}

func TestNegotiate_QZeroExcluded(t *testing.T) {
	resp := compressible("abc")
	Negotiate("gzip;q=0, br", resp)
	assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))

	resp = compressible("abc")
	Negotiate("gzip;q=0.5", resp)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestNegotiate_NotCompressible(t *testing.T) {
	resp := Text(200, "abc")
	Negotiate("gzip", resp)
	assert.Equal(t, "", resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "abc", string(resp.Body))
}

func TestNegotiate_EmptyBody(t *testing.T) {
	resp := &Response{StatusCode: 404, Compressible: true}
	Negotiate("gzip", resp)
	assert.Equal(t, "", resp.Header.Get("Content-Encoding"))
}

func TestNegotiate_Idempotent(t *testing.T) {
	a := compressible("the same input body")
	b := compressible("the same input body")
	Negotiate("gzip", a)
	Negotiate("gzip", b)
	assert.Equal(t, a.Body, b.Body)

	// Applying again to an already-encoded response changes nothing.
	before := append([]byte(nil), a.Body...)
	Negotiate("gzip", a)
	assert.Equal(t, before, a.Body)
}

func TestAcceptedEncodings(t *testing.T) {
	got := acceptedEncodings("GZip , br;q=0.8, identity;q=0")
	assert.True(t, got["gzip"])
	assert.True(t, got["br"])
	assert.False(t, got["identity"])
}
