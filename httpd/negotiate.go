package httpd

import (
    "errors"
    "strings"

    "github.com/andybalholm/brotli"
    "github.com/klauspost/compress/gzip"
    "github.com/valyala/bytebufferpool"
)

// Server preference order. The first scheme the client also offers
// wins.
var supportedEncodings = []string{"gzip", "br"}

const gzipLevel = gzip.DefaultCompression

// Negotiate applies content encoding to resp in place. The body is
// transformed at most once: responses that are not marked
// compressible, have no body, or already carry a Content-Encoding pass
// through untouched. Compression levels are fixed, so the same body
// and Accept-Encoding always produce byte-identical output.
func Negotiate(acceptEncoding string, resp *Response) {
    if resp == nil || !resp.Compressible || len(resp.Body) == 0 {
        return
    }
    if resp.Header.Get("Content-Encoding") != "" {
        return
    }
    offered := acceptedEncodings(acceptEncoding)
    for _, enc := range supportedEncodings {
        if !offered[enc] {
            continue
        }
        encoded, err := encodeBody(enc, resp.Body)
        if err != nil {
            return
        }
        resp.Body = encoded
        resp.Header.Set("Content-Encoding", enc)
        return
    }
}

func encodeBody(enc string, body []byte) ([]byte, error) {
    buf := bytebufferpool.Get()
    defer bytebufferpool.Put(buf)
    switch enc {
    case "gzip":
        zw, err := gzip.NewWriterLevel(buf, gzipLevel)
        if err != nil {
            return nil, err
        }
        if _, err := zw.Write(body); err != nil {
            return nil, err
        }
        if err := zw.Close(); err != nil {
            return nil, err
        }
    case "br":
        bw := brotli.NewWriterLevel(buf, brotli.DefaultCompression)
        if _, err := bw.Write(body); err != nil {
            return nil, err
        }
        if err := bw.Close(); err != nil {
            return nil, err
        }
    default:
        return nil, errors.New("httpd: unsupported encoding " + enc)
    }
    // The pooled buffer is reused; hand back a copy.
    return append([]byte(nil), buf.B...), nil
}

// acceptedEncodings parses an Accept-Encoding value into the set of
// offered schemes. Schemes with q=0 are excluded; other q-values are
// ignored since the server's own preference order decides.
func acceptedEncodings(v string) map[string]bool {
    if v == "" {
        return nil
    }
    out := make(map[string]bool)
    for _, part := range strings.Split(v, ",") {
        part = strings.TrimSpace(part)
        if part == "" {
            continue
        }
        name := part
        params := ""
        if i := strings.IndexByte(part, ';'); i >= 0 {
            name = strings.TrimSpace(part[:i])
            params = part[i+1:]
        }
        if refused(params) {
            continue
        }
        out[strings.ToLower(name)] = true
    }
    return out
}

func refused(params string) bool {
    for _, p := range strings.Split(params, ";") {
        p = strings.TrimSpace(p)
        k, v, ok := strings.Cut(p, "=")
        if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
            continue
        }
        switch strings.TrimSpace(v) {
        case "0", "0.", "0.0", "0.00", "0.000":
            return true
        }
    }
    return false
}
