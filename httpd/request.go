package httpd

import (
    "strings"

    "dqx0.com/go/minihttp/httpd/internal/http1"
)

// Request represents one parsed HTTP request.
//
// The body is fully read during parsing, so len(Body) always equals the
// declared Content-Length. Header keys are case-insensitive; a repeated
// request header keeps its first position with the last value.
type Request struct {
    Method string
    // Target is the request target as received, including any query.
    Target string
    // Path is the target up to the first '?'; the only part routing
    // sees.
    Path string
    // RawQuery is the target after the first '?', without the '?'.
    RawQuery string
    Proto    string
    Header   Header
    Body     []byte
    ContentLength int64
    // Capture is the remainder matched by a single-segment prefix
    // route, e.g. "abc" for /echo/abc.
    Capture    string
    RemoteAddr string
}

func newRequest(pr *http1.ParsedRequest, remoteAddr string) *Request {
    r := &Request{
        Method:        pr.Method,
        Target:        pr.Target,
        Path:          pr.Path,
        RawQuery:      pr.RawQuery,
        Proto:         pr.Proto,
        Body:          pr.Body,
        ContentLength: pr.ContentLength,
        RemoteAddr:    remoteAddr,
    }
    for _, f := range pr.Fields {
        r.Header.Set(f.Name, f.Value)
    }
    return r
}

// keepAliveRequested applies the persistence default: HTTP/1.1 stays
// open unless the request says close; older protos close unless the
// request says keep-alive.
func keepAliveRequested(r *Request) bool {
    v := r.Header.Get("Connection")
    if r.Proto == "HTTP/1.1" {
        return !strings.EqualFold(v, "close")
    }
    return strings.EqualFold(v, "keep-alive")
}
