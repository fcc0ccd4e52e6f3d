package httpd

import (
    "errors"
    "io"
    "net"

    "dqx0.com/go/minihttp/httpd/internal/http1"
)

var (
    // ErrMalformedRequest covers an unparsable request line or header
    // block, an invalid Content-Length, and oversized input. The
    // connection gets a best-effort 400 and is closed.
    ErrMalformedRequest = errors.New("httpd: malformed request")
    // ErrConnectionClosed means the peer went away before a full
    // request arrived. Torn down silently.
    ErrConnectionClosed = errors.New("httpd: connection closed")
    // ErrTimeout means the connection sat idle past its deadline.
    ErrTimeout = errors.New("httpd: timeout")
    // ErrNoRoute is returned by Router.Resolve when no pattern matches
    // the path.
    ErrNoRoute = errors.New("httpd: no route")
    // ErrMethodNotAllowed is returned by Router.Resolve when the path
    // matches a pattern but not with this method.
    ErrMethodNotAllowed = errors.New("httpd: method not allowed")
    // ErrMissingResource lets a handler report a missing resource; the
    // engine maps it to 404 instead of the generic 500.
    ErrMissingResource = errors.New("httpd: missing resource")
)

// classifyReadError folds a parse-loop error into the taxonomy the
// lifecycle manager acts on: timeout and peer-close tear the connection
// down silently, everything else earns a 400 first.
func classifyReadError(err error) error {
    var ne net.Error
    if errors.As(err, &ne) && ne.Timeout() {
        return ErrTimeout
    }
    if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
        return ErrConnectionClosed
    }
    switch {
    case errors.Is(err, http1.ErrMalformedLine),
        errors.Is(err, http1.ErrMalformedHeader),
        errors.Is(err, http1.ErrContentLength),
        errors.Is(err, http1.ErrUnsupportedTE),
        errors.Is(err, http1.ErrHeaderTooLarge),
        errors.Is(err, http1.ErrBodyTooLarge):
        return ErrMalformedRequest
    }
    return ErrConnectionClosed
}
