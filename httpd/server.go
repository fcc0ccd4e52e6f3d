package httpd

import (
    "bufio"
    "context"
    "errors"
    "net"
    "strconv"
    "sync"
    "time"

    "dqx0.com/go/minihttp/httpd/internal/http1"
    "dqx0.com/go/minihttp/internal/obs"
)

type Server struct {
    Addr   string
    Router *Router
    // ReadHeaderTimeout bounds the wait for the first request;
    // IdleTimeout bounds the wait between requests on a kept-alive
    // connection. Zero means no deadline.
    ReadHeaderTimeout time.Duration
    IdleTimeout       time.Duration
    WriteTimeout      time.Duration
    MaxHeaderBytes    int
    MaxBodyBytes      int64

    Logger obs.Logger
    Meter  obs.Meter

    mu     sync.Mutex
    ln     net.Listener
    conns  map[net.Conn]struct{}
    closed bool
}

func (s *Server) ListenAndServe() error {
    addr := s.Addr
    if addr == "" {
        addr = ":4221"
    }
    ln, err := net.Listen("tcp", addr)
    if err != nil {
        return err
    }
    return s.Serve(ln)
}

func (s *Server) Serve(l net.Listener) error {
    s.mu.Lock()
    if s.closed {
        s.mu.Unlock()
        l.Close()
        return net.ErrClosed
    }
    s.ln = l
    if s.conns == nil {
        s.conns = make(map[net.Conn]struct{})
    }
    s.mu.Unlock()
    defer l.Close()
    for {
        c, err := l.Accept()
        if err != nil {
            if s.shuttingDown() {
                return nil
            }
            return err
        }
        s.count("httpd_connections_opened_total", 1)
        go s.serveConn(c)
    }
}

// Shutdown closes the listener and waits for in-flight connections to
// finish. Connections still open when ctx expires are closed hard.
func (s *Server) Shutdown(ctx context.Context) error {
    s.mu.Lock()
    s.closed = true
    if s.ln != nil {
        _ = s.ln.Close()
    }
    s.mu.Unlock()
    t := time.NewTicker(10 * time.Millisecond)
    defer t.Stop()
    for {
        s.mu.Lock()
        n := len(s.conns)
        s.mu.Unlock()
        if n == 0 {
            return nil
        }
        select {
        case <-ctx.Done():
            s.mu.Lock()
            for c := range s.conns {
                _ = c.Close()
            }
            s.mu.Unlock()
            return ctx.Err()
        case <-t.C:
        }
    }
}

func (s *Server) shuttingDown() bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.closed
}

func (s *Server) trackConn(c net.Conn, add bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.conns == nil {
        s.conns = make(map[net.Conn]struct{})
    }
    if add {
        s.conns[c] = struct{}{}
    } else {
        delete(s.conns, c)
    }
}

// serveConn runs the per-connection state machine: read one request,
// dispatch, respond, then loop or close depending on persistence. The
// connection is owned exclusively by this goroutine.
func (s *Server) serveConn(c net.Conn) {
    defer c.Close()
    s.trackConn(c, true)
    defer s.trackConn(c, false)
    defer s.count("httpd_connections_closed_total", 1)

    br := bufio.NewReader(c)
    bw := bufio.NewWriter(c)
    first := true
    for {
        if d := s.readDeadline(first); d > 0 {
            _ = c.SetReadDeadline(time.Now().Add(d))
        }
        first = false
        rr := &http1.Reader{
            BR:                  br,
            MaxHeaderBytes:      s.headerLimit(),
            MaxTotalHeaderBytes: 8 * s.headerLimit(),
            MaxBodyBytes:        s.MaxBodyBytes,
        }
        pr, err := rr.ReadRequest()
        if err != nil {
            switch classifyReadError(err) {
            case ErrTimeout:
                s.logf(obs.Debug, "conn %s: idle timeout", c.RemoteAddr())
            case ErrConnectionClosed:
                s.logf(obs.Debug, "conn %s: closed by peer", c.RemoteAddr())
            default:
                // Malformed bytes: best-effort 400, then stop reading
                // from this connection for good.
                s.logf(obs.Info, "conn %s: bad request: %v", c.RemoteAddr(), err)
                s.count("httpd_parse_failures_total", 1)
                _ = http1.WriteResponse(bw, 400, "", nil, nil, false)
                _ = bw.Flush()
            }
            return
        }

        req := newRequest(pr, c.RemoteAddr().String())
        keepAlive := keepAliveRequested(req)

        start := time.Now()
        resp := s.dispatch(req)
        Negotiate(req.Header.Get("Accept-Encoding"), resp)
        if resp.Close {
            keepAlive = false
        }

        if s.WriteTimeout > 0 {
            _ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
        }
        if err := http1.WriteResponse(bw, resp.StatusCode, "", resp.Header.fields(), resp.Body, keepAlive); err != nil {
            return
        }
        if err := bw.Flush(); err != nil {
            return
        }
        s.count("httpd_requests_total", 1, obs.Label{Key: "class", Value: statusClass(resp.StatusCode)})
        s.observe("httpd_request_seconds", time.Since(start).Seconds())
        s.count("httpd_response_bytes_total", float64(len(resp.Body)))
        s.logf(obs.Info, "%s %s -> %d (%d bytes)", req.Method, req.Target, resp.StatusCode, len(resp.Body))

        if !keepAlive {
            return
        }
    }
}

// dispatch resolves and invokes the handler, folding routing and
// handler failures into response values so the connection lifecycle
// continues normally.
func (s *Server) dispatch(req *Request) *Response {
    if s.Router == nil {
        return &Response{StatusCode: 404}
    }
    h, capture, err := s.Router.Resolve(req.Method, req.Path)
    if err != nil {
        if errors.Is(err, ErrMethodNotAllowed) {
            return &Response{StatusCode: 405}
        }
        return &Response{StatusCode: 404}
    }
    req.Capture = capture
    resp, err := h.Handle(req)
    if err != nil {
        if errors.Is(err, ErrMissingResource) {
            s.logf(obs.Debug, "%s %s: %v", req.Method, req.Path, err)
            return &Response{StatusCode: 404}
        }
        s.logf(obs.Error, "handler %s %s failed: %v", req.Method, req.Path, err)
        s.count("httpd_handler_errors_total", 1)
        return &Response{StatusCode: 500}
    }
    if resp == nil {
        s.logf(obs.Error, "handler %s %s returned no response", req.Method, req.Path)
        return &Response{StatusCode: 500}
    }
    if resp.StatusCode == 0 {
        resp.StatusCode = 200
    }
    return resp
}

func (s *Server) readDeadline(first bool) time.Duration {
    if first && s.ReadHeaderTimeout > 0 {
        return s.ReadHeaderTimeout
    }
    if s.IdleTimeout > 0 {
        return s.IdleTimeout
    }
    return s.ReadHeaderTimeout
}

func (s *Server) headerLimit() int {
    if s.MaxHeaderBytes <= 0 {
        return 8 << 10
    }
    return s.MaxHeaderBytes
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
    if s.Logger == nil {
        return
    }
    s.Logger.Logf(level, format, args...)
}

func (s *Server) count(name string, v float64, labels ...obs.Label) {
    if s.Meter == nil {
        return
    }
    s.Meter.Counter(name, v, labels...)
}

func (s *Server) observe(name string, v float64, labels ...obs.Label) {
    if s.Meter == nil {
        return
    }
    s.Meter.Histogram(name, v, labels...)
}

func statusClass(code int) string {
    return strconv.Itoa(code/100) + "xx"
}
