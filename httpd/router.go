package httpd

import (
    "strings"
)

// Handler turns a parsed Request into a Response. Returning
// ErrMissingResource (possibly wrapped) maps to 404; any other error
// maps to 500.
type Handler interface {
    Handle(*Request) (*Response, error)
}

type HandlerFunc func(*Request) (*Response, error)

func (f HandlerFunc) Handle(r *Request) (*Response, error) {
    return f(r)
}

type route struct {
    method  string
    pattern string
    capture bool
    h       Handler
}

// Router resolves (method, path) to a handler. The route table is
// built before serving starts and is read-only afterwards, so Resolve
// is safe to call from any connection goroutine without locks.
//
// Two pattern variants exist: exact match, and single-segment prefix
// capture. Resolution policy: path first — an unknown path is
// ErrNoRoute (404) regardless of method, a known path with the wrong
// method is ErrMethodNotAllowed (405).
type Router struct {
    routes []route
}

func NewRouter() *Router {
    return &Router{}
}

// Handle registers an exact-match route.
func (r *Router) Handle(method, path string, h Handler) {
    r.routes = append(r.routes, route{method: method, pattern: path, h: h})
}

// HandlePrefix registers a single-segment capture route: a path
// matches when it starts with prefix and the remainder contains no
// further '/'. The remainder (possibly empty) becomes Request.Capture.
func (r *Router) HandlePrefix(method, prefix string, h Handler) {
    r.routes = append(r.routes, route{method: method, pattern: prefix, capture: true, h: h})
}

func (r *Router) Resolve(method, path string) (Handler, string, error) {
    pathMatched := false
    for _, rt := range r.routes {
        capture, ok := rt.match(path)
        if !ok {
            continue
        }
        pathMatched = true
        if rt.method == method {
            return rt.h, capture, nil
        }
    }
    if pathMatched {
        return nil, "", ErrMethodNotAllowed
    }
    return nil, "", ErrNoRoute
}

func (rt route) match(path string) (string, bool) {
    if !rt.capture {
        return "", path == rt.pattern
    }
    if !strings.HasPrefix(path, rt.pattern) {
        return "", false
    }
    rest := path[len(rt.pattern):]
    if strings.Contains(rest, "/") {
        return "", false
    }
    return rest, true
}
