// Package httpd is a small, hand-built HTTP/1.1 server engine aimed at
// learning and control: it accepts raw TCP connections, parses requests
// at the byte level, and serializes responses without the standard
// library's net/http machinery.
//
// Highlights
//   - One goroutine per connection, no shared mutable state beyond the
//     immutable Server configuration.
//   - Content-Length body framing with strict validation; malformed
//     input costs the offending connection a best-effort 400 and
//     nothing else.
//   - Keep-alive by default for HTTP/1.1, opt-in for older protos,
//     Connection: close honored on either side of the exchange.
//   - Accept-Encoding negotiation (gzip, brotli) applied once per
//     response for handlers that mark their body compressible.
//   - Plug-in Logger and Meter interfaces for observability.
//
// Quick start:
//
//	r := httpd.NewRouter()
//	r.Handle("GET", "/", httpd.HandlerFunc(func(req *httpd.Request) (*httpd.Response, error) {
//	    return httpd.Text(200, "hello"), nil
//	}))
//	s := &httpd.Server{Addr: ":4221", Router: r}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpd
