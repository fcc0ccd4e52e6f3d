package httpd

// Response is the value a handler returns. The serializer computes
// Content-Length from Body itself and defaults Content-Type to
// text/plain when a body is present, so most handlers only fill
// StatusCode and Body.
type Response struct {
    StatusCode int
    Header     Header
    Body       []byte
    // Compressible marks the body as eligible for Accept-Encoding
    // negotiation.
    Compressible bool
    // Close forces the connection to close after this exchange.
    Close bool
}

// Text builds a plain-text response.
func Text(status int, body string) *Response {
    return &Response{StatusCode: status, Body: []byte(body)}
}
