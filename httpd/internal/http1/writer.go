package http1

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// WriteResponse writes a complete HTTP/1.1 response. Field names should
// be canonicalized by the caller; order is preserved on the wire.
//
// Content-Length and Connection are always computed here: a
// caller-supplied Content-Length that disagrees with len(body) is
// discarded, and any caller Connection field is replaced by the
// keepAlive decision. A non-empty body with no Content-Type gets
// text/plain.
func WriteResponse(bw *bufio.Writer, status int, reason string, fields []Field, body []byte, keepAlive bool) error {
	if reason == "" {
		reason = defaultReason(status)
	}
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, reason); err != nil {
		return err
	}
	hasType := false
	for _, f := range fields {
		switch f.Name {
		case "Content-Length", "Connection":
			continue
		case "Content-Type":
			hasType = true
		}
		if SanitizeHeaderKey(f.Name) == "" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, SanitizeHeaderValue(f.Value)); err != nil {
			return err
		}
	}
	if len(body) > 0 && !hasType {
		if _, err := fmt.Fprint(bw, "Content-Type: text/plain\r\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "Content-Length: %s\r\n", strconv.Itoa(len(body))); err != nil {
		return err
	}
	if keepAlive {
		if _, err := fmt.Fprint(bw, "Connection: keep-alive\r\n"); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(bw, "Connection: close\r\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

func defaultReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	default:
		return ""
	}
}

// SanitizeHeaderKey ensures the header name is a valid token; returns
// empty string if invalid.
func SanitizeHeaderKey(k string) string {
	if k == "" {
		return ""
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			continue
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
			continue
		default:
			return ""
		}
	}
	return k
}

// SanitizeHeaderValue removes CR/LF and control chars except HTAB.
func SanitizeHeaderValue(v string) string {
	if v == "" {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
