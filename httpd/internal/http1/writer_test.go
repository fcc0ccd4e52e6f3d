package http1

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func writeResp(t *testing.T, status int, fields []Field, body []byte, keepAlive bool) string {
	t.Helper()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, status, "", fields, body, keepAlive); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.String()
}

func TestWriteResponse_StatusLine(t *testing.T) {
	out := writeResp(t, 404, nil, nil, false)
	if !strings.HasPrefix(out, "HTTP/1.1 404 Not Found\r\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestWriteResponse_ContentLengthComputed(t *testing.T) {
	// A wrong caller-supplied Content-Length must lose.
	fields := []Field{{Name: "Content-Length", Value: "999"}}
	out := writeResp(t, 200, fields, []byte("hello"), true)
	if strings.Contains(out, "999") {
		t.Fatalf("caller Content-Length survived: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 5\r\n") {
		t.Fatalf("out=%q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\nhello") {
		t.Fatalf("out=%q", out)
	}
}

func TestWriteResponse_EmptyBody(t *testing.T) {
	out := writeResp(t, 204, nil, nil, true)
	if !strings.Contains(out, "Content-Length: 0\r\n") {
		t.Fatalf("out=%q", out)
	}
	if strings.Contains(out, "Content-Type") {
		t.Fatalf("unexpected Content-Type for empty body: %q", out)
	}
}

func TestWriteResponse_DefaultContentType(t *testing.T) {
	out := writeResp(t, 200, nil, []byte("x"), true)
	if !strings.Contains(out, "Content-Type: text/plain\r\n") {
		t.Fatalf("out=%q", out)
	}
	out = writeResp(t, 200, []Field{{Name: "Content-Type", Value: "application/octet-stream"}}, []byte("x"), true)
	if strings.Contains(out, "text/plain") {
		t.Fatalf("default type overrode handler type: %q", out)
	}
}

func TestWriteResponse_FieldOrderPreserved(t *testing.T) {
	fields := []Field{
		{Name: "X-B", Value: "2"},
		{Name: "X-A", Value: "1"},
	}
	out := writeResp(t, 200, fields, nil, true)
	if strings.Index(out, "X-B: 2") > strings.Index(out, "X-A: 1") {
		t.Fatalf("field order not preserved: %q", out)
	}
}

func TestWriteResponse_Connection(t *testing.T) {
	out := writeResp(t, 200, []Field{{Name: "Connection", Value: "keep-alive"}}, nil, false)
	if !strings.Contains(out, "Connection: close\r\n") {
		t.Fatalf("out=%q", out)
	}
	if strings.Contains(out, "Connection: keep-alive") {
		t.Fatalf("caller Connection survived: %q", out)
	}
	out = writeResp(t, 200, nil, nil, true)
	if !strings.Contains(out, "Connection: keep-alive\r\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestWriteResponse_ValueSanitized(t *testing.T) {
	fields := []Field{{Name: "X-A", Value: "a\r\nX-Injected: b"}}
	out := writeResp(t, 200, fields, nil, true)
	if strings.Contains(out, "\r\nX-Injected: b\r\n") {
		t.Fatalf("header injection possible: %q", out)
	}
	if !strings.Contains(out, "X-A: aX-Injected: b\r\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestSanitizeHeaderKey(t *testing.T) {
	if SanitizeHeaderKey("Good-Key_1") == "" {
		t.Fatal("valid token rejected")
	}
	for _, bad := range []string{"Bad(", "a b", "x:y", ""} {
		if SanitizeHeaderKey(bad) != "" {
			t.Errorf("%q accepted", bad)
		}
	}
}
