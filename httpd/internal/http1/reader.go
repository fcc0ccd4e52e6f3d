package http1

import (
    "bufio"
    "errors"
    "io"
    "strconv"
    "strings"
)

var (
    ErrMalformedLine   = errors.New("http1: malformed request line")
    ErrMalformedHeader = errors.New("http1: malformed header")
    ErrContentLength   = errors.New("http1: invalid Content-Length")
    ErrUnsupportedTE   = errors.New("http1: transfer encoding not supported")
    ErrHeaderTooLarge  = errors.New("http1: header too large")
    ErrBodyTooLarge    = errors.New("http1: body too large")
)

// Field is one header as it came off the wire, name already in
// canonical form.
type Field struct {
    Name  string
    Value string
}

// ParsedRequest is a minimal representation parsed from the wire.
// Fields preserves first-seen key order; a repeated name keeps its
// position and the last value wins. Body is fully read so that the
// declared Content-Length and the bytes held always agree.
type ParsedRequest struct {
    Method        string
    Target        string
    Path          string
    RawQuery      string
    Proto         string
    Fields        []Field
    ContentLength int64
    Body          []byte
}

// Get returns the value of the named header, or "".
func (p *ParsedRequest) Get(name string) string {
    k := CanonicalHeaderKey(name)
    for _, f := range p.Fields {
        if f.Name == k {
            return f.Value
        }
    }
    return ""
}

type Reader struct {
    BR *bufio.Reader
    // MaxHeaderBytes limits a single line; MaxTotalHeaderBytes limits
    // the request line plus all header lines combined.
    MaxHeaderBytes      int
    MaxTotalHeaderBytes int
    MaxBodyBytes        int64
}

var supportedMethods = map[string]bool{
    "GET":  true,
    "POST": true,
}

func (r *Reader) ReadRequest() (*ParsedRequest, error) {
    total := 0
    line, err := r.readLine(&total)
    if err != nil {
        return nil, err
    }
    parts := strings.Split(line, " ")
    if len(parts) != 3 {
        return nil, ErrMalformedLine
    }
    method, target, proto := parts[0], parts[1], parts[2]
    if !supportedMethods[method] {
        return nil, ErrMalformedLine
    }
    if !strings.HasPrefix(target, "/") {
        return nil, ErrMalformedLine
    }
    if !strings.HasPrefix(proto, "HTTP/1.") {
        return nil, ErrMalformedLine
    }
    fields, err := r.readHeaders(&total)
    if err != nil {
        return nil, err
    }
    pr := &ParsedRequest{
        Method: method,
        Target: target,
        Proto:  proto,
        Fields: fields,
    }
    pr.Path, pr.RawQuery = splitTarget(target)

    // Only Content-Length framing is supported; a chunked request
    // cannot be framed here and must be rejected before any body read.
    if te := pr.Get("Transfer-Encoding"); te != "" {
        return nil, ErrUnsupportedTE
    }
    if v := pr.Get("Content-Length"); v != "" {
        n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
        if err != nil || n < 0 {
            return nil, ErrContentLength
        }
        if r.MaxBodyBytes > 0 && n > r.MaxBodyBytes {
            return nil, ErrBodyTooLarge
        }
        pr.ContentLength = n
        if n > 0 {
            body := make([]byte, n)
            if _, err := io.ReadFull(r.BR, body); err != nil {
                // Fewer bytes than declared before the peer went away.
                return nil, err
            }
            pr.Body = body
        }
    }
    return pr, nil
}

func (r *Reader) readHeaders(total *int) ([]Field, error) {
    var fields []Field
    idx := make(map[string]int)
    for {
        line, err := r.readLine(total)
        if err != nil {
            return nil, err
        }
        if line == "" {
            break
        }
        i := strings.IndexByte(line, ':')
        if i <= 0 {
            return nil, ErrMalformedHeader
        }
        k := strings.TrimSpace(line[:i])
        if SanitizeHeaderKey(k) == "" {
            return nil, ErrMalformedHeader
        }
        k = CanonicalHeaderKey(k)
        v := strings.TrimSpace(line[i+1:])
        if at, ok := idx[k]; ok {
            // Duplicate name: last occurrence wins, position kept.
            fields[at].Value = v
            continue
        }
        idx[k] = len(fields)
        fields = append(fields, Field{Name: k, Value: v})
    }
    return fields, nil
}

func (r *Reader) readLine(total *int) (string, error) {
    var sb strings.Builder
    for {
        b, err := r.BR.ReadByte()
        if err != nil {
            return "", err
        }
        *total++
        if b == '\n' {
            break
        }
        if b != '\r' {
            sb.WriteByte(b)
        }
        if r.MaxHeaderBytes > 0 && sb.Len() > r.MaxHeaderBytes {
            return "", ErrHeaderTooLarge
        }
        if r.MaxTotalHeaderBytes > 0 && *total > r.MaxTotalHeaderBytes {
            return "", ErrHeaderTooLarge
        }
    }
    return sb.String(), nil
}

// splitTarget separates the path from the raw query. The query is kept
// verbatim for downstream handlers; only the path takes part in routing.
func splitTarget(target string) (path, rawQuery string) {
    if i := strings.IndexByte(target, '?'); i >= 0 {
        return target[:i], target[i+1:]
    }
    return target, ""
}

// CanonicalHeaderKey uppercases the first letter of each dash-separated
// word. Small enough to avoid importing textproto here.
func CanonicalHeaderKey(s string) string {
    b := []byte(strings.ToLower(s))
    upper := true
    for i, c := range b {
        if c >= 'a' && c <= 'z' {
            if upper {
                b[i] = byte(c - 'a' + 'A')
            }
            upper = false
            continue
        }
        upper = c == '-'
    }
    return string(b)
}
