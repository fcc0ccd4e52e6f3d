package routes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dqx0.com/go/minihttp/httpd"
)

// FileServer reads and writes files under Dir. Concurrent reads of the
// same file are safe; concurrent writes to the same name are not
// ordered here.
type FileServer struct {
	Dir string
}

func (f *FileServer) Get(req *httpd.Request) (*httpd.Response, error) {
	name, resp := f.checkName(req.Capture)
	if resp != nil {
		return resp, nil
	}
	b, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, httpd.ErrMissingResource)
		}
		return nil, err
	}
	out := &httpd.Response{StatusCode: 200, Body: b, Compressible: true}
	out.Header.Set("Content-Type", "application/octet-stream")
	return out, nil
}

func (f *FileServer) Post(req *httpd.Request) (*httpd.Response, error) {
	name, resp := f.checkName(req.Capture)
	if resp != nil {
		return resp, nil
	}
	dst := filepath.Join(f.Dir, name)
	if err := os.WriteFile(dst, req.Body, 0o644); err != nil {
		return httpd.Text(500, "Failed to write file"), nil
	}
	out := httpd.Text(201, "Resource created successfully")
	out.Header.Set("Location", dst)
	return out, nil
}

// checkName validates the captured filename. The router already keeps
// captures to a single segment, but a name like ".." would still
// escape Dir on join.
func (f *FileServer) checkName(name string) (string, *httpd.Response) {
	if name == "" {
		return "", httpd.Text(400, "File asked but no filename provided")
	}
	if f.Dir == "" {
		return "", &httpd.Response{StatusCode: 404}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", &httpd.Response{StatusCode: 404}
	}
	return name, nil
}
