// Package routes holds the concrete handlers served by the engine:
// the welcome page, /echo, /user-agent, and the /files read/write
// pair.
package routes

import (
	"dqx0.com/go/minihttp/httpd"
)

const welcomeBody = "Welcome to minihttp"

// Register wires every route onto r. dir is the base directory for
// /files; empty disables file serving (requests get 404).
func Register(r *httpd.Router, dir string) {
	r.Handle("GET", "/", httpd.HandlerFunc(Welcome))
	r.HandlePrefix("GET", "/echo/", httpd.HandlerFunc(Echo))
	r.Handle("GET", "/user-agent", httpd.HandlerFunc(UserAgent))
	fs := &FileServer{Dir: dir}
	r.HandlePrefix("GET", "/files/", httpd.HandlerFunc(fs.Get))
	r.HandlePrefix("POST", "/files/", httpd.HandlerFunc(fs.Post))
}

func Welcome(req *httpd.Request) (*httpd.Response, error) {
	return httpd.Text(200, welcomeBody), nil
}

// Echo returns the captured path segment verbatim.
func Echo(req *httpd.Request) (*httpd.Response, error) {
	resp := httpd.Text(200, req.Capture)
	resp.Compressible = true
	return resp, nil
}

func UserAgent(req *httpd.Request) (*httpd.Response, error) {
	ua := req.Header.Get("User-Agent")
	if ua == "" {
		return httpd.Text(400, "Missing User-Agent header"), nil
	}
	resp := httpd.Text(200, ua)
	resp.Compressible = true
	return resp, nil
}
