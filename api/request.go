// Package api is the authenticated HTTP client for the Core Engine backend.
//
// Endpoints are declared as request builders grouped by resource domain
// (auth, courses, assignments, resources, workflows, plugins, agents). A
// builder returns a Request describing method, path and payload without
// touching the network; Client.Do performs the call, injecting the current
// bearer credential and invalidating the session on a 401.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes a single backend call. Path is relative to the client's
// base URL (versioned prefix included in the base).
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// JSON, when non-nil, is marshalled at dispatch time with an
	// application/json content type.
	JSON any

	// Body is a pre-encoded payload (form submissions, multipart uploads)
	// sent verbatim with ContentType.
	Body        []byte
	ContentType string
}

// URL returns the path with the encoded query appended, ready to join onto a
// base URL.
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// encode resolves the request's payload into a reader and content type.
func (r *Request) encode() (io.Reader, string, error) {
	if r.Body != nil {
		return bytes.NewReader(r.Body), r.ContentType, nil
	}
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", errors.Wrap(err, "encode request payload")
		}
		return bytes.NewReader(data), contentTypeJSON, nil
	}
	return nil, "", nil
}

func getRequest(path string) *Request {
	return &Request{Method: "GET", Path: path}
}

func deleteRequest(path string) *Request {
	return &Request{Method: "DELETE", Path: path}
}

func jsonRequest(method, path string, payload any) *Request {
	return &Request{Method: method, Path: path, JSON: payload}
}
