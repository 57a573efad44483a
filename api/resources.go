package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/url"

	"github.com/pkg/errors"
)

// ResourceCreate is the JSON payload for creating a resource record.
// ResourceType is one of "file", "link", "repo" or "note".
type ResourceCreate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	ResourceType string   `json:"resource_type"`
	URL          string   `json:"url,omitempty"`
	Content      string   `json:"content,omitempty"` // For notes
	CourseID     string   `json:"course_id,omitempty"`
	TopicID      string   `json:"topic_id,omitempty"`
	AssignmentID string   `json:"assignment_id,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// ResourceUpdate is a partial resource payload.
type ResourceUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Content     *string  `json:"content,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UploadOptions carries the optional metadata fields accepted alongside an
// uploaded file.
type UploadOptions struct {
	Title        string
	Description  string
	CourseID     string
	TopicID      string
	AssignmentID string
	Tags         string // Comma-separated
}

func ListResources() *Request {
	return getRequest("/resources/")
}

func CreateResource(resource ResourceCreate) *Request {
	return jsonRequest("POST", "/resources/", resource)
}

func GetResource(resourceID string) *Request {
	return getRequest("/resources/" + resourceID)
}

func UpdateResource(resourceID string, update ResourceUpdate) *Request {
	return jsonRequest("PUT", "/resources/"+resourceID, update)
}

func DeleteResource(resourceID string) *Request {
	return deleteRequest("/resources/" + resourceID)
}

// SearchResources runs the backend's full-text search over titles,
// descriptions and note content.
func SearchResources(query string) *Request {
	r := getRequest("/resources/search/fulltext")
	r.Query = url.Values{"q": []string{query}}
	return r
}

// UploadResource builds a multipart file upload. The file content is read
// eagerly so the request body can be inspected and replayed in tests.
func UploadResource(filename string, content io.Reader, opts UploadOptions) (*Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, "create multipart file field")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrapf(err, "read upload content for %s", filename)
	}

	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "finalise multipart body")
	}

	// The metadata parameters are bound from the query string, not the
	// multipart body.
	query := url.Values{}
	params := map[string]string{
		"title":         opts.Title,
		"description":   opts.Description,
		"course_id":     opts.CourseID,
		"topic_id":      opts.TopicID,
		"assignment_id": opts.AssignmentID,
		"tags":          opts.Tags,
	}
	for name, value := range params {
		if value != "" {
			query.Set(name, value)
		}
	}

	return &Request{
		Method:      "POST",
		Path:        "/resources/upload",
		Query:       query,
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, nil
}
