package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadJSON
	payloadForm
	payloadParams
)

// Payload is a request body in one of the three shapes the backend accepts.
// JSON bodies get the default Content-Type; form and url-encoded payloads
// carry their own and pass through untouched.
type Payload struct {
	kind        payloadKind
	body        []byte
	contentType string
}

// JSON marshals v into a JSON payload.
func JSON(v any) (Payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("encode request body: %w", err)
	}
	return Payload{kind: payloadJSON, body: data}, nil
}

// RawJSON wraps pre-encoded JSON bytes.
func RawJSON(data []byte) Payload {
	return Payload{kind: payloadJSON, body: data}
}

// Form builds a multipart/form-data payload from fields and optional file
// parts.
func Form(fields map[string]string, files ...FilePart) (Payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return Payload{}, fmt.Errorf("write form field %q: %w", name, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return Payload{}, fmt.Errorf("create form file %q: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return Payload{}, fmt.Errorf("write form file %q: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Payload{}, fmt.Errorf("finalize form body: %w", err)
	}

	return Payload{kind: payloadForm, body: buf.Bytes(), contentType: writer.FormDataContentType()}, nil
}

// Params builds an application/x-www-form-urlencoded payload.
func Params(values url.Values) Payload {
	return Payload{
		kind:        payloadParams,
		body:        []byte(values.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}
}

type FilePart struct {
	Field string
	Name  string
	Data  []byte
}

func (p Payload) empty() bool {
	return p.kind == payloadNone
}

func (p Payload) reader() io.Reader {
	if p.empty() {
		return nil
	}
	return bytes.NewReader(p.body)
}

// keySuffix makes the de-duplication key content-derived, so two different
// submissions to the same endpoint are not confused with each other, while
// an identical resubmission is.
func (p Payload) keySuffix() string {
	switch p.kind {
	case payloadForm:
		return "form-data"
	case payloadJSON, payloadParams:
		return string(p.body)
	default:
		return ""
	}
}

// Options carries everything a request needs beyond the path. A zero value
// is a GET with no headers and no body.
type Options struct {
	Method string
	Header http.Header
	Body   Payload
}

func (o Options) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

func (o Options) mutating() bool {
	return o.method() != http.MethodGet
}

func requestKey(path string, opts Options) string {
	method := opts.method()
	if method == http.MethodGet {
		return method + ":" + path
	}
	if suffix := opts.Body.keySuffix(); suffix != "" {
		return method + ":" + path + ":" + suffix
	}
	return method + ":" + path
}
