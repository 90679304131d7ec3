package upstage

// Request describes one outbound call to the Upstage API. It is built fresh
// for every item and carries either a JSON body or a multipart form, never
// both.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	// Token replaces the client's bearer token for this request only.
	Token string

	// Body is serialized as JSON.
	Body any
	// Form holds multipart parts, sent in order.
	Form []FormPart
}

// FormPart is either a plain text field (no FileName) or a file upload.
type FormPart struct {
	Name        string
	FileName    string
	ContentType string
	Data        []byte
}

// NewRequest creates a request for the given method and path, relative to the
// configured base URL.
//
// Example usage:
//
//	req := upstage.NewRequest(http.MethodPost, "/embeddings").
//		WithJson(map[string]any{"model": "embedding-query", "input": "hello"})
func NewRequest(method, path string) Request {
	return Request{
		Method:  method,
		Path:    path,
		Headers: map[string]string{},
	}
}

// WithJson sets the JSON body of the request.
func (r Request) WithJson(body any) Request {
	r.Body = body

	return r
}

// WithHeader adds a header on top of the authentication the client injects.
func (r Request) WithHeader(key, value string) Request {
	headers := make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		headers[k] = v
	}
	headers[key] = value
	r.Headers = headers

	return r
}

// WithBearerToken authenticates the request with its own bearer token instead
// of the one the client was configured with.
func (r Request) WithBearerToken(token string) Request {
	r.Token = token

	return r
}

// WithField appends a text field to the multipart form.
func (r Request) WithField(name, value string) Request {
	r.Form = append(r.Form[:len(r.Form):len(r.Form)], FormPart{
		Name: name,
		Data: []byte(value),
	})

	return r
}

// WithFile appends a file part to the multipart form.
func (r Request) WithFile(name, fileName, contentType string, data []byte) Request {
	r.Form = append(r.Form[:len(r.Form):len(r.Form)], FormPart{
		Name:        name,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	})

	return r
}

// IsMultipart reports whether the request is sent as a multipart form.
func (r Request) IsMultipart() bool {
	return len(r.Form) > 0
}
