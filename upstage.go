package upstage

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

const (
	DefaultBaseUrl = "https://api.upstage.ai/v1"
)

// Client is the authenticated transport every node issues its single call
// through. It carries the Upstage credentials and injects them as a bearer
// token on each request.
type Client struct {
	http *resty.Client

	httpClient *http.Client
	logger     *log.Logger

	baseUrl string
	apiKey  string
}

// New creates a new Client with the given options.
//
// Example usage:
//
//	client, err := upstage.New(
//		upstage.WithApiKey("your-api-key"),
//	)
func New(opts ...opt) (*Client, error) {
	client := Client{
		baseUrl: DefaultBaseUrl,
	}

	for _, opt := range opts {
		opt(&client)
	}

	if client.apiKey == "" {
		return nil, Validationf("an Upstage API key is required")
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.logger == nil {
		client.logger = log.New(io.Discard)
	}

	client.http = resty.NewWithClient(client.httpClient).
		SetBaseURL(client.baseUrl).
		SetAuthToken(client.apiKey).
		SetHeader("Accept", "application/json")

	return &client, nil
}

// Do sends one request to the Upstage API.
//
// Any status outside of the 2xx range is reported as a *TransportError
// carrying the status code and the response body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	r := c.http.R().SetContext(ctx)

	for key, value := range req.Headers {
		r.SetHeader(key, value)
	}
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}

	switch {
	case len(req.Form) > 0:
		r.SetMultipartFields(lo.Map(req.Form, func(part FormPart, _ int) *resty.MultipartField {
			return &resty.MultipartField{
				Param:       part.Name,
				FileName:    part.FileName,
				ContentType: part.ContentType,
				Reader:      bytes.NewReader(part.Data),
			}
		})...)

	case req.Body != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "could not reach Upstage API at %s", req.Path), ErrTransport)
	}

	c.logger.Debug("upstage request", "method", req.Method, "path", req.Path, "status", resp.StatusCode())

	if !resp.IsSuccess() {
		return nil, errors.Mark(&TransportError{
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}, ErrTransport)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Raw:        resp.Body(),
	}, nil
}

// CheckCredentials probes the models listing to verify the configured API key.
func (c *Client) CheckCredentials(ctx context.Context) error {
	if _, err := c.Do(ctx, NewRequest(http.MethodGet, "/models")); err != nil {
		return errors.Wrap(err, "could not verify Upstage credentials")
	}

	return nil
}

func (c *Client) ApiKey() string {
	return c.apiKey
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) HttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) Logger() *log.Logger {
	return c.logger
}
