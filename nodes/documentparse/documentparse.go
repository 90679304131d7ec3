package documentparse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/checkmarble/upstage-nodes"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	Name = "documentParsingUpstage"

	PathParse    = "/document-digitization"
	PathAsync    = "/document-digitization/async"
	PathRequests = "/document-digitization/requests"
)

// Node digitizes documents, either synchronously or through the asynchronous
// request API.
type Node struct {
	client *upstage.Client
}

func New(client *upstage.Client) *Node {
	return &Node{client: client}
}

func (n *Node) Execute(ctx context.Context, fns upstage.ExecuteFunctions) ([]upstage.Output, error) {
	return upstage.Execute(ctx, fns, func(ctx context.Context, idx int, item upstage.Item) (upstage.Output, error) {
		params, err := upstage.ReadParams(fns, idx, defaultParams())
		if err != nil {
			return upstage.Output{}, err
		}

		switch params.Operation {
		case OperationSync, OperationAsyncSubmit:
			return n.upload(ctx, fns, idx, item, params)

		case OperationAsyncGet:
			resp, err := n.client.Do(ctx, upstage.NewRequest(http.MethodGet, PathRequests+"/"+url.PathEscape(params.RequestId)))
			if err != nil {
				return upstage.Output{}, err
			}

			return upstage.Output{JSON: resp.Object()}, nil

		case OperationAsyncList:
			resp, err := n.client.Do(ctx, upstage.NewRequest(http.MethodGet, PathRequests))
			if err != nil {
				return upstage.Output{}, err
			}

			return upstage.Output{JSON: resp.Object()}, nil

		default:
			return upstage.Output{}, upstage.Validationf("unsupported operation %q", params.Operation)
		}
	})
}

func (n *Node) upload(ctx context.Context, fns upstage.ExecuteFunctions, idx int, item upstage.Item, params Params) (upstage.Output, error) {
	bin, data, err := upstage.BinaryProperty(ctx, fns, idx, item, params.BinaryPropertyName)
	if err != nil {
		return upstage.Output{}, err
	}

	req, err := formRequest(params, bin, data)
	if err != nil {
		return upstage.Output{}, err
	}

	resp, err := n.client.Do(ctx, req)
	if err != nil {
		return upstage.Output{}, err
	}

	if params.Operation == OperationAsyncSubmit {
		return upstage.Output{
			JSON: map[string]any{
				"request_id": resp.ValueOf("request_id"),
				"submitted":  true,
			},
		}, nil
	}

	return upstage.Output{JSON: project(resp, params.ReturnMode)}, nil
}

func formRequest(params Params, bin *upstage.Binary, data []byte) (upstage.Request, error) {
	path := PathParse
	if params.Operation == OperationAsyncSubmit {
		path = PathAsync
	}

	req := upstage.NewRequest(http.MethodPost, path).
		WithFile("document",
			lo.CoalesceOrEmpty(bin.FileName, "upload"),
			lo.CoalesceOrEmpty(bin.MimeType, upstage.DefaultMimeType),
			data).
		WithField("model", params.Model).
		WithField("ocr", params.Ocr)

	if len(params.Base64Categories) > 0 {
		categories, err := json.Marshal(params.Base64Categories)
		if err != nil {
			return req, errors.Wrap(err, "could not encode base64 categories")
		}

		req = req.WithField("base64_encoding", string(categories))
	}

	if params.MergeMultipageTables {
		req = req.WithField("merge_multipage_tables", "true")
	}

	return req, nil
}

func project(resp *upstage.Response, mode string) map[string]any {
	switch mode {
	case ReturnHtml:
		return map[string]any{"html": resp.StringOr("content.html", "")}
	case ReturnMarkdown:
		return map[string]any{"markdown": resp.StringOr("content.markdown", "")}
	case ReturnText:
		return map[string]any{"text": resp.StringOr("content.text", "")}
	case ReturnElements:
		return map[string]any{"elements": resp.ArrayOr("elements")}
	default:
		return resp.Object()
	}
}
