package documentparse

import (
	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal"
)

func (n *Node) Description() upstage.Description {
	upload := upstage.ShowWhen("operation", OperationSync, OperationAsyncSubmit)

	return upstage.Description{
		Name:        Name,
		DisplayName: "Upstage Document Parsing",
		Description: "Convert documents into HTML, Markdown, text and layout elements",
		Group:       []string{"transform"},
		Version:     1,
		Inputs:      []string{upstage.ConnectionMain},
		Outputs:     []string{upstage.ConnectionMain},
		Credentials: []string{upstage.CredentialName},
		Schema:      internal.GenerateSchema[Params](),
		Properties: []upstage.Property{
			{
				DisplayName: "Operation",
				Name:        "operation",
				Type:        "options",
				Default:     OperationSync,
				Options: []upstage.PropertyOption{
					{Name: "Sync Parse (Upload File)", Value: OperationSync},
					{Name: "Async Submit (Upload File)", Value: OperationAsyncSubmit},
					{Name: "Async Get Result (By Request ID)", Value: OperationAsyncGet},
					{Name: "Async List Requests", Value: OperationAsyncList},
				},
			},
			{
				DisplayName:    "Binary Property",
				Name:           "binaryPropertyName",
				Type:           "string",
				Default:        "data",
				Required:       true,
				Description:    "Name of the binary property holding the document",
				DisplayOptions: upload,
			},
			{
				DisplayName:    "Model",
				Name:           "model",
				Type:           "options",
				Default:        "document-parse",
				Options:        upstage.Options("document-parse", "document-parse-nightly"),
				DisplayOptions: upload,
			},
			{
				DisplayName:    "OCR",
				Name:           "ocr",
				Type:           "options",
				Default:        "auto",
				Options:        upstage.Options("auto", "force", "off"),
				DisplayOptions: upload,
			},
			{
				DisplayName:    "Base64 Categories",
				Name:           "base64Categories",
				Type:           "multiOptions",
				Default:        []string{},
				Description:    "Element categories returned as base64-encoded images",
				Options:        upstage.Options("figure", "table", "equation", "chart"),
				DisplayOptions: upload,
			},
			{
				DisplayName:    "Merge Multipage Tables",
				Name:           "merge_multipage_tables",
				Type:           "boolean",
				Default:        false,
				DisplayOptions: upload,
			},
			{
				DisplayName: "Return Mode",
				Name:        "returnMode",
				Type:        "options",
				Default:     ReturnFull,
				Options: []upstage.PropertyOption{
					{Name: "Full Response", Value: ReturnFull},
					{Name: "Content → HTML", Value: ReturnHtml},
					{Name: "Content → Markdown", Value: ReturnMarkdown},
					{Name: "Content → Text", Value: ReturnText},
					{Name: "Elements Array", Value: ReturnElements},
				},
				DisplayOptions: upstage.ShowWhen("operation", OperationSync),
			},
			{
				DisplayName:    "Request ID",
				Name:           "requestId",
				Type:           "string",
				Default:        "",
				Required:       true,
				DisplayOptions: upstage.ShowWhen("operation", OperationAsyncGet),
			},
		},
	}
}
