package documentparse

const (
	OperationSync        = "sync"
	OperationAsyncSubmit = "asyncSubmit"
	OperationAsyncGet    = "asyncGet"
	OperationAsyncList   = "asyncList"

	ReturnFull     = "full"
	ReturnHtml     = "content_html"
	ReturnMarkdown = "content_markdown"
	ReturnText     = "content_text"
	ReturnElements = "elements"
)

type Params struct {
	Operation            string   `mapstructure:"operation" validate:"oneof=sync asyncSubmit asyncGet asyncList" jsonschema:"required,enum=sync,enum=asyncSubmit,enum=asyncGet,enum=asyncList,default=sync"`
	BinaryPropertyName   string   `mapstructure:"binaryPropertyName" validate:"required_when=Operation sync asyncSubmit" jsonschema:"default=data"`
	Model                string   `mapstructure:"model" validate:"required_when=Operation sync asyncSubmit" jsonschema:"enum=document-parse,enum=document-parse-nightly,default=document-parse"`
	Ocr                  string   `mapstructure:"ocr" validate:"oneof=auto force off" jsonschema:"enum=auto,enum=force,enum=off,default=auto"`
	Base64Categories     []string `mapstructure:"base64Categories" validate:"dive,oneof=figure table equation chart" jsonschema:"uniqueItems=true"`
	MergeMultipageTables bool     `mapstructure:"merge_multipage_tables"`
	ReturnMode           string   `mapstructure:"returnMode" validate:"oneof=full content_html content_markdown content_text elements" jsonschema:"enum=full,enum=content_html,enum=content_markdown,enum=content_text,enum=elements,default=full"`
	RequestId            string   `mapstructure:"requestId" validate:"required_if=Operation asyncGet"`
}

func defaultParams() Params {
	return Params{
		Operation:          OperationSync,
		BinaryPropertyName: "data",
		Model:              "document-parse",
		Ocr:                "auto",
		ReturnMode:         ReturnFull,
	}
}
