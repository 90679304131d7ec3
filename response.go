package upstage

import (
	"github.com/tidwall/gjson"
)

// Response is the raw body of a successful exchange. Fields are projected with
// gjson paths so that absent values can fall back to the defaults each node
// documents.
type Response struct {
	StatusCode int
	Raw        []byte
}

func (r Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// Value returns the decoded body, or the body text when it is not JSON.
func (r Response) Value() any {
	if !gjson.ValidBytes(r.Raw) {
		return string(r.Raw)
	}

	return gjson.ParseBytes(r.Raw).Value()
}

// Object returns the body as a JSON object. Any other body is wrapped under
// a "data" key.
func (r Response) Object() map[string]any {
	if obj, ok := r.Value().(map[string]any); ok {
		return obj
	}

	return map[string]any{"data": r.Value()}
}

// ValueOf returns the decoded value at path, or nil when it is absent.
func (r Response) ValueOf(path string) any {
	res := r.Get(path)
	if !res.Exists() {
		return nil
	}

	return res.Value()
}

// StringOr returns the string at path, or the fallback when it is absent or
// null.
func (r Response) StringOr(path, fallback string) string {
	res := r.Get(path)
	if !res.Exists() || res.Type == gjson.Null {
		return fallback
	}

	return res.String()
}

// ArrayOr returns the array at path, or an empty list when it is absent.
func (r Response) ArrayOr(path string) []any {
	if list, ok := r.ValueOf(path).([]any); ok {
		return list
	}

	return []any{}
}

// Content is the text of the first choice of a chat-shaped response.
func (r Response) Content() string {
	return r.StringOr("choices.0.message.content", "")
}
