package upstage

import (
	"context"
	"encoding/base64"

	"github.com/cockroachdb/errors"
)

const DefaultMimeType = "application/octet-stream"

// BinaryProperty resolves the named binary property of an item and its
// content. A missing property is a validation error, reported before any
// request is made.
func BinaryProperty(ctx context.Context, fns ExecuteFunctions, idx int, item Item, property string) (*Binary, []byte, error) {
	bin, ok := item.Binary[property]
	if !ok || bin == nil {
		return nil, nil, Validationf("no binary data found in property %q", property)
	}

	data, err := fns.BinaryDataBuffer(ctx, idx, property)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "could not read binary property %q", property)
	}

	return bin, data, nil
}

// DataUrl encodes content as a base64 data URL.
func DataUrl(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
