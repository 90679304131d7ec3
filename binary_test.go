package upstage_test

import (
	"testing"

	"github.com/checkmarble/upstage-nodes"
	"github.com/checkmarble/upstage-nodes/internal/host"
	"github.com/stretchr/testify/assert"
)

func TestBinaryProperty(t *testing.T) {
	fns := host.NewMemory(nil, upstage.Item{JSON: map[string]any{}}).
		WithBinary(0, "data", upstage.Binary{FileName: "a.png", MimeType: "image/png"}, []byte{0x89, 0x50})

	bin, data, err := upstage.BinaryProperty(t.Context(), fns, 0, fns.Items[0], "data")

	assert.Nil(t, err)
	assert.Equal(t, "a.png", bin.FileName)
	assert.Equal(t, []byte{0x89, 0x50}, data)
}

func TestBinaryPropertyMissing(t *testing.T) {
	fns := host.NewMemory(nil, upstage.Item{JSON: map[string]any{}})

	_, _, err := upstage.BinaryProperty(t.Context(), fns, 0, fns.Items[0], "document")

	assert.EqualError(t, err, `no binary data found in property "document"`)
	assert.Equal(t, upstage.KindValidation, upstage.Kind(err))
}

func TestDataUrl(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", upstage.DataUrl("image/png", []byte("hello")))
	assert.Equal(t, "data:application/octet-stream;base64,aGVsbG8=", upstage.DataUrl("", []byte("hello")))
}
