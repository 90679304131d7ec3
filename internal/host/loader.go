package host

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/charmbracelet/log"
	"github.com/checkmarble/upstage-nodes"
	"github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/simonfrey/jsonl"
)

const gcsScheme = "gs://"

// Loader reads items from JSONL and resolves the binaries they reference,
// either local paths or gs://bucket/object URIs.
//
// Each line has the shape:
//
//	{"json": {...}, "binary": {"data": {"fileName": "a.pdf", "mimeType": "application/pdf", "path": "docs/a.pdf"}}}
type Loader struct {
	baseDir string
	logger  *log.Logger
	gcs     *storage.Client
}

type loaderOpt func(*Loader)

// WithBaseDir sets the directory relative binary paths are resolved from.
func WithBaseDir(dir string) loaderOpt {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

func WithLogger(logger *log.Logger) loaderOpt {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithStorageClient provides the GCS client used for gs:// references. If not
// specified, one is created on first use from the ambient credentials.
func WithStorageClient(client *storage.Client) loaderOpt {
	return func(l *Loader) {
		l.gcs = client
	}
}

func NewLoader(opts ...loaderOpt) *Loader {
	loader := Loader{
		logger: log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(&loader)
	}

	return &loader
}

// Load reads every item and the content of its binaries into an in-memory
// host running with params.
func (l *Loader) Load(ctx context.Context, r io.Reader, params map[string]any) (*Memory, error) {
	mem := NewMemory(params)

	err := jsonl.NewReader(r).ReadLines(func(line []byte) error {
		if len(bytes.TrimSpace(line)) == 0 {
			return nil
		}

		idx := len(mem.Items)

		var item upstage.Item

		if err := json.Unmarshal(line, &item); err != nil {
			return errors.Wrapf(err, "could not decode item %d", idx)
		}
		if item.JSON == nil {
			item.JSON = map[string]any{}
		}

		mem.Items = append(mem.Items, item)
		mem.Buffers[idx] = make(map[string][]byte, len(item.Binary))

		for property, bin := range item.Binary {
			if bin == nil {
				delete(item.Binary, property)
				continue
			}

			data, err := l.read(ctx, bin.Reference)
			if err != nil {
				return errors.Wrapf(err, "could not read binary property %q of item %d", property, idx)
			}

			if bin.MimeType == "" {
				bin.MimeType = mimetype.Detect(data).String()
			}
			if bin.FileName == "" {
				bin.FileName = path.Base(bin.Reference)
			}

			l.logger.Debug("loaded binary", "item", idx, "property", property, "mime", bin.MimeType, "size", len(data))

			mem.Buffers[idx][property] = data
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not load items")
	}

	return mem, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New("binary has no path")
	}

	if bucket, object, ok := strings.Cut(strings.TrimPrefix(ref, gcsScheme), "/"); ok && strings.HasPrefix(ref, gcsScheme) {
		return l.readObject(ctx, bucket, object)
	}

	if !filepath.IsAbs(ref) && l.baseDir != "" {
		ref = filepath.Join(l.baseDir, ref)
	}

	return os.ReadFile(ref)
}

func (l *Loader) readObject(ctx context.Context, bucket, object string) ([]byte, error) {
	if l.gcs == nil {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "could not create storage client")
		}

		l.gcs = client
	}

	r, err := l.gcs.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open gs://%s/%s", bucket, object)
	}
	defer r.Close()

	return io.ReadAll(r)
}

func (l *Loader) Close() error {
	if l.gcs != nil {
		return l.gcs.Close()
	}

	return nil
}

// WriteOutputs writes one JSONL line per output.
func WriteOutputs(w io.Writer, outputs []upstage.Output) error {
	writer := jsonl.NewWriter(w)

	for _, output := range outputs {
		if err := writer.Write(output); err != nil {
			return errors.Wrapf(err, "could not write output for item %d", output.PairedItem.Item)
		}
	}

	return nil
}
