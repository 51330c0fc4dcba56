// Package schemaload fetches form documents from files, fs.FS entries, or
// HTTP endpoints. It returns raw bytes; decoding lives in pkg/schema.
package schemaload

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/formflow/formflow/pkg/schema"
)

// Options collects the knobs a Loader needs up front.
type Options struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS
	// HTTPClient backs SourceKindURL lookups. URL sources fail when nil.
	HTTPClient *http.Client
	// RequestTimeout bounds each HTTP fetch when set.
	RequestTimeout time.Duration
}

// Loader resolves a schema.Source into document bytes.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader from pre-resolved options.
func New(options Options) *Loader {
	httpClient := options.HTTPClient
	if httpClient != nil && options.RequestTimeout > 0 && httpClient.Timeout == 0 {
		clone := *httpClient
		clone.Timeout = options.RequestTimeout
		httpClient = &clone
	}
	return &Loader{
		fs:      options.FileSystem,
		http:    httpClient,
		timeout: options.RequestTimeout,
	}
}

// Load fetches the document identified by the source.
func (l *Loader) Load(ctx context.Context, src schema.Source) ([]byte, error) {
	if src.IsZero() {
		return nil, errors.New("schemaload: source is empty")
	}

	switch src.Kind() {
	case schema.SourceKindFile:
		return loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return nil, errors.New("schemaload: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		return nil, errors.New("schemaload: unsupported source kind")
	}
}
