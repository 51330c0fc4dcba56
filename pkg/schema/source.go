package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a form document can be loaded from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies the origin of a form document so loaders can operate on
// files, fs.FS entries, or URLs without leaking implementation details.
type Source struct {
	kind     SourceKind
	location string
}

// Kind reports the loader modality.
func (s Source) Kind() SourceKind {
	return s.kind
}

// Location is the path, fs name, or URL string for the origin.
func (s Source) Location() string {
	return s.location
}

// IsZero reports whether the source was never set.
func (s Source) IsZero() bool {
	return s.kind == "" && s.location == ""
}

// FileSource points at an on-disk document.
func FileSource(path string) Source {
	return Source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// FSSource points at a document inside an fs.FS.
func FSSource(name string) Source {
	return Source{kind: SourceKindFS, location: name}
}

// URLSource points at an HTTP(S) endpoint serving the document.
func URLSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return Source{}, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	return Source{kind: SourceKindURL, location: raw}, nil
}

// ParseSource interprets a CLI-style location string: anything with an
// http(s) scheme becomes a URL source, everything else a file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, fmt.Errorf("schema: empty source")
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return URLSource(raw)
	}
	return FileSource(raw), nil
}
