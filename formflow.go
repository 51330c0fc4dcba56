// Package formflow renders server-declared multi-section forms in the
// terminal: register a user, fetch the form keyed to them, walk its sections
// with per-section validation, and emit the collected values. This file
// exposes the top-level constructors while keeping the internal
// implementations hidden from consumers.
package formflow

import (
	"context"

	"github.com/formflow/formflow/internal/openapiform"
	"github.com/formflow/formflow/internal/schemaload"
	"github.com/formflow/formflow/pkg/client"
	"github.com/formflow/formflow/pkg/renderers/tui"
	"github.com/formflow/formflow/pkg/schema"
	"github.com/formflow/formflow/pkg/session"
)

// Loader resolves a schema.Source into raw form-document bytes.
type Loader interface {
	Load(ctx context.Context, src schema.Source) ([]byte, error)
}

// LoaderOptions re-exports the loader configuration.
type LoaderOptions = schemaload.Options

// NewLoader constructs a document loader using the internal implementation.
func NewLoader(options LoaderOptions) Loader {
	return schemaload.New(options)
}

// NewClient constructs a form-service client for the given base URL.
func NewClient(baseURL string, options ...client.Option) (*client.Client, error) {
	return client.New(baseURL, options...)
}

// DecodeForm parses and normalises a form document from JSON or YAML bytes.
func DecodeForm(data []byte) (schema.Form, error) {
	return schema.DecodeForm(data)
}

// NewSession seeds a fill session for a user and a decoded form.
func NewSession(user schema.User, form schema.Form) *session.Session {
	return session.New(user, form)
}

// NewTUIRenderer constructs the terminal renderer.
func NewTUIRenderer(options ...tui.Option) (*tui.Renderer, error) {
	return tui.New(options...)
}

// ImportOpenAPI builds a form document from one operation's request body in
// an OpenAPI 3 document.
func ImportOpenAPI(ctx context.Context, data []byte, operationID string) (schema.Form, error) {
	return openapiform.FromDocument(ctx, data, operationID)
}
