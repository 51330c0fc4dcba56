package schemaload

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schemaload: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("schemaload: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("schemaload: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return fs.ReadFile(filesystem, name)
}
