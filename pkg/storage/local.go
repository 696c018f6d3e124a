package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Local persists uploaded files on disk under a fixed directory and returns
// the public path the file is served back at.
type Local struct {
	dir        string
	publicPath string
	logger     zerolog.Logger
}

// NewLocal constructs a disk-backed storage rooted at dir. Files are exposed
// at publicPath by the static file handler.
func NewLocal(dir, publicPath string, logger zerolog.Logger) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory must not be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if publicPath == "" {
		publicPath = "/uploads"
	}

	return &Local{
		dir:        dir,
		publicPath: publicPath,
		logger:     logger.With().Str("component", "local_storage").Logger(),
	}, nil
}

// Upload writes the file to disk and returns its public path.
func (l *Local) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	name = filepath.Base(name)
	destination := filepath.Join(l.dir, name)

	out, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	l.logger.Info().Str("file", name).Msg("file stored on disk")

	return path.Join(l.publicPath, name), nil
}
