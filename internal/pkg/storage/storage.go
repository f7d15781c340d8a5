package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage keeps generated exports.
type FileStorage interface {
	// Save writes the content under key and returns the cleaned key
	Save(ctx context.Context, key string, content io.Reader) (string, error)

	// Open returns the content stored under key
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL is the public address of key
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}
