// Package storage keeps product files and images behind a key based interface.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotExist   = errors.New("storage: object does not exist")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store puts, opens and deletes objects by slash separated key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	// Open returns the object and its size in bytes.
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}

// NewKey returns prefix/<uuid>-<filename>. The filename is reduced to its
// base name so an uploaded name cannot pick the directory.
func NewKey(prefix, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	return strings.TrimSuffix(prefix, "/") + "/" + uuid.NewString() + "-" + name
}
