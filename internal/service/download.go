package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"storefront-demo/internal/model"
	"storefront-demo/internal/storage"
)

// Download is an open product file. The caller closes Content.
type Download struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}

func openDownload(ctx context.Context, files storage.Store, product *model.Product) (*Download, error) {
	rc, size, err := files.Open(ctx, product.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, fmt.Errorf("product file: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("open product file: %w", err)
	}

	return &Download{
		Filename: downloadFilename(product),
		Size:     size,
		Content:  rc,
	}, nil
}

// downloadFilename names the attachment after the product, keeping the
// extension of the stored file.
func downloadFilename(product *model.Product) string {
	ext := path.Ext(product.FilePath)
	return product.Name + ext
}
