package object

import (
	"context"
	"io"
)

// ObjectStore persists original resume files and hands back the storage key
// recorded on the resume row.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
