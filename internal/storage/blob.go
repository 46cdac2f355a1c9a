package storage

import (
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// BlobStore holds worksheet files: exported CSVs, local question sheets and
// the worksheet index.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
