package storage

import "io"

// BlobStore abstracts media storage so hosted deployments can swap the
// local filesystem for an object store.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
