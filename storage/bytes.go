package storage

import (
	"bytes"
	"context"
	"io"
)

// ByteClient wraps a streaming Storage with []byte convenience methods.
type ByteClient struct {
	storage Storage
}

// NewByteClient wraps s.
func NewByteClient(s Storage) *ByteClient {
	return &ByteClient{storage: s}
}

// Storage returns the wrapped backend.
func (c *ByteClient) Storage() Storage { return c.storage }

// Put stores data at path.
func (c *ByteClient) Put(ctx context.Context, path string, data []byte) error {
	return c.storage.Upload(ctx, path, bytes.NewReader(data))
}

// Get reads the whole object at path.
func (c *ByteClient) Get(ctx context.Context, path string) ([]byte, error) {
	rc, err := c.storage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only handle
	return io.ReadAll(rc)
}
