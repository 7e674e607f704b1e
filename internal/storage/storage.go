// Package storage uploads property images to an S3-compatible object store.
// Uploads are streamed from the request; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

// PutOptions describe an upload. Size is the exact byte count, or -1 when unknown.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// Object is a stored image.
type Object struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the object store used for property images.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (Object, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// URL returns the public address clients use to fetch the object.
	URL(key string) string
}

// ImageKey builds the object key for an image of a property:
// properties/<property id>/<name><lowercased extension of filename>.
func ImageKey(propertyID, name, filename string) string {
	return path.Join("properties", propertyID, name+strings.ToLower(path.Ext(filename)))
}
