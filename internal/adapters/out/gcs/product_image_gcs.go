// internal/adapters/out/gcs/product_image_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	usecase "storefront/internal/application/usecase"
)

// ProductImageRepositoryGCS stores product images in a single bucket.
//
// Layout: products/{productId}.{ext}
//
// Public access: the bucket is expected to grant "allUsers: Storage
// Object Viewer" (uniform access), so uploaded objects are publicly
// readable without per-object ACL changes.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

var _ usecase.ImageUploader = (*ProductImageRepositoryGCS)(nil)

// Upload writes the image bytes and returns the object's public URL.
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("product_image_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("product_image_gcs: bucket is empty")
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectName), "/")
	if obj == "" {
		return "", errors.New("product_image_gcs: objectName is empty")
	}

	w := r.Client.Bucket(bucket).Object(obj).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return r.publicURL(bucket, obj), nil
}

// publicURL encodes the path but keeps "/" separators.
func (r *ProductImageRepositoryGCS) publicURL(bucket, objectPath string) string {
	base := strings.TrimSpace(r.PublicBaseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	parts := strings.Split(objectPath, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.Join(parts, "/"))
}
