// Package gallery stores event photos: bytes in object storage, metadata
// in MongoDB.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/store"
)

const DefaultMaxBytes = 10 << 20

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNotImage      = errors.New("only image uploads are accepted")
	ErrTooLarge      = errors.New("image is too large")
	ErrNotFound      = errors.New("image not found")
)

// MetaStore holds image metadata. MongoStore implements it.
type MetaStore interface {
	InsertImage(ctx context.Context, img *models.GalleryImage) error
	ListImages(ctx context.Context) ([]models.GalleryImage, error)
	GetImage(ctx context.Context, id string) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) (bool, error)
}

// BlobStore holds image bytes. MinioStore implements it.
type BlobStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, key string) error
}

type Service struct {
	meta     MetaStore
	blobs    BlobStore
	maxBytes int64
	log      *slog.Logger
}

func NewService(meta MetaStore, blobs BlobStore, maxBytes int64, log *slog.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{meta: meta, blobs: blobs, maxBytes: maxBytes, log: log}
}

// ImageURL is where an image's bytes are served.
func ImageURL(id string) string {
	return "/api/gallery/" + id + "/image"
}

// Add uploads the image bytes first, then records metadata. If the
// metadata write fails the uploaded object is removed.
func (s *Service) Add(ctx context.Context, title, contentType string, r io.Reader, size int64) (*models.GalleryImage, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}
	if size <= 0 || size > s.maxBytes {
		return nil, ErrTooLarge
	}

	id := uuid.New().String()
	img := &models.GalleryImage{
		ID:          id,
		Title:       title,
		ObjectKey:   "gallery/" + id,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.blobs.PutObject(ctx, img.ObjectKey, r, size, contentType); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := s.meta.InsertImage(ctx, img); err != nil {
		if rmErr := s.blobs.RemoveObject(ctx, img.ObjectKey); rmErr != nil {
			s.log.Error("orphaned gallery object", "key", img.ObjectKey, "err", rmErr)
		}
		return nil, fmt.Errorf("save image metadata: %w", err)
	}
	img.URL = ImageURL(id)
	s.log.Info("gallery image added", "id", id, "size", size)
	return img, nil
}

// List returns every image, newest first, with URLs filled in.
func (s *Service) List(ctx context.Context) ([]models.GalleryImage, error) {
	imgs, err := s.meta.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	for i := range imgs {
		imgs[i].URL = ImageURL(imgs[i].ID)
	}
	return imgs, nil
}

// Open returns the image metadata and a reader over its bytes. The
// caller closes the reader.
func (s *Service) Open(ctx context.Context, id string) (*models.GalleryImage, io.ReadCloser, error) {
	img, err := s.meta.GetImage(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get image: %w", err)
	}
	rc, err := s.blobs.GetObject(ctx, img.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open image: %w", err)
	}
	img.URL = ImageURL(img.ID)
	return img, rc, nil
}

// Delete removes metadata and bytes. It reports false when id is unknown.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	img, err := s.meta.GetImage(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get image: %w", err)
	}
	ok, err := s.meta.DeleteImage(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete image metadata: %w", err)
	}
	if err := s.blobs.RemoveObject(ctx, img.ObjectKey); err != nil {
		s.log.Error("gallery object not removed", "key", img.ObjectKey, "err", err)
	}
	return ok, nil
}
