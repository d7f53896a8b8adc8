package media

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/xyz-asif/safetrip/internal/pkg/cloudinary"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// Store is the object store contract: upload bytes under a path, then resolve the handle to a URL.
type Store interface {
	Upload(ctx context.Context, path string, file io.Reader) (string, error)
	DownloadURL(ctx context.Context, handle string) (string, error)
	Delete(ctx context.Context, handle string) error
}

// Upload is a stored object and its public URL.
type Upload struct {
	Handle string `json:"handle" example:"safetrip/incidents/abc123"`
	URL    string `json:"url" example:"https://res.cloudinary.com/demo/image/upload/safetrip/incidents/abc123"`
}

var errNoStore = errors.New("object store not configured")

// CloudinaryStore adapts the Cloudinary service to Store.
type CloudinaryStore struct {
	svc *cloudinary.Service
}

func NewCloudinaryStore(svc *cloudinary.Service) *CloudinaryStore {
	return &CloudinaryStore{svc: svc}
}

func (s *CloudinaryStore) Upload(ctx context.Context, path string, file io.Reader) (string, error) {
	result, err := s.svc.UploadImage(ctx, path, file)
	if err != nil {
		return "", apperrors.Unavailable("upload", err)
	}
	return result.PublicID, nil
}

func (s *CloudinaryStore) DownloadURL(_ context.Context, handle string) (string, error) {
	url, err := s.svc.URL(handle)
	if err != nil {
		return "", apperrors.Unavailable("download url", err)
	}
	return url, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, handle string) error {
	if err := s.svc.Delete(ctx, handle); err != nil {
		return apperrors.Unavailable("delete", err)
	}
	return nil
}

// UploadImage validates an uploaded image, stores it under path and resolves its URL.
func UploadImage(ctx context.Context, store Store, path string, header *multipart.FileHeader) (*Upload, error) {
	if store == nil {
		return nil, apperrors.Unavailable("upload", errNoStore)
	}
	if header == nil {
		return nil, apperrors.Invalid("file", "File is required")
	}
	if err := cloudinary.ValidateImageFile(header); err != nil {
		return nil, apperrors.Invalid("file", err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Invalid("file", "Could not read uploaded file")
	}
	defer file.Close()

	handle, err := store.Upload(ctx, path, file)
	if err != nil {
		return nil, err
	}
	url, err := store.DownloadURL(ctx, handle)
	if err != nil {
		return nil, err
	}
	return &Upload{Handle: handle, URL: url}, nil
}
