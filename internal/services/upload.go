package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/mastrovia/devxtra-team/internal/config"
	"github.com/mastrovia/devxtra-team/internal/utils"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

const publicObjectMarker = "/storage/v1/object/public/"

// ObjectStore is the subset of the storage API used for uploads.
type ObjectStore interface {
	Upload(bucket, path string, body io.Reader, contentType string) error
	PublicURL(bucket, path string) string
	Remove(bucket string, paths []string) error
}

// UploadFile is a file received from a multipart form.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService struct {
	store              ObjectStore
	avatarBucket       string
	projectImageBucket string
	maxBytes           int64
	now                func() time.Time
}

func NewUploadService(store ObjectStore, cfg *config.StorageConfig) *UploadService {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &UploadService{
		store:              store,
		avatarBucket:       cfg.AvatarBucket,
		projectImageBucket: cfg.ProjectImageBucket,
		maxBytes:           maxBytes,
		now:                time.Now,
	}
}

func (s *UploadService) UploadAvatar(ctx context.Context, file *UploadFile) (string, error) {
	return s.upload(ctx, s.avatarBucket, file)
}

func (s *UploadService) UploadProjectImage(ctx context.Context, file *UploadFile) (string, error) {
	return s.upload(ctx, s.projectImageBucket, file)
}

func (s *UploadService) DeleteAvatar(ctx context.Context, url string) error {
	return s.delete(ctx, s.avatarBucket, url)
}

func (s *UploadService) DeleteProjectImage(ctx context.Context, url string) error {
	return s.delete(ctx, s.projectImageBucket, url)
}

// validate runs before anything is written to storage.
func (s *UploadService) validate(file *UploadFile) error {
	if file == nil || file.Body == nil {
		return invalidf("No file provided")
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return invalidf("File must be an image")
	}
	if file.Size > s.maxBytes {
		return invalidf("File size must be less than %dMB", s.maxBytes/(1024*1024))
	}
	return nil
}

func (s *UploadService) upload(ctx context.Context, bucket string, file *UploadFile) (string, error) {
	if err := s.validate(file); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}

	objectPath := s.objectPath(bucket, file.Name)
	if err := s.store.Upload(bucket, objectPath, file.Body, file.ContentType); err != nil {
		return "", err
	}

	url := s.store.PublicURL(bucket, objectPath)
	logger.Info().Str("bucket", bucket).Str("path", objectPath).Msg("file uploaded")
	return url, nil
}

// objectPath builds "<bucket>/<random>-<unix ms>.<ext>".
func (s *UploadService) objectPath(bucket, name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		ext = name
	}
	return fmt.Sprintf("%s/%s-%d.%s", bucket, utils.RandomToken(11), s.now().UnixMilli(), ext)
}

func (s *UploadService) delete(ctx context.Context, bucket, url string) error {
	objectPath, ok := ObjectPathFromURL(url, bucket)
	if !ok {
		return invalidf("Invalid URL")
	}
	if s.store == nil {
		return ErrStorageUnavailable
	}
	return s.store.Remove(bucket, []string{objectPath})
}

// RemoveURLs deletes every URL that points into bucket. It backs the
// storage cleanup task.
func (s *UploadService) RemoveURLs(ctx context.Context, bucket string, urls []string) error {
	var paths []string
	for _, u := range urls {
		if p, ok := ObjectPathFromURL(u, bucket); ok {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	if s.store == nil {
		return ErrStorageUnavailable
	}
	return s.store.Remove(bucket, paths)
}

// ObjectPathFromURL extracts the object path from a public URL of bucket.
func ObjectPathFromURL(url, bucket string) (string, bool) {
	marker := publicObjectMarker + bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	p := url[idx+len(marker):]
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "", false
	}
	return p, true
}

// IsStorageURL reports whether url is a public URL of an object in bucket.
func IsStorageURL(url, bucket string) bool {
	_, ok := ObjectPathFromURL(url, bucket)
	return ok
}

// HandleCleanupTask is the storage:cleanup task handler.
func (s *UploadService) HandleCleanupTask(ctx context.Context, payload []byte) error {
	var task StorageCleanupTask
	if err := json.Unmarshal(payload, &task); err != nil {
		return err
	}
	if err := s.RemoveURLs(ctx, task.Bucket, task.URLs); err != nil {
		return err
	}
	logger.Info().Str("bucket", task.Bucket).Int("count", len(task.URLs)).Msg("storage objects removed")
	return nil
}
