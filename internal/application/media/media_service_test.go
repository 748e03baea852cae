package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mediaapp "github.com/storefront/backend/internal/application/media"
	"github.com/storefront/backend/internal/domain/media"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

// memoryObjectStorage keeps stored objects in a map for assertions.
type memoryObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemoryObjectStorage() *memoryObjectStorage {
	return &memoryObjectStorage{objects: make(map[string][]byte)}
}

func (s *memoryObjectStorage) PutObject(_ context.Context, key, _ string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryObjectStorage) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func setupMediaTest(t *testing.T) (*mediaapp.MediaService, *memoryObjectStorage, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&media.Media{}))

	storage := newMemoryObjectStorage()
	service := mediaapp.NewMediaService(
		persistence.NewGormMediaRepository(db),
		storage,
		mediaapp.NewImageProcessor(1200, 85),
		"https://cdn.example.com/media/",
		zap.NewNop(),
	)
	return service, storage, db
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the binary and records metadata", func(t *testing.T) {
		service, storage, _ := setupMediaTest(t)
		uploader := uuid.New()

		response, err := service.Upload(ctx, mediaapp.UploadRequest{
			Data:         pngBytes(t, 64, 48),
			OriginalName: "product-shot.png",
			CreatedBy:    &uploader,
		})
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", response.MimeType)
		assert.Equal(t, "https://cdn.example.com/media/"+response.FileName, response.FileURL)
		assert.Equal(t, "product-shot.png", response.OriginalName)
		require.NotNil(t, response.Width)
		assert.Equal(t, 64, *response.Width)
		require.NotNil(t, response.CreatedBy)
		assert.Equal(t, uploader, *response.CreatedBy)
		assert.Equal(t, 1, storage.len())

		found, err := service.GetByID(ctx, response.ID)
		require.NoError(t, err)
		assert.Equal(t, response.FileName, found.FileName)
	})

	t.Run("rejects an empty upload", func(t *testing.T) {
		service, storage, _ := setupMediaTest(t)

		_, err := service.Upload(ctx, mediaapp.UploadRequest{})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
		assert.Equal(t, 0, storage.len())
	})

	t.Run("rejects non-image data without storing anything", func(t *testing.T) {
		service, storage, _ := setupMediaTest(t)

		_, err := service.Upload(ctx, mediaapp.UploadRequest{Data: []byte("plain text")})
		require.Error(t, err)
		assert.Equal(t, 0, storage.len())
	})

	t.Run("surfaces storage failures", func(t *testing.T) {
		service, storage, _ := setupMediaTest(t)
		storage.putErr = errors.New("bucket unavailable")

		_, err := service.Upload(ctx, mediaapp.UploadRequest{Data: pngBytes(t, 10, 10)})
		require.Error(t, err)
		assert.Equal(t, 0, storage.len())
	})
}

func TestMediaService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record and the binary", func(t *testing.T) {
		service, storage, db := setupMediaTest(t)

		uploaded, err := service.Upload(ctx, mediaapp.UploadRequest{Data: pngBytes(t, 20, 20)})
		require.NoError(t, err)
		require.Equal(t, 1, storage.len())

		require.NoError(t, service.Delete(ctx, uploaded.ID))

		assert.Equal(t, 0, storage.len())
		var count int64
		require.NoError(t, db.Model(&media.Media{}).Where("id = ?", uploaded.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns not found for an unknown record", func(t *testing.T) {
		service, _, _ := setupMediaTest(t)
		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestMediaService_List(t *testing.T) {
	service, _, _ := setupMediaTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Upload(ctx, mediaapp.UploadRequest{Data: pngBytes(t, 10+i, 10)})
		require.NoError(t, err)
	}

	t.Run("lists every record", func(t *testing.T) {
		responses, total, err := service.List(ctx, mediaapp.MediaListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, responses, 3)
	})

	t.Run("paginates", func(t *testing.T) {
		responses, total, err := service.List(ctx, mediaapp.MediaListFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, responses, 1)
	})
}
