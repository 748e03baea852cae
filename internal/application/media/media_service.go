package media

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/media"
	"github.com/storefront/backend/internal/domain/shared"
)

// MediaService handles upload, listing and removal of media assets.
// Binaries live in object storage; metadata lives in the database. The
// metadata row is the source of truth: a binary without a row is
// garbage, a row without a binary is a broken asset, so uploads write
// the binary first and clean it up when the row cannot be saved.
type MediaService struct {
	repo      media.MediaRepository
	storage   ObjectStorage
	processor *ImageProcessor
	publicURL string
	logger    *zap.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(
	repo media.MediaRepository,
	storage ObjectStorage,
	processor *ImageProcessor,
	publicURL string,
	logger *zap.Logger,
) *MediaService {
	return &MediaService{
		repo:      repo,
		storage:   storage,
		processor: processor,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Upload normalizes an uploaded image, stores the binary and records
// its metadata
func (s *MediaService) Upload(ctx context.Context, req UploadRequest) (*MediaResponse, error) {
	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Uploaded file is empty")
	}

	processed, err := s.processor.Process(req.Data)
	if err != nil {
		return nil, err
	}

	fileName := newAssetName()
	if err := s.storage.PutObject(ctx, fileName, processed.MimeType, processed.Data); err != nil {
		return nil, err
	}

	originalName := req.OriginalName
	if originalName == "" {
		originalName = fileName
	}

	entry, err := media.NewMedia(
		fileName,
		s.publicURL+"/"+fileName,
		fileName,
		processed.MimeType,
		len(processed.Data),
	)
	if err != nil {
		return nil, err
	}
	entry.WithDimensions(processed.Width, processed.Height).
		WithOriginalName(originalName)
	if req.CreatedBy != nil {
		entry.WithCreatedBy(*req.CreatedBy)
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		if cleanupErr := s.storage.DeleteObject(ctx, fileName); cleanupErr != nil {
			s.logger.Warn("Failed to clean up stored object after save failure",
				zap.String("file_name", fileName),
				zap.Error(cleanupErr))
		}
		return nil, err
	}

	s.logger.Info("Media uploaded",
		zap.String("file_name", fileName),
		zap.Int("file_size", entry.FileSize))

	response := ToMediaResponse(entry)
	return &response, nil
}

// GetByID retrieves a media record
func (s *MediaService) GetByID(ctx context.Context, id uuid.UUID) (*MediaResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMediaResponse(entry)
	return &response, nil
}

// List retrieves media records with filtering and pagination, newest first
func (s *MediaService) List(ctx context.Context, filter MediaListFilter) ([]MediaResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	items, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMediaResponses(items), total, nil
}

// Delete removes a media record and its stored binary. The binary
// delete is best-effort: once the row is gone the asset is
// unreferenced, and a leaked object is preferable to a broken record.
func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, entry.FilePath); err != nil {
		s.logger.Warn("Failed to delete stored object",
			zap.String("file_name", entry.FileName),
			zap.Error(err))
	}

	s.logger.Info("Media deleted", zap.String("file_name", entry.FileName))
	return nil
}

// newAssetName returns a random collision-free object name
func newAssetName() string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + ".jpg"
}
