package media

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Media represents a stored image asset. The binary lives in object
// storage; this record carries the metadata and public URL.
type Media struct {
	shared.BaseEntity
	FileName     string     `gorm:"type:varchar(512);not null"`
	FileURL      string     `gorm:"type:varchar(1024);not null"`
	FilePath     string     `gorm:"type:varchar(1024);not null"`
	MimeType     string     `gorm:"type:varchar(128);not null"`
	FileSize     int        `gorm:"not null"`
	Width        *int       `gorm:""`
	Height       *int       `gorm:""`
	OriginalName string     `gorm:"type:varchar(512)"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Media) TableName() string {
	return "media"
}

// NewMedia creates a media record for a stored asset
func NewMedia(fileName, fileURL, filePath, mimeType string, fileSize int) (*Media, error) {
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if fileURL == "" {
		return nil, shared.NewDomainError("INVALID_FILE_URL", "File URL cannot be empty")
	}
	if fileSize <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}

	return &Media{
		BaseEntity: shared.NewBaseEntity(),
		FileName:   fileName,
		FileURL:    fileURL,
		FilePath:   filePath,
		MimeType:   mimeType,
		FileSize:   fileSize,
	}, nil
}

// WithDimensions records the pixel size of an image asset
func (m *Media) WithDimensions(width, height int) *Media {
	m.Width = &width
	m.Height = &height
	return m
}

// WithOriginalName records the uploader's original file name
func (m *Media) WithOriginalName(name string) *Media {
	m.OriginalName = name
	return m
}

// WithCreatedBy records the uploading user
func (m *Media) WithCreatedBy(userID uuid.UUID) *Media {
	m.CreatedBy = &userID
	return m
}
