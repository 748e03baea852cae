package media

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/media"
)

// UploadRequest is the input for a media upload
type UploadRequest struct {
	Data         []byte
	OriginalName string
	CreatedBy    *uuid.UUID
}

// MediaListFilter contains filter options for media queries
type MediaListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// MediaResponse represents a media record in API responses
type MediaResponse struct {
	ID           uuid.UUID  `json:"id"`
	FileName     string     `json:"file_name"`
	FileURL      string     `json:"file_url"`
	MimeType     string     `json:"mime_type"`
	FileSize     int        `json:"file_size"`
	Width        *int       `json:"width,omitempty"`
	Height       *int       `json:"height,omitempty"`
	OriginalName string     `json:"original_name,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToMediaResponse converts a media record to its response form
func ToMediaResponse(m *media.Media) MediaResponse {
	return MediaResponse{
		ID:           m.ID,
		FileName:     m.FileName,
		FileURL:      m.FileURL,
		MimeType:     m.MimeType,
		FileSize:     m.FileSize,
		Width:        m.Width,
		Height:       m.Height,
		OriginalName: m.OriginalName,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

// ToMediaResponses converts a slice of media records
func ToMediaResponses(items []media.Media) []MediaResponse {
	responses := make([]MediaResponse, len(items))
	for i := range items {
		responses[i] = ToMediaResponse(&items[i])
	}
	return responses
}
