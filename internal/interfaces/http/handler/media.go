package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	mediaapp "github.com/storefront/backend/internal/application/media"
)

// MediaHandler handles media upload and management endpoints
type MediaHandler struct {
	BaseHandler
	mediaService *mediaapp.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *mediaapp.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts a multipart file upload, processes the image, and
// stores it
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file upload is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	req := mediaapp.UploadRequest{
		Data:         data,
		OriginalName: fileHeader.Filename,
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	entry, err := h.mediaService.Upload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetByID returns a single media record
func (h *MediaHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid media ID format")
		return
	}

	entry, err := h.mediaService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List returns a paginated list of media records
func (h *MediaHandler) List(c *gin.Context) {
	var filter mediaapp.MediaListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}

	entries, total, err := h.mediaService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Delete removes a media record and its stored object
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid media ID format")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
