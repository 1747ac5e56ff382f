package http

import (
	"io"
	"net/http"

	"storypad/internal/usecase"
	"storypad/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadUseCase usecase.UploadUseCase
	logger        *logger.Logger
}

func NewUploadHandler(uploadUseCase usecase.UploadUseCase, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
		logger:        logger,
	}
}

// Upload godoc
// @Summary      Upload a story image
// @Description  Accepts exactly one file. The content type is sniffed from the bytes; non-image content is rejected. Oversized images are downscaled.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Success      200  {object}  entity.UploadedAsset
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	asset, err := h.uploadUseCase.Ingest(c.Request.Context(), data)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}
