// Package moderation exposes the moderation pipeline over HTTP.
package moderation

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/modgate/internal/application/moderation/usecases"
	"github.com/orris-inc/modgate/internal/interfaces/http/middleware"
	"github.com/orris-inc/modgate/internal/shared/errors"
	"github.com/orris-inc/modgate/internal/shared/logger"
	"github.com/orris-inc/modgate/internal/shared/utils"
)

const (
	formFieldFile = "file"

	// multipartOverhead allows for boundaries and part headers around the file.
	multipartOverhead = 1 << 20

	// A JSON string spends at most 12 bytes on one rune (an escaped surrogate pair).
	maxJSONBytesPerRune = 12
	// jsonOverhead allows for the envelope keys and content_type.
	jsonOverhead = 4 << 10
)

type Handler struct {
	moderateTextUC   usecases.ModerateTextExecutor
	moderateImageUC  usecases.ModerateImageExecutor
	listCategoriesUC usecases.ListCategoriesExecutor
	maxTextBodySize  int64
	maxUploadSize    int64
	logger           logger.Interface
}

func NewHandler(
	moderateTextUC usecases.ModerateTextExecutor,
	moderateImageUC usecases.ModerateImageExecutor,
	listCategoriesUC usecases.ListCategoriesExecutor,
	maxTextLength int,
	maxUploadSize int64,
	logger logger.Interface,
) *Handler {
	return &Handler{
		moderateTextUC:   moderateTextUC,
		moderateImageUC:  moderateImageUC,
		listCategoriesUC: listCategoriesUC,
		maxTextBodySize:  int64(maxTextLength)*maxJSONBytesPerRune + jsonOverhead,
		maxUploadSize:    maxUploadSize,
		logger:           logger,
	}
}

// ModerateText moderates a piece of text
// @Summary Moderate text
// @Description Score text against every text category and return an approve/reject verdict
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body ModerateTextRequest true "Text to moderate"
// @Success 200 {object} utils.APIResponse{data=VerdictResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /api/v1/moderate/text [post]
func (h *Handler) ModerateText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxTextBodySize)

	var req ModerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			utils.ErrorResponseWithError(c, errors.NewValidationError(
				fmt.Sprintf("Request body exceeds maximum allowed size (%d bytes)", h.maxTextBodySize)))
			return
		}
		h.logger.Warnw("invalid request body for moderate text", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.moderateTextUC.Execute(c.Request.Context(), req.ToCommand(middleware.GetClientID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessEnvelope(result.Verdict, result.Timestamp))
}

// ModerateImage moderates an uploaded image
// @Summary Moderate image
// @Description Upload an image and return an approve/reject verdict over the image categories
// @Tags Moderation
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (jpeg, png, gif or webp)"
// @Success 200 {object} utils.APIResponse{data=VerdictResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /api/v1/moderate/image [post]
func (h *Handler) ModerateImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)

	header, err := c.FormFile(formFieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			utils.ErrorResponseWithError(c, errors.NewValidationError(
				fmt.Sprintf("File exceeds maximum allowed size (%d bytes)", h.maxUploadSize)))
			return
		}
		h.logger.Warnw("missing upload for moderate image", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("File is required", err.Error()))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "filename", header.Filename, "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the validator to reject it.
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "filename", header.Filename, "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("Failed to read uploaded file"))
		return
	}

	result, err := h.moderateImageUC.Execute(c.Request.Context(), usecases.ModerateImageCommand{
		ClientID:  middleware.GetClientID(c),
		Data:      data,
		MediaType: header.Header.Get("Content-Type"),
		Filename:  header.Filename,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessEnvelope(result.Verdict, result.Timestamp))
}

// ListCategories lists the moderated categories and their thresholds
// @Summary List moderation categories
// @Tags Moderation
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.CategoriesDTO}
// @Failure 429 {object} utils.APIResponse
// @Router /api/v1/moderation/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
