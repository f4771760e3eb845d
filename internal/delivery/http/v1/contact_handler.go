package v1

import (
	"errors"
	"net/http"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets a client mark retries of the same submission.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Stores a contact form message and emails an acknowledgment to the sender.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                    false  "Client token that marks retries of one submission"
// @Param        contact          body      domain.ContactSubmission  true   "Contact Form Data"
// @Success      200              {object}  domain.ContactResult
// @Failure      409              {object}  response.ErrorResponse
// @Failure      422              {object}  response.ErrorResponse
// @Failure      500              {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Unprocessable([]string{"Body: expected a JSON object with name, email, subject and message"}, err))
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		c.Error(apperror.Unprocessable([]string{"Idempotency-Key: must be at most 128 characters"}, nil))
		return
	}

	result, err := h.contactUC.Submit(c.Request.Context(), &req, key)
	if err != nil {
		c.Error(mapContactError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func mapContactError(err error) *apperror.AppError {
	var (
		validationErr *domain.ValidationError
		configErr     *domain.ConfigError
		storeErr      *domain.StoreError
	)
	switch {
	case errors.As(err, &validationErr):
		return apperror.Unprocessable(validationErr.Fields, err)
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return apperror.Conflict("Duplicate submission")
	case errors.As(err, &configErr):
		return apperror.New(http.StatusInternalServerError, "Configuration error: "+err.Error(), err)
	case errors.As(err, &storeErr):
		return apperror.New(http.StatusInternalServerError, "Failed to save your message: "+storeErr.Error(), err)
	default:
		return apperror.Internal(err)
	}
}
