package v1

import (
	"errors"
	"net/http"

	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/response"
	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/apperror"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/validation"

	"github.com/gin-gonic/gin"
)

// maxContactBodyBytes comfortably fits a 1000 character message.
const maxContactBodyBytes = 16 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact relay route (public, no auth required).
// Every verb reaches the route so that anything but POST gets a JSON 405.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	chain := []gin.HandlerFunc{handler.requirePost}
	if limiter != nil {
		chain = append(chain, limiter)
	}
	chain = append(chain, handler.SendEmail)

	public.Any("/sendEmail", chain...)
}

// requirePost rejects other verbs before the body is touched.
func (h *ContactHandler) requirePost(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		_ = c.Error(apperror.MethodNotAllowed())
		c.Abort()
		return
	}
	c.Next()
}

// SendEmail godoc
// @Summary      Send contact enquiry
// @Description  Validates a contact form submission and relays it to the business owner by email.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact form data"
// @Success      200      {object}  response.SendResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      405      {object}  response.ErrorResponse
// @Failure      429      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /sendEmail [post]
func (h *ContactHandler) SendEmail(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidInput(validation.FormatBindingErrors(err)))
		return
	}

	result, err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			_ = c.Error(apperror.InvalidInput(vErr.Fields))
		case errors.Is(err, domain.ErrEmailSendFailed):
			_ = c.Error(apperror.EmailSendFailed(err))
		default:
			_ = c.Error(apperror.Internal(err))
		}
		return
	}

	response.Sent(c, http.StatusOK, result.MessageID)
}
