package v1

import (
	"errors"
	"net/http"

	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// User-facing messages. They never include downstream detail.
const (
	MsgContactSent         = "メッセージを送信しました"
	MsgContactIncomplete   = "全ての項目を入力してください"
	MsgServerMisconfigured = "サーバーの設定エラーです"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limiter, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relay a contact form message to the site owner's Slack channel. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest    true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.ErrorResponse
// @Failure      429      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body is treated like any other unexpected failure
		c.Error(apperror.Internal(middleware.GenericErrorMessage, err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.Error(apperror.BadRequest(MsgContactIncomplete, nil))
		case errors.Is(err, domain.ErrNotConfigured):
			c.Error(apperror.Internal(MsgServerMisconfigured, err))
		default:
			c.Error(apperror.Internal(middleware.GenericErrorMessage, err))
		}
		return
	}

	response.Success(c, http.StatusOK, MsgContactSent, nil)
}
