package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// HandleServiceError 把服务层错误映射为 HTTP 状态码。
// 未登记的错误一律按 500 处理，不把内部细节泄露给客户端。
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountPending), errors.Is(err, service.ErrAccountSuspended):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRegistrationFailed),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidMessage):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateVote):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound),
		errors.Is(err, service.ErrRepairNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrBillNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrPollNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
