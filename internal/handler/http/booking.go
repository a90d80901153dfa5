package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// BookingHandler 封装了场地预约相关的 HTTP 处理逻辑
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler 创建 BookingHandler 实例
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List 返回全部预约申请。
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, bookings)
}

// CreateBookingRequest 定义提交预约请求的结构体
type CreateBookingRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	Location      string `json:"location" binding:"required,max=255"`
	Date          string `json:"date" binding:"required"` // "2006-01-02"
	StartTime     string `json:"start_time" binding:"omitempty,max=8"`
	EndTime       string `json:"end_time" binding:"omitempty,max=8"`
	Purpose       string `json:"purpose" binding:"omitempty"`
	AttendeeCount int    `json:"attendee_count" binding:"omitempty,min=0"`
}

// Create 提交预约申请。
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateBooking: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: user_id, location and date required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), service.CreateBookingInput{
		UserID:        req.UserID,
		Location:      req.Location,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Purpose:       req.Purpose,
		AttendeeCount: req.AttendeeCount,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, booking)
}

// UpdateStatus 审批预约。
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateBookingStatus: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: status required")
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, booking)
}

// Delete 删除预约申请。
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Booking request deleted"})
}
