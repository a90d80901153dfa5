package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// CalendarHandler 封装了活动日历相关的 HTTP 处理逻辑
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler 实例
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// List 返回全部活动。
func (h *CalendarHandler) List(c *gin.Context) {
	events, err := h.calendarService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, events)
}

// CreateCalendarEventRequest 定义新建活动请求的结构体
type CreateCalendarEventRequest struct {
	EventName   string `json:"event_name" binding:"required,max=255"`
	EventDate   string `json:"event_date" binding:"required"` // RFC3339 或 "2006-01-02"
	Location    string `json:"location" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty"`
}

// Create 新建社区活动。
func (h *CalendarHandler) Create(c *gin.Context) {
	var req CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateCalendarEvent: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: event_name and event_date required")
		return
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		eventDate, err = time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid event_date format")
			return
		}
	}

	event, err := h.calendarService.Create(c.Request.Context(), service.CreateCalendarEventInput{
		EventName:   req.EventName,
		EventDate:   eventDate,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, event)
}
