package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// SecurityHandler 封装了访客登记与安全事件相关的 HTTP 处理逻辑
type SecurityHandler struct {
	securityService *service.SecurityService
}

// NewSecurityHandler 创建 SecurityHandler 实例
func NewSecurityHandler(securityService *service.SecurityService) *SecurityHandler {
	return &SecurityHandler{securityService: securityService}
}

// ListVisitors 返回全部访客登记。
func (h *SecurityHandler) ListVisitors(c *gin.Context) {
	visitors, err := h.securityService.ListVisitors(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, visitors)
}

// RegisterVisitorRequest 定义访客登记请求的结构体
type RegisterVisitorRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	Name      string `json:"name" binding:"required,max=255"`
	Phone     string `json:"phone" binding:"omitempty,max=20"`
	VisitDate string `json:"visit_date" binding:"required"` // "2006-01-02"
	VisitTime string `json:"visit_time" binding:"omitempty,max=8"`
	Purpose   string `json:"purpose" binding:"omitempty"`
}

// RegisterVisitor 登记访客。
func (h *SecurityHandler) RegisterVisitor(c *gin.Context) {
	var req RegisterVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.RegisterVisitor: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: user_id, name and visit_date required")
		return
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid visit_date format, expected YYYY-MM-DD")
		return
	}

	visitor, err := h.securityService.RegisterVisitor(c.Request.Context(), service.RegisterVisitorInput{
		UserID:    req.UserID,
		Name:      req.Name,
		Phone:     req.Phone,
		VisitDate: visitDate,
		VisitTime: req.VisitTime,
		Purpose:   req.Purpose,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, visitor)
}

// ListIncidents 返回全部安全事件。
func (h *SecurityHandler) ListIncidents(c *gin.Context) {
	incidents, err := h.securityService.ListIncidents(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, incidents)
}

// ReportIncidentRequest 定义安全事件上报请求的结构体
type ReportIncidentRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	Description   string `json:"description" binding:"required"`
	EvidencePaths string `json:"evidence_paths" binding:"omitempty"`
}

// ReportIncident 上报安全事件。
func (h *SecurityHandler) ReportIncident(c *gin.Context) {
	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.ReportIncident: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: user_id and description required")
		return
	}

	incident, err := h.securityService.ReportIncident(c.Request.Context(), service.ReportIncidentInput{
		UserID:        req.UserID,
		Description:   req.Description,
		EvidencePaths: req.EvidencePaths,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, incident)
}
