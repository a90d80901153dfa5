package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// RepairHandler 封装了报修工单相关的 HTTP 处理逻辑
type RepairHandler struct {
	repairService *service.RepairService
}

// NewRepairHandler 创建 RepairHandler 实例
func NewRepairHandler(repairService *service.RepairService) *RepairHandler {
	return &RepairHandler{repairService: repairService}
}

// List 返回全部报修工单。
func (h *RepairHandler) List(c *gin.Context) {
	reqs, err := h.repairService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, reqs)
}

// CreateRepairRequest 定义提交报修请求的结构体
type CreateRepairRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Category    string `json:"category" binding:"omitempty,max=50"`
	Description string `json:"description" binding:"required"`
	ImagePaths  string `json:"image_paths" binding:"omitempty"`
}

// Create 提交报修工单。
func (h *RepairHandler) Create(c *gin.Context) {
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateRepair: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: user_id, title and description required")
		return
	}

	repair, err := h.repairService.Create(c.Request.Context(), service.CreateRepairInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		ImagePaths:  req.ImagePaths,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, repair)
}

// UpdateStatus 修改工单状态。
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateRepairStatus: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: status required")
		return
	}

	repair, err := h.repairService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, repair)
}

// Delete 删除报修工单。
func (h *RepairHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.repairService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Repair request deleted"})
}
