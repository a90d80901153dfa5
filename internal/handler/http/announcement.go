package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// AnnouncementHandler 封装了公告相关的 HTTP 处理逻辑
type AnnouncementHandler struct {
	annService *service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler 实例
func NewAnnouncementHandler(annService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annService: annService}
}

// List 返回全部公告，按发布时间倒序。
func (h *AnnouncementHandler) List(c *gin.Context) {
	anns, err := h.annService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, anns)
}

// CreateAnnouncementRequest 定义发布公告请求的结构体
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Tag      string `json:"tag" binding:"omitempty,max=50"`
	AuthorID uint   `json:"author_id" binding:"required"`
}

// Create 发布新公告。
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateAnnouncement: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: title, content and author_id required")
		return
	}

	ann, err := h.annService.Create(c.Request.Context(), service.CreateAnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		Tag:      req.Tag,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, ann)
}

// UpdateAnnouncementRequest 定义修改公告请求的结构体
type UpdateAnnouncementRequest struct {
	Title   string `json:"title" binding:"omitempty,max=255"`
	Content string `json:"content" binding:"omitempty"`
	Tag     string `json:"tag" binding:"omitempty,max=50"`
}

// Update 修改公告。
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateAnnouncement: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ann, err := h.annService.Update(c.Request.Context(), id, service.UpdateAnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
		Tag:     req.Tag,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, ann)
}

// Delete 删除公告。
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.annService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Announcement deleted"})
}
