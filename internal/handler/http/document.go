package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// DocumentHandler 封装了公开文件相关的 HTTP 处理逻辑
type DocumentHandler struct {
	docService *service.DocumentService
}

// NewDocumentHandler 创建 DocumentHandler 实例
func NewDocumentHandler(docService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// List 返回全部文件记录。
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docService.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, docs)
}

// CreateDocumentRequest 定义登记文件请求的结构体
type CreateDocumentRequest struct {
	DocumentName     string `json:"document_name" binding:"required,max=255"`
	FilePath         string `json:"file_path" binding:"required,max=255"`
	UploadedByUserID uint   `json:"uploaded_by_user_id" binding:"required"`
	Category         string `json:"category" binding:"omitempty,max=50"`
}

// Create 登记一份新上传的文件。
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateDocument: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: document_name and file_path required")
		return
	}

	doc, err := h.docService.Create(c.Request.Context(), service.CreateDocumentInput{
		DocumentName:     req.DocumentName,
		FilePath:         req.FilePath,
		UploadedByUserID: req.UploadedByUserID,
		Category:         req.Category,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, doc)
}

// Delete 删除文件记录。
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.docService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Document deleted"})
}
