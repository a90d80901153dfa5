package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// VotingHandler 封装了社区投票相关的 HTTP 处理逻辑
type VotingHandler struct {
	votingService *service.VotingService
}

// NewVotingHandler 创建 VotingHandler 实例
func NewVotingHandler(votingService *service.VotingService) *VotingHandler {
	return &VotingHandler{votingService: votingService}
}

// ListPolls 返回全部投票议题及选项。
func (h *VotingHandler) ListPolls(c *gin.Context) {
	polls, err := h.votingService.ListPolls(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, polls)
}

// CreatePollRequest 定义新建投票请求的结构体
type CreatePollRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"omitempty"`
	StartDate   string   `json:"start_date" binding:"omitempty"` // "2006-01-02"
	EndDate     string   `json:"end_date" binding:"omitempty"`
	Options     []string `json:"options" binding:"required,min=1"`
}

// CreatePoll 新建投票议题。
func (h *VotingHandler) CreatePoll(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreatePoll: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: title and options required")
		return
	}

	in := service.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
	}
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid start_date format, expected YYYY-MM-DD")
			return
		}
		in.StartDate = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid end_date format, expected YYYY-MM-DD")
			return
		}
		in.EndDate = parsed
	}

	poll, err := h.votingService.CreatePoll(c.Request.Context(), in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, poll)
}

// VoteRequest 定义投票请求的结构体
type VoteRequest struct {
	OptionID uint `json:"option_id" binding:"required"`
	UserID   uint `json:"user_id" binding:"required"`
}

// Vote 记录一票。重复投票返回 409。
func (h *VotingHandler) Vote(c *gin.Context) {
	pollID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Vote: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: option_id and user_id required")
		return
	}

	if err := h.votingService.Vote(c.Request.Context(), pollID, req.OptionID, req.UserID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, gin.H{"message": "Vote recorded"})
}

// Results 返回指定投票的统计结果。
func (h *VotingHandler) Results(c *gin.Context) {
	pollID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	results, err := h.votingService.Results(c.Request.Context(), pollID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, results)
}
