package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

// BillingHandler 封装了账单与付款相关的 HTTP 处理逻辑
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler 创建 BillingHandler 实例
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// ListBills 返回全部账单。
func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.billingService.ListBills(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, bills)
}

// CreateBillRequest 定义开单请求的结构体
type CreateBillRequest struct {
	ItemName       string `json:"item_name" binding:"required,max=255"`
	Amount         string `json:"amount" binding:"required,max=20"`
	DueDate        string `json:"due_date" binding:"omitempty"` // "2006-01-02"
	RecipientID    string `json:"recipient_id" binding:"omitempty,max=50"`
	IssuedByUserID uint   `json:"issued_by_user_id" binding:"required"`
}

// CreateBill 开出新账单。
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateBill: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: item_name, amount and issued_by_user_id required")
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid due_date format, expected YYYY-MM-DD")
			return
		}
		dueDate = parsed
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), service.CreateBillInput{
		ItemName:       req.ItemName,
		Amount:         req.Amount,
		DueDate:        dueDate,
		RecipientID:    req.RecipientID,
		IssuedByUserID: req.IssuedByUserID,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, bill)
}

// UpdateBillRequest 定义改单请求的结构体
type UpdateBillRequest struct {
	ItemName string `json:"item_name" binding:"omitempty,max=255"`
	Amount   string `json:"amount" binding:"omitempty,max=20"`
	DueDate  string `json:"due_date" binding:"omitempty"`
	Status   string `json:"status" binding:"omitempty,max=50"`
}

// UpdateBill 修改账单。
func (h *BillingHandler) UpdateBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateBill: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	in := service.UpdateBillInput{
		ItemName: req.ItemName,
		Amount:   req.Amount,
		Status:   req.Status,
	}
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid due_date format, expected YYYY-MM-DD")
			return
		}
		in.DueDate = &parsed
	}

	bill, err := h.billingService.UpdateBill(c.Request.Context(), id, in)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, bill)
}

// DeleteBill 删除账单。
func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.billingService.DeleteBill(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Bill deleted"})
}

// ListPayments 返回付款记录，支持 ?user_id= 过滤。
func (h *BillingHandler) ListPayments(c *gin.Context) {
	var userID uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid user_id parameter")
			return
		}
		userID = uint(parsed)
	}

	payments, err := h.billingService.ListPayments(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, payments)
}

// SubmitPaymentRequest 定义提交付款凭证请求的结构体
type SubmitPaymentRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	BillID        *uint  `json:"bill_id" binding:"omitempty"`
	Amount        string `json:"amount" binding:"required,max=20"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=50"`
	SlipPath      string `json:"slip_path" binding:"omitempty,max=255"`
}

// SubmitPayment 提交付款凭证。
func (h *BillingHandler) SubmitPayment(c *gin.Context) {
	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.SubmitPayment: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: user_id and amount required")
		return
	}

	payment, err := h.billingService.SubmitPayment(c.Request.Context(), service.SubmitPaymentInput{
		UserID:        req.UserID,
		BillID:        req.BillID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		SlipPath:      req.SlipPath,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, payment)
}

// ReviewPaymentRequest 定义付款审核请求的结构体
type ReviewPaymentRequest struct {
	Approve bool `json:"approve"`
}

// ReviewPayment 审核付款凭证 (批准或驳回)。
func (h *BillingHandler) ReviewPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req ReviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.ReviewPayment: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: approve required")
		return
	}

	payment, err := h.billingService.ReviewPayment(c.Request.Context(), id, req.Approve)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, payment)
}
