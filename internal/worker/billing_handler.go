package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/tasks"
)

// 未指定提前量时默认提前 3 天提醒。
const defaultReminderDays = 3

// BillDueScanHandler 处理周期性的账单临期扫描任务。
type BillDueScanHandler struct {
	billingService *service.BillingService
}

// NewBillDueScanHandler 创建 Handler 实例
func NewBillDueScanHandler(billingService *service.BillingService) *BillDueScanHandler {
	if billingService == nil {
		panic("BillingService cannot be nil for BillDueScanHandler")
	}
	return &BillDueScanHandler{billingService: billingService}
}

// ProcessTask 实现 asynq.Handler 接口。
// 扫描临期未付账单，逐张广播 bill_due_reminder。
// 单张账单的广播失败不影响本次扫描的完成。
func (h *BillDueScanHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
	})
	logCtx.Info("Processing bill due scan task...")

	var payload tasks.BillDueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.WithinDays <= 0 {
		payload.WithinDays = defaultReminderDays
	}

	deadline := time.Now().AddDate(0, 0, payload.WithinDays)
	bills, err := h.billingService.DueBillsBefore(ctx, deadline)
	if err != nil {
		logCtx.WithError(err).Error("Failed to scan due bills")
		return fmt.Errorf("failed to scan due bills: %w", err)
	}

	for i := range bills {
		h.billingService.PublishDueReminder(&bills[i])
	}

	logCtx.WithField("bill_count", len(bills)).Info("Bill due scan task completed")
	return nil
}
