// Package tasks 定义了后台任务的类型常量与 payload 结构。
package tasks

import "encoding/json"

// 定义任务类型常量
const (
	// TypeBillDueScan 是周期性的账单临期扫描任务，
	// 扫描出的每张临期账单都会向所有在线连接广播一条提醒。
	TypeBillDueScan = "billing:due_scan"
)

// BillDueScanPayload 定义了账单临期扫描任务的数据结构。
type BillDueScanPayload struct {
	// WithinDays 表示提前多少天开始提醒。
	WithinDays int `json:"within_days"`
}

// NewBillDueScanPayload 序列化扫描任务的 payload。
func NewBillDueScanPayload(withinDays int) ([]byte, error) {
	return json.Marshal(BillDueScanPayload{WithinDays: withinDays})
}
