package domain

import "time"

// Bill 表示管理处开出的一张账单。
// RecipientID 为 "all" 时表示面向全体住户，否则为具体用户 ID 的字符串形式。
type Bill struct {
	ID             uint      `gorm:"primaryKey"`                      // 账单唯一标识符 (主键)
	ItemName       string    `gorm:"type:varchar(255);not null"`      // 收费项目名称
	Amount         string    `gorm:"type:decimal(10,2);not null"`     // 金额，保留两位小数 (以字符串承载避免浮点误差)
	DueDate        time.Time `gorm:"type:date;index"`                 // 缴费截止日期
	RecipientID    string    `gorm:"type:varchar(50);not null"`       // "all" 或用户 ID
	IssuedByUserID uint      `gorm:"index"`                           // 开单人用户 ID (外键关联 User.ID)
	Status         string    `gorm:"type:varchar(50);default:unpaid"` // 状态: unpaid / paid / pending_verification
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Payment 表示住户针对账单提交的一笔付款记录。
type Payment struct {
	ID            uint      `gorm:"primaryKey"`                  // 付款记录唯一标识符 (主键)
	UserID        uint      `gorm:"index;not null"`              // 付款人用户 ID (外键关联 User.ID)
	BillID        *uint     `gorm:"index"`                       // 关联的账单 ID，可为空
	Amount        string    `gorm:"type:decimal(10,2);not null"` // 金额
	PaymentMethod string    `gorm:"type:varchar(50)"`            // 付款方式
	PaymentDate   time.Time `gorm:"index;not null"`              // 付款时间
	Status        string    `gorm:"type:varchar(50)"`            // 状态: pending / paid / rejected
	SlipPath      string    `gorm:"type:varchar(255)"`           // 付款凭证路径
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// 付款/账单状态常量。
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRejected = "rejected"
	BillStatusUnpaid      = "unpaid"
)
