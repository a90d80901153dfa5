package domain

import "time"

// RepairRequest 表示住户提交的一个报修工单。
type RepairRequest struct {
	ID            uint      `gorm:"primaryKey"`                       // 工单唯一标识符 (主键)
	UserID        uint      `gorm:"index;not null"`                   // 提交人用户 ID (外键关联 User.ID)
	Title         string    `gorm:"type:varchar(255);not null"`       // 标题
	Category      string    `gorm:"type:varchar(50)"`                 // 类别，例如 "水电"、"公共设施"
	Description   string    `gorm:"type:text;not null"`               // 问题描述
	SubmittedDate time.Time `gorm:"index;not null"`                   // 提交时间
	Status        string    `gorm:"type:varchar(50);default:pending"` // 状态: pending / in_progress / done
	ImagePaths    string    `gorm:"type:text"`                        // 现场照片路径 (JSON 或逗号分隔)
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
