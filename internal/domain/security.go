package domain

import "time"

// SecurityVisitor 表示住户登记的一位访客。
type SecurityVisitor struct {
	ID        uint      `gorm:"primaryKey"`                 // 访客记录唯一标识符 (主键)
	UserID    uint      `gorm:"index;not null"`             // 登记人用户 ID (外键关联 User.ID)
	Name      string    `gorm:"type:varchar(255);not null"` // 访客姓名
	Phone     string    `gorm:"type:varchar(20)"`
	VisitDate time.Time `gorm:"type:date"`       // 来访日期
	VisitTime string    `gorm:"type:varchar(8)"` // 来访时间 "HH:MM:SS"
	Purpose   string    `gorm:"type:text"`       // 来访事由
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// SecurityIncident 表示住户上报的一起安全事件。
type SecurityIncident struct {
	ID            uint      `gorm:"primaryKey"`         // 事件唯一标识符 (主键)
	UserID        uint      `gorm:"index;not null"`     // 上报人用户 ID (外键关联 User.ID)
	Description   string    `gorm:"type:text;not null"` // 事件描述
	ReportedDate  time.Time `gorm:"index;not null"`     // 上报时间
	EvidencePaths string    `gorm:"type:text"`          // 证据文件路径 (JSON 或逗号分隔)
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}
