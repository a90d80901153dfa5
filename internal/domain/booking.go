package domain

import "time"

// BookingRequest 表示住户对公共场地的一次预约申请。
type BookingRequest struct {
	ID            uint      `gorm:"primaryKey"`                       // 预约唯一标识符 (主键)
	UserID        uint      `gorm:"index;not null"`                   // 申请人用户 ID (外键关联 User.ID)
	Location      string    `gorm:"type:varchar(255);not null"`       // 场地名称
	Date          time.Time `gorm:"type:date"`                        // 使用日期
	StartTime     string    `gorm:"type:varchar(8)"`                  // 开始时间 "HH:MM:SS"
	EndTime       string    `gorm:"type:varchar(8)"`                  // 结束时间 "HH:MM:SS"
	Purpose       string    `gorm:"type:text"`                        // 用途
	AttendeeCount int       `gorm:""`                                 // 预计人数
	Status        string    `gorm:"type:varchar(50);default:pending"` // 状态: pending / approved / rejected
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}
