package domain

import "time"

// CalendarEvent 表示社区日历上的一个活动。
type CalendarEvent struct {
	ID          uint      `gorm:"primaryKey"`                 // 活动唯一标识符 (主键)
	EventName   string    `gorm:"type:varchar(255);not null"` // 活动名称
	EventDate   time.Time `gorm:"index"`                      // 活动时间
	Location    string    `gorm:"type:varchar(255)"`          // 地点
	Description string    `gorm:"type:text"`                  // 说明
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
