package domain

import "time"

// Announcement 表示一条社区公告。
type Announcement struct {
	ID            uint      `gorm:"primaryKey"`                 // 公告唯一标识符 (主键)
	Title         string    `gorm:"type:varchar(255);not null"` // 标题
	Content       string    `gorm:"type:text;not null"`         // 正文
	PublishedDate time.Time `gorm:"index;not null"`             // 发布时间 (添加索引，列表按其倒序)
	AuthorID      uint      `gorm:"index"`                      // 发布者用户 ID (外键关联 User.ID)
	Tag           string    `gorm:"type:varchar(50)"`           // 标签文本
	TagColor      string    `gorm:"type:varchar(20)"`           // 标签前景色
	TagBg         string    `gorm:"type:varchar(20)"`           // 标签背景色
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// tagStyle 是公告标签到配色的映射项。
type tagStyle struct {
	Color string
	Bg    string
}

// 预设的标签配色表，未知标签使用默认配色。
var tagStyles = map[string]tagStyle{
	"สำคัญ":     {Color: "#1976d2", Bg: "#e3f2fd"},
	"กิจกรรม":   {Color: "#2e7d32", Bg: "#e8f5e8"},
	"แจ้งเตือน": {Color: "#856404", Bg: "#fff3cd"},
}

var defaultTagStyle = tagStyle{Color: "#666", Bg: "#eee"}

// ApplyTagStyle 根据 Tag 字段填充 TagColor / TagBg。
func (a *Announcement) ApplyTagStyle() {
	style, ok := tagStyles[a.Tag]
	if !ok {
		style = defaultTagStyle
	}
	a.TagColor = style.Color
	a.TagBg = style.Bg
}
