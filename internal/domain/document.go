package domain

import "time"

// Document 表示管理处上传的一份公开文件。
// 文件内容本身不由本服务存储，只记录路径。
type Document struct {
	ID               uint      `gorm:"primaryKey"`                 // 文件记录唯一标识符 (主键)
	DocumentName     string    `gorm:"type:varchar(255);not null"` // 文件名
	FilePath         string    `gorm:"type:varchar(255);not null"` // 文件路径
	UploadedByUserID uint      `gorm:"index"`                      // 上传人用户 ID (外键关联 User.ID)
	UploadDate       time.Time `gorm:"index;not null"`             // 上传时间
	Category         string    `gorm:"type:varchar(50)"`           // 文件类别
}
