// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import (
	"time"
	"unicode"
)

// User 表示社区中的一个用户（住户或管理员）。
type User struct {
	ID           uint      `gorm:"primaryKey"`                                          // 用户唯一标识符 (主键)
	Name         string    `gorm:"type:varchar(255);not null"`                          // 显示名称
	Username     string    `gorm:"type:varchar(191);uniqueIndex:idx_username;not null"` // 登录名，唯一
	PasswordHash string    `gorm:"type:text;not null"`                                  // 存储的是哈希后的密码，不能为空
	Role         string    `gorm:"type:varchar(20);not null;default:resident"`          // 角色: admin / resident
	Phone        string    `gorm:"type:varchar(20)"`
	Address      string    `gorm:"type:text"`
	Email        string    `gorm:"type:varchar(255)"`
	Avatar       string    `gorm:"type:varchar(255)"`                // 头像，默认取名字首字符
	Status       string    `gorm:"type:varchar(50);default:pending"` // 账户状态: pending / approved / suspended
	CreatedAt    time.Time `gorm:"autoCreateTime"`                   // 记录创建时间 (GORM 自动填充)
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`                   // 记录最后更新时间 (GORM 自动填充)
}

// 账户状态常量。
const (
	UserStatusPending   = "pending"
	UserStatusApproved  = "approved"
	UserStatusSuspended = "suspended"
)

// DisplayAvatar 返回用户头像，未设置时退回到名字的首字符。
func (u *User) DisplayAvatar() string {
	if u.Avatar != "" {
		return u.Avatar
	}
	return AvatarFromName(u.Name)
}

// AvatarFromName 根据名字推导一个单字符头像 (首字符大写)，名字为空时返回 "?"。
func AvatarFromName(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return "?"
}
