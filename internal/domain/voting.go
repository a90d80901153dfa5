package domain

import "time"

// VotingPoll 表示一次社区投票。
type VotingPoll struct {
	ID          uint      `gorm:"primaryKey"`                 // 投票唯一标识符 (主键)
	Title       string    `gorm:"type:varchar(255);not null"` // 议题
	Description string    `gorm:"type:text"`
	StartDate   time.Time `gorm:"type:date"` // 开始日期
	EndDate     time.Time `gorm:"type:date"` // 结束日期
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// VotingOption 表示投票中的一个候选项。
type VotingOption struct {
	ID         uint   `gorm:"primaryKey"`                 // 选项唯一标识符 (主键)
	PollID     uint   `gorm:"index;not null"`             // 所属投票 ID (外键关联 VotingPoll.ID)
	OptionText string `gorm:"type:varchar(255);not null"` // 选项文本
}

// VotingResult 表示某用户在某投票中投出的一票。
// 同一用户在同一投票中只能投一次，由 (poll_id, user_id) 唯一索引保证。
type VotingResult struct {
	ID        uint      `gorm:"primaryKey"`                                   // 记录唯一标识符 (主键)
	PollID    uint      `gorm:"uniqueIndex:idx_poll_user,priority:1;not null"` // 所属投票 ID
	OptionID  uint      `gorm:"index;not null"`                               // 所选选项 ID
	UserID    uint      `gorm:"uniqueIndex:idx_poll_user,priority:2;not null"` // 投票人用户 ID
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
