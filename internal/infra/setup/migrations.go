package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// MigrateDB handles all database migrations using the provided GORM DB instance.
// 返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// AutoMigrate 按依赖顺序迁移所有模型；
	// 唯一索引字段均已限制为 varchar(191)，避免 MySQL 索引长度问题。
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Announcement{},
		&domain.RepairRequest{},
		&domain.BookingRequest{},
		&domain.Bill{},
		&domain.Payment{},
		&domain.CalendarEvent{},
		&domain.Document{},
		&domain.ChatMessage{},
		&domain.SecurityVisitor{},
		&domain.SecurityIncident{},
		&domain.VotingPoll{},
		&domain.VotingOption{},
		&domain.VotingResult{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
