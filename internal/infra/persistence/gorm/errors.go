// Package gormpersistence 提供 repository 接口的 GORM/MySQL 实现。
package gormpersistence

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntryError 检查错误是否为 MySQL 唯一约束冲突 (errno 1062)。
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
