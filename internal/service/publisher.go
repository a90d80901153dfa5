// Package service 实现了应用程序的业务逻辑。
// 各服务遵循同一条纪律：先提交数据库变更，提交成功后才发布事件。
// 任何失败路径都不产生事件。
package service

// Publisher 是服务层对事件分发层的唯一依赖。
// target 为 dto.TargetBroadcast 或房间名；投递是尽力而为的，
// 调用方不等待、不重试，失败也不回滚已提交的数据。
type Publisher interface {
	Publish(target, event string, payload interface{})
}
