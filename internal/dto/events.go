// Package dto 定义了 WebSocket 入站消息和出站事件的数据结构。
// 每种出站事件只有一个确定的 payload 结构，字段不随调用点变化。
package dto

import "fmt"

// 投递目标。除 TargetBroadcast 外，目标即房间名。
const (
	// TargetBroadcast 表示投递给所有在线连接。
	TargetBroadcast = "broadcast"
	// RoomAdmins 是管理员通知房间的固定名称。
	// 注意：加入该房间由客户端自行声明，服务端不校验角色（沿袭原始设计，见 DESIGN.md）。
	RoomAdmins = "admins"
)

// UserRoom 返回某用户个人通知房间的确定性名称。
// 任何进程只要知道 userID 就能定位该房间，不依赖共享状态。
func UserRoom(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// 出站事件名。每个事件在注明的目标上恰好发布一次。
const (
	EventNewAnnouncement     = "new_announcement"     // broadcast
	EventAnnouncementUpdated = "announcement_updated" // broadcast
	EventAnnouncementDeleted = "announcement_deleted" // broadcast
	EventNewRepairRequest    = "new_repair_request"   // admins
	EventRepairStatusUpdated = "repair_status_updated" // user_{id}
	EventNewBookingRequest   = "new_booking_request"  // admins
	EventBookingStatusUpdated = "booking_status_updated" // user_{id}
	EventNewBillCreated      = "new_bill_created"  // broadcast
	EventBillUpdated         = "bill_updated"      // broadcast
	EventBillDeleted         = "bill_deleted"      // broadcast
	EventBillDueReminder     = "bill_due_reminder" // broadcast (定时任务)
	EventNewPaymentReceipt   = "new_payment_receipt" // admins
	EventPaymentApproved     = "payment_approved"    // broadcast
	EventNewCalendarEvent    = "new_calendar_event"  // broadcast
	EventNewVisitorRegistered = "new_visitor_registered" // admins
	EventNewIncidentReported = "new_incident_reported"   // admins
	EventReceiveMessage      = "receive_message" // 指定聊天房间
	EventStatus              = "status"          // 仅发起连接
	EventError               = "error"           // 仅发起连接
)

// Envelope 是所有出站 WebSocket 消息的统一外层结构。
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// 显示名无法解析时使用的占位文本。
const (
	UnknownUser   = "Unknown User"
	UnknownAuthor = "Unknown Author"
)
