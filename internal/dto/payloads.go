package dto

// AnnouncementPayload 是 new_announcement / announcement_updated 的事件数据。
type AnnouncementPayload struct {
	AnnouncementID uint   `json:"announcement_id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	PublishedDate  string `json:"published_date"` // RFC3339
	AuthorID       uint   `json:"author_id"`
	AuthorName     string `json:"author_name"` // 解析失败时为 "Unknown Author"
	Tag            string `json:"tag"`
	TagColor       string `json:"tag_color"`
	TagBg          string `json:"tag_bg"`
}

// AnnouncementDeletedPayload 是 announcement_deleted 的事件数据。
type AnnouncementDeletedPayload struct {
	AnnouncementID uint `json:"announcement_id"`
}

// RepairRequestPayload 是 new_repair_request 的事件数据 (发往 admins)。
type RepairRequestPayload struct {
	RequestID     uint   `json:"request_id"`
	UserID        uint   `json:"user_id"`
	UserName      string `json:"user_name"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	SubmittedDate string `json:"submitted_date"`
}

// RepairStatusPayload 是 repair_status_updated 的事件数据 (发往 user_{id})。
type RepairStatusPayload struct {
	RequestID uint   `json:"request_id"`
	UserID    uint   `json:"user_id"`
	Status    string `json:"status"`
	Title     string `json:"title"`
}

// BookingRequestPayload 是 new_booking_request 的事件数据 (发往 admins)。
type BookingRequestPayload struct {
	BookingID uint   `json:"booking_id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	Location  string `json:"location"`
	Status    string `json:"status"`
}

// BookingStatusPayload 是 booking_status_updated 的事件数据 (发往 user_{id})。
type BookingStatusPayload struct {
	BookingID uint   `json:"booking_id"`
	UserID    uint   `json:"user_id"`
	Status    string `json:"status"`
	Location  string `json:"location"`
}

// BillPayload 是 new_bill_created / bill_updated / bill_due_reminder 的事件数据。
type BillPayload struct {
	BillID      uint   `json:"bill_id"`
	ItemName    string `json:"item_name"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
	Status      string `json:"status"`
}

// BillDeletedPayload 是 bill_deleted 的事件数据。
type BillDeletedPayload struct {
	BillID   uint   `json:"bill_id"`
	ItemName string `json:"item_name"`
}

// PaymentReceiptPayload 是 new_payment_receipt 的事件数据 (发往 admins)。
type PaymentReceiptPayload struct {
	PaymentID uint   `json:"payment_id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	BillID    *uint  `json:"bill_id"`
}

// PaymentApprovedPayload 是 payment_approved 的事件数据。
type PaymentApprovedPayload struct {
	PaymentID uint   `json:"payment_id"`
	UserID    uint   `json:"user_id"`
	BillID    *uint  `json:"bill_id"`
	Status    string `json:"status"`
}

// CalendarEventPayload 是 new_calendar_event 的事件数据。
type CalendarEventPayload struct {
	EventID   uint   `json:"event_id"`
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	Location  string `json:"location"`
}

// VisitorPayload 是 new_visitor_registered 的事件数据 (发往 admins)。
type VisitorPayload struct {
	VisitorID uint   `json:"visitor_id"`
	Name      string `json:"name"`
	VisitDate string `json:"visit_date"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
}

// IncidentPayload 是 new_incident_reported 的事件数据 (发往 admins)。
type IncidentPayload struct {
	IncidentID   uint   `json:"incident_id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	Description  string `json:"description"`
	ReportedDate string `json:"reported_date"`
}

// ChatMessagePayload 是 receive_message 的事件数据，也用于历史消息查询。
type ChatMessagePayload struct {
	MessageID    uint   `json:"message_id"`
	SenderID     uint   `json:"sender_id"`
	SenderName   string `json:"sender_name"`
	SenderAvatar string `json:"sender_avatar"`
	Content      string `json:"content"`
	Timestamp    string `json:"timestamp"`
	RoomName     string `json:"room_name"`
}

// StatusPayload 是 status 确认消息的数据 (仅发给发起连接)。
type StatusPayload struct {
	Msg string `json:"msg"`
}

// ErrorPayload 是 error 消息的数据 (仅发给发起连接)。
type ErrorPayload struct {
	Message string `json:"message"`
}
