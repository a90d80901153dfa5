package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrRepairNotFound       = errors.New("repair request not found")
	ErrBookingNotFound      = errors.New("booking request not found")
	ErrBillNotFound         = errors.New("bill not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrPollNotFound         = errors.New("poll not found")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAccountPending       = errors.New("account is pending approval")
	ErrAccountSuspended     = errors.New("account is suspended")
	ErrRegistrationFailed   = errors.New("registration failed: username already exists")

	ErrInvalidInput   = errors.New("invalid input data")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrInvalidMessage = errors.New("missing sender_id or content")
	ErrDuplicateVote  = errors.New("user has already voted in this poll")

	ErrInternalServer = errors.New("internal server error")
)
