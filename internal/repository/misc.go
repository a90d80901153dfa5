package repository

import (
	"context"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
)

// CalendarRepository 定义了社区活动的存储和检索操作。
type CalendarRepository interface {
	FindAll(ctx context.Context) ([]domain.CalendarEvent, error)
	Save(ctx context.Context, e *domain.CalendarEvent) error
}

// DocumentRepository 定义了文件记录的存储和检索操作。
type DocumentRepository interface {
	// FindByID 不存在时返回 ErrDocumentNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Document, error)
	FindAll(ctx context.Context) ([]domain.Document, error)
	Save(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id uint) error
}

// SecurityRepository 定义了访客登记与安全事件的存储操作。
type SecurityRepository interface {
	FindAllVisitors(ctx context.Context) ([]domain.SecurityVisitor, error)
	SaveVisitor(ctx context.Context, v *domain.SecurityVisitor) error
	FindAllIncidents(ctx context.Context) ([]domain.SecurityIncident, error)
	SaveIncident(ctx context.Context, i *domain.SecurityIncident) error
}

// VotingRepository 定义了投票相关的存储操作。
type VotingRepository interface {
	// FindPollByID 不存在时返回 ErrPollNotFound。
	FindPollByID(ctx context.Context, id uint) (*domain.VotingPoll, error)
	FindAllPolls(ctx context.Context) ([]domain.VotingPoll, error)
	SavePoll(ctx context.Context, p *domain.VotingPoll) error

	FindOptionsByPoll(ctx context.Context, pollID uint) ([]domain.VotingOption, error)
	SaveOption(ctx context.Context, o *domain.VotingOption) error

	// CountVotesByPoll / CountVotesByOption 用于结果统计。
	CountVotesByPoll(ctx context.Context, pollID uint) (int64, error)
	CountVotesByOption(ctx context.Context, optionID uint) (int64, error)
	FindAllVotes(ctx context.Context) ([]domain.VotingResult, error)

	// SaveVote 记录一票；同一用户对同一投票重复投票时返回 ErrDuplicateVote。
	SaveVote(ctx context.Context, v *domain.VotingResult) error
}
