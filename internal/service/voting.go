package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// VotingService 负责社区投票：建题、投票、结果统计。
// 同一用户对同一投票只能投一次，由存储层唯一索引保证。
type VotingService struct {
	votingRepo repository.VotingRepository
}

// NewVotingService 创建 VotingService 实例。
func NewVotingService(votingRepo repository.VotingRepository) *VotingService {
	if votingRepo == nil {
		panic("VotingRepository cannot be nil for VotingService")
	}
	return &VotingService{votingRepo: votingRepo}
}

// PollWithOptions 是投票议题及其选项的组合视图。
type PollWithOptions struct {
	Poll    domain.VotingPoll     `json:"poll"`
	Options []domain.VotingOption `json:"options"`
}

// ListPolls 返回全部投票议题及选项。
func (s *VotingService) ListPolls(ctx context.Context) ([]PollWithOptions, error) {
	polls, err := s.votingRepo.FindAllPolls(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list polls")
		return nil, ErrInternalServer
	}

	result := make([]PollWithOptions, 0, len(polls))
	for _, poll := range polls {
		options, err := s.votingRepo.FindOptionsByPoll(ctx, poll.ID)
		if err != nil {
			logrus.WithError(err).WithField("poll_id", poll.ID).Error("Failed to load poll options")
			return nil, ErrInternalServer
		}
		result = append(result, PollWithOptions{Poll: poll, Options: options})
	}
	return result, nil
}

// CreatePollInput 是新建投票的输入数据。
type CreatePollInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Options     []string
}

// CreatePoll 新建投票议题及选项。
func (s *VotingService) CreatePoll(ctx context.Context, in CreatePollInput) (*PollWithOptions, error) {
	logCtx := logrus.WithField("title", in.Title)

	if in.Title == "" || len(in.Options) == 0 {
		return nil, ErrInvalidInput
	}

	poll := &domain.VotingPoll{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.votingRepo.SavePoll(ctx, poll); err != nil {
		logCtx.WithError(err).Error("Failed to save poll")
		return nil, ErrInternalServer
	}

	options := make([]domain.VotingOption, 0, len(in.Options))
	for _, text := range in.Options {
		if text == "" {
			continue
		}
		option := domain.VotingOption{PollID: poll.ID, OptionText: text}
		if err := s.votingRepo.SaveOption(ctx, &option); err != nil {
			logCtx.WithError(err).Error("Failed to save poll option")
			return nil, ErrInternalServer
		}
		options = append(options, option)
	}

	logCtx.WithField("poll_id", poll.ID).Info("Poll created")
	return &PollWithOptions{Poll: *poll, Options: options}, nil
}

// Vote 记录一票。重复投票返回 ErrDuplicateVote，不覆盖已有选择。
func (s *VotingService) Vote(ctx context.Context, pollID, optionID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"poll_id": pollID, "user_id": userID})

	if _, err := s.votingRepo.FindPollByID(ctx, pollID); err != nil {
		if errors.Is(err, repository.ErrPollNotFound) {
			return ErrPollNotFound
		}
		logCtx.WithError(err).Error("Failed to find poll for vote")
		return ErrInternalServer
	}

	vote := &domain.VotingResult{PollID: pollID, OptionID: optionID, UserID: userID}
	if err := s.votingRepo.SaveVote(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			logCtx.Warn("Duplicate vote rejected")
			return ErrDuplicateVote
		}
		logCtx.WithError(err).Error("Failed to save vote")
		return ErrInternalServer
	}

	logCtx.Info("Vote recorded")
	return nil
}

// OptionResult 是单个选项的票数统计。
type OptionResult struct {
	OptionID   uint   `json:"option_id"`
	OptionText string `json:"option_text"`
	Votes      int64  `json:"votes"`
}

// PollResults 是一次投票的完整结果。
type PollResults struct {
	PollID     uint           `json:"poll_id"`
	Title      string         `json:"title"`
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// Results 统计指定投票的结果。
func (s *VotingService) Results(ctx context.Context, pollID uint) (*PollResults, error) {
	logCtx := logrus.WithField("poll_id", pollID)

	poll, err := s.votingRepo.FindPollByID(ctx, pollID)
	if err != nil {
		if errors.Is(err, repository.ErrPollNotFound) {
			return nil, ErrPollNotFound
		}
		logCtx.WithError(err).Error("Failed to find poll for results")
		return nil, ErrInternalServer
	}

	options, err := s.votingRepo.FindOptionsByPoll(ctx, pollID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load poll options for results")
		return nil, ErrInternalServer
	}

	total, err := s.votingRepo.CountVotesByPoll(ctx, pollID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to count poll votes")
		return nil, ErrInternalServer
	}

	results := &PollResults{PollID: poll.ID, Title: poll.Title, TotalVotes: total}
	for _, option := range options {
		count, err := s.votingRepo.CountVotesByOption(ctx, option.ID)
		if err != nil {
			logCtx.WithError(err).Error("Failed to count option votes")
			return nil, ErrInternalServer
		}
		results.Options = append(results.Options, OptionResult{
			OptionID:   option.ID,
			OptionText: option.OptionText,
			Votes:      count,
		})
	}
	return results, nil
}
