package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository/mocks"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/service"
)

func TestVotingService_CreatePoll_SkipsEmptyOptions(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	votingRepo.On("SavePoll", mock.Anything, mock.AnythingOfType("*domain.VotingPoll")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.VotingPoll).ID = 2
		}).Return(nil).Once()
	votingRepo.On("SaveOption", mock.Anything, mock.MatchedBy(func(o *domain.VotingOption) bool {
		return o.PollID == 2 && o.OptionText != ""
	})).Return(nil).Twice()

	got, err := svc.CreatePoll(context.Background(), service.CreatePollInput{
		Title:     "电梯改造方案",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 7),
		Options:   []string{"方案一", "", "方案二"},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Poll.ID)
	assert.Len(t, got.Options, 2)
	votingRepo.AssertExpectations(t)
}

func TestVotingService_CreatePoll_MissingTitleOrOptions(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	_, err := svc.CreatePoll(context.Background(), service.CreatePollInput{Title: ""})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.CreatePoll(context.Background(), service.CreatePollInput{Title: "T"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	votingRepo.AssertNotCalled(t, "SavePoll", mock.Anything, mock.Anything)
}

func TestVotingService_Vote_Success(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	votingRepo.On("FindPollByID", mock.Anything, uint(2)).
		Return(&domain.VotingPoll{ID: 2}, nil).Once()
	votingRepo.On("SaveVote", mock.Anything, mock.MatchedBy(func(v *domain.VotingResult) bool {
		return v.PollID == 2 && v.OptionID == 5 && v.UserID == 42
	})).Return(nil).Once()

	err := svc.Vote(context.Background(), 2, 5, 42)

	require.NoError(t, err)
	votingRepo.AssertExpectations(t)
}

func TestVotingService_Vote_DuplicateRejected(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	votingRepo.On("FindPollByID", mock.Anything, uint(2)).
		Return(&domain.VotingPoll{ID: 2}, nil).Once()
	votingRepo.On("SaveVote", mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateVote).Once()

	err := svc.Vote(context.Background(), 2, 5, 42)

	assert.ErrorIs(t, err, service.ErrDuplicateVote)
}

func TestVotingService_Vote_UnknownPoll(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	votingRepo.On("FindPollByID", mock.Anything, uint(404)).
		Return(nil, repository.ErrPollNotFound).Once()

	err := svc.Vote(context.Background(), 404, 5, 42)

	assert.ErrorIs(t, err, service.ErrPollNotFound)
	votingRepo.AssertNotCalled(t, "SaveVote", mock.Anything, mock.Anything)
}

func TestVotingService_Results_CountsPerOption(t *testing.T) {
	votingRepo := new(mocks.VotingRepository)
	svc := service.NewVotingService(votingRepo)

	votingRepo.On("FindPollByID", mock.Anything, uint(2)).
		Return(&domain.VotingPoll{ID: 2, Title: "电梯改造方案"}, nil).Once()
	votingRepo.On("FindOptionsByPoll", mock.Anything, uint(2)).Return([]domain.VotingOption{
		{ID: 5, PollID: 2, OptionText: "方案一"},
		{ID: 6, PollID: 2, OptionText: "方案二"},
	}, nil).Once()
	votingRepo.On("CountVotesByPoll", mock.Anything, uint(2)).Return(int64(10), nil).Once()
	votingRepo.On("CountVotesByOption", mock.Anything, uint(5)).Return(int64(7), nil).Once()
	votingRepo.On("CountVotesByOption", mock.Anything, uint(6)).Return(int64(3), nil).Once()

	results, err := svc.Results(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(10), results.TotalVotes)
	require.Len(t, results.Options, 2)
	assert.Equal(t, int64(7), results.Options[0].Votes)
	assert.Equal(t, "方案二", results.Options[1].OptionText)
}
