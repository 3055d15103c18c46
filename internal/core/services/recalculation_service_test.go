package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/apperrors"
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	portssvc "github.com/choretrack/chore_tracker_app/internal/core/ports/services"
	"github.com/choretrack/chore_tracker_app/internal/core/services"
	"github.com/choretrack/chore_tracker_app/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecalculationServiceTestSuite struct {
	suite.Suite
	mockCompletionRepo *MockCompletionRepository
	mockStreakRepo     *MockStreakRepository
	mockMilestoneRepo  *MockMilestoneRepository
	mockLedgerSvc      *MockLedgerService
	sink               *recordingSink
	service            portssvc.RecalculationSvcFacade

	key        domain.StreakKey
	today      time.Time
	milestones []domain.Milestone
}

func (suite *RecalculationServiceTestSuite) SetupTest() {
	suite.mockCompletionRepo = new(MockCompletionRepository)
	suite.mockStreakRepo = new(MockStreakRepository)
	suite.mockMilestoneRepo = new(MockMilestoneRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.sink = &recordingSink{}
	suite.service = services.NewRecalculationService(
		suite.mockCompletionRepo,
		suite.mockStreakRepo,
		suite.mockMilestoneRepo,
		suite.mockLedgerSvc,
		suite.sink,
		time.UTC,
	)

	suite.key = domain.StreakKey{UserID: uuid.NewString(), RoutineID: uuid.NewString()}
	suite.today = dates.Today(time.UTC)
	suite.milestones = []domain.Milestone{
		{Days: 7, Amount: decimal.NewFromFloat(1.00), Label: "7-day streak"},
		{Days: 14, Amount: decimal.NewFromFloat(2.50), Label: "14-day streak"},
	}
}

// consecutiveDays builds a newest-first run of n days ending at end.
func consecutiveDays(end time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = end.AddDate(0, 0, -i)
	}
	return out
}

func (suite *RecalculationServiceTestSuite) expectPairs(pairs ...domain.StreakKey) {
	ctx := mock.Anything
	suite.mockMilestoneRepo.On("ListMilestones", ctx).Return(suite.milestones, nil).Once()
	suite.mockStreakRepo.On("ListTrackedPairs", ctx).Return(pairs, nil).Once()
	suite.mockCompletionRepo.On("ListTrackedPairs", ctx).Return([]domain.StreakKey{}, nil).Once()
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_UnbrokenStreakKeepsCount() {
	suite.expectPairs(suite.key)
	history := consecutiveDays(suite.today, 3)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(history, nil).Once()
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(&domain.Streak{UserID: suite.key.UserID, RoutineID: suite.key.RoutineID, CurrentCount: 3, BestCount: 3}, nil).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.MatchedBy(func(s domain.Streak) bool {
		return s.CurrentCount == 3 && s.BestCount == 3
	})).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, result.PairsProcessed)
	suite.Equal(0, result.StreaksBroken)
	suite.Equal(0, result.MilestonesPaid)
	suite.Equal(0, result.FailedPairs)
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_StaleHistoryBreaksStreak() {
	suite.expectPairs(suite.key)
	// Most recent completion is three days ago: the chain is dead.
	history := consecutiveDays(suite.today.AddDate(0, 0, -3), 5)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(history, nil).Once()
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(&domain.Streak{UserID: suite.key.UserID, RoutineID: suite.key.RoutineID, CurrentCount: 5, BestCount: 5}, nil).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.MatchedBy(func(s domain.Streak) bool {
		return s.CurrentCount == 0 && s.BestCount == 5
	})).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, result.StreaksBroken)
	suite.Contains(suite.sink.kinds(), portssvc.EventStreakBroken)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "Credit")
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_PaysMilestoneOnCrossing() {
	suite.expectPairs(suite.key)
	history := consecutiveDays(suite.today, 7)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(history, nil).Once()
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(&domain.Streak{UserID: suite.key.UserID, RoutineID: suite.key.RoutineID, CurrentCount: 6, BestCount: 6}, nil).Once()
	suite.mockLedgerSvc.On("Credit", mock.Anything, suite.key.UserID,
		suite.milestones[0].Amount, domain.KindBonus, "Streak milestone: 7-day streak").
		Return(&domain.Transaction{}, nil).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.MatchedBy(func(s domain.Streak) bool {
		return s.CurrentCount == 7 && s.BestCount == 7
	})).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, result.MilestonesPaid)
	suite.Contains(suite.sink.kinds(), portssvc.EventMilestoneReached)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_NoMilestoneWithoutIncrease() {
	suite.expectPairs(suite.key)
	history := consecutiveDays(suite.today, 7)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(history, nil).Once()
	// Stored already at 7: re-running the job must not pay again.
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(&domain.Streak{UserID: suite.key.UserID, RoutineID: suite.key.RoutineID, CurrentCount: 7, BestCount: 7}, nil).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.AnythingOfType("domain.Streak")).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(0, result.MilestonesPaid)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "Credit")
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_BackfillJumpPaysEachCrossedThreshold() {
	suite.expectPairs(suite.key)
	history := consecutiveDays(suite.today, 14)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(history, nil).Once()
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(&domain.Streak{UserID: suite.key.UserID, RoutineID: suite.key.RoutineID, CurrentCount: 5, BestCount: 5}, nil).Once()
	suite.mockLedgerSvc.On("Credit", mock.Anything, suite.key.UserID, suite.milestones[0].Amount, domain.KindBonus, mock.AnythingOfType("string")).
		Return(&domain.Transaction{}, nil).Once()
	suite.mockLedgerSvc.On("Credit", mock.Anything, suite.key.UserID, suite.milestones[1].Amount, domain.KindBonus, mock.AnythingOfType("string")).
		Return(&domain.Transaction{}, nil).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.AnythingOfType("domain.Streak")).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(2, result.MilestonesPaid)
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_PairFailureIsIsolated() {
	failing := domain.StreakKey{UserID: uuid.NewString(), RoutineID: uuid.NewString()}
	suite.expectPairs(failing, suite.key)

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, failing.UserID, failing.RoutineID).
		Return(nil, errors.New("query timeout")).Once()

	suite.mockCompletionRepo.On("FindCompletionDatesForRoutine", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(consecutiveDays(suite.today, 1), nil).Once()
	suite.mockStreakRepo.On("FindStreak", mock.Anything, suite.key.UserID, suite.key.RoutineID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStreakRepo.On("UpsertStreak", mock.Anything, mock.MatchedBy(func(s domain.Streak) bool {
		return s.CurrentCount == 1 && s.BestCount == 1
	})).Return(nil).Once()

	result, err := suite.service.RecalculateAll(context.Background())

	suite.Require().NoError(err)
	suite.Equal(2, result.PairsProcessed)
	suite.Equal(1, result.FailedPairs)
	suite.Len(result.FailureMessages, 1)
	suite.Contains(result.FailureMessages[0], "query timeout")
}

func (suite *RecalculationServiceTestSuite) TestRecalculate_MilestoneLoadFailureIsFatal() {
	suite.mockMilestoneRepo.On("ListMilestones", mock.Anything).
		Return(nil, errors.New("store unreachable")).Once()

	_, err := suite.service.RecalculateAll(context.Background())
	suite.Require().Error(err)
}

func TestRecalculationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecalculationServiceTestSuite))
}
