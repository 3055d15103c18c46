package services_test

import (
	"context"
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

type CompletionServiceTestSuite struct {
	suite.Suite
	mockCompletionRepo *MockCompletionRepository
	mockTaskSvc        *MockTaskService
	mockLedgerSvc      *MockLedgerService
	mockStreakSvc      *MockStreakService
	sink               *recordingSink
	service            portssvc.CompletionSvcFacade

	userID    string
	routineID string
	task      domain.Task
}

func (suite *CompletionServiceTestSuite) SetupTest() {
	suite.mockCompletionRepo = new(MockCompletionRepository)
	suite.mockTaskSvc = new(MockTaskService)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockStreakSvc = new(MockStreakService)
	suite.sink = &recordingSink{}
	suite.service = services.NewCompletionService(
		suite.mockCompletionRepo,
		suite.mockTaskSvc,
		suite.mockLedgerSvc,
		suite.mockStreakSvc,
		suite.sink,
		5*time.Minute,
		time.UTC,
	)

	suite.userID = uuid.NewString()
	suite.routineID = uuid.NewString()
	suite.task = domain.Task{
		TaskID:    uuid.NewString(),
		RoutineID: &suite.routineID,
		Name:      "Dishes",
		Value:     decimal.NewFromFloat(1.50),
		IsActive:  true,
	}
}

func (suite *CompletionServiceTestSuite) TestComplete_CreditsAndEmits() {
	ctx := context.Background()
	today := dates.Today(time.UTC)
	account := &domain.BalanceAccount{UserID: suite.userID, CurrentBalance: suite.task.Value}

	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&suite.task, nil).Once()
	suite.mockCompletionRepo.On("SaveCompletion", ctx,
		mock.MatchedBy(func(c domain.Completion) bool {
			return c.TaskID == suite.task.TaskID &&
				c.UserID == suite.userID &&
				c.CompletionDate.Equal(today)
		}),
		mock.MatchedBy(func(credit *domain.Transaction) bool {
			return credit != nil &&
				credit.Amount.Equal(suite.task.Value) &&
				credit.Kind == domain.KindEarned &&
				credit.Description == "Completed: Dishes"
		}),
	).Return(account, nil).Once()

	// Only one of the routine's two tasks is done, so no streak advice.
	suite.mockTaskSvc.On("RoutineTasksFor", ctx, suite.routineID).
		Return([]domain.Task{suite.task, {TaskID: uuid.NewString()}}, nil).Once()
	suite.mockCompletionRepo.On("FindCompletionsForUserOnDate", ctx, suite.userID, today).
		Return([]domain.Completion{{TaskID: suite.task.TaskID}}, nil).Once()

	result, err := suite.service.Complete(ctx, suite.task.TaskID, suite.userID, nil)

	suite.Require().NoError(err)
	suite.True(result.CanUndo)
	suite.True(result.Balance.CurrentBalance.Equal(suite.task.Value))
	suite.Contains(suite.sink.kinds(), portssvc.EventTaskCompleted)
	suite.mockStreakSvc.AssertNotCalled(suite.T(), "AdviseRoutineCompleted")
	suite.mockCompletionRepo.AssertExpectations(suite.T())
}

func (suite *CompletionServiceTestSuite) TestComplete_AdvisesStreakWhenRoutineDone() {
	ctx := context.Background()
	today := dates.Today(time.UTC)
	account := &domain.BalanceAccount{UserID: suite.userID}

	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&suite.task, nil).Once()
	suite.mockCompletionRepo.On("SaveCompletion", ctx, mock.AnythingOfType("domain.Completion"), mock.Anything).
		Return(account, nil).Once()
	suite.mockTaskSvc.On("RoutineTasksFor", ctx, suite.routineID).
		Return([]domain.Task{suite.task}, nil).Once()
	suite.mockCompletionRepo.On("FindCompletionsForUserOnDate", ctx, suite.userID, today).
		Return([]domain.Completion{{TaskID: suite.task.TaskID}}, nil).Once()
	suite.mockStreakSvc.On("AdviseRoutineCompleted", ctx, suite.userID, suite.routineID, today).
		Return(&domain.Streak{CurrentCount: 1}, nil).Once()

	_, err := suite.service.Complete(ctx, suite.task.TaskID, suite.userID, nil)

	suite.Require().NoError(err)
	suite.mockStreakSvc.AssertExpectations(suite.T())
}

func (suite *CompletionServiceTestSuite) TestComplete_DuplicateMapsToConflict() {
	ctx := context.Background()

	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&suite.task, nil).Once()
	suite.mockCompletionRepo.On("SaveCompletion", ctx, mock.AnythingOfType("domain.Completion"), mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.Complete(ctx, suite.task.TaskID, suite.userID, nil)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.sink.kinds())
}

func (suite *CompletionServiceTestSuite) TestComplete_RejectsInactiveTask() {
	ctx := context.Background()
	inactive := suite.task
	inactive.IsActive = false

	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&inactive, nil).Once()

	_, err := suite.service.Complete(ctx, suite.task.TaskID, suite.userID, nil)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CompletionServiceTestSuite) TestComplete_RejectsFutureDate() {
	ctx := context.Background()
	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&suite.task, nil).Once()

	future := time.Now().AddDate(0, 0, 2)
	_, err := suite.service.Complete(ctx, suite.task.TaskID, suite.userID, &future)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CompletionServiceTestSuite) TestUndo_Success() {
	ctx := context.Background()
	completionID := uuid.NewString()
	completion := &domain.Completion{
		CompletionID: completionID,
		TaskID:       suite.task.TaskID,
		UserID:       suite.userID,
		CompletedAt:  time.Now().Add(-1 * time.Minute),
	}
	account := &domain.BalanceAccount{UserID: suite.userID}

	suite.mockCompletionRepo.On("FindCompletionByID", ctx, completionID).Return(completion, nil).Once()
	suite.mockTaskSvc.On("TaskValue", ctx, suite.task.TaskID).Return(&suite.task, nil).Once()
	suite.mockCompletionRepo.On("DeleteCompletion", ctx, completionID,
		mock.MatchedBy(func(reversal *domain.Transaction) bool {
			return reversal != nil &&
				reversal.Amount.Equal(suite.task.Value.Neg()) &&
				reversal.Kind == domain.KindAdjustment
		}),
	).Return(account, nil).Once()

	got, err := suite.service.Undo(ctx, completionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(account, got)
	suite.Contains(suite.sink.kinds(), portssvc.EventCompletionUndone)
	suite.mockCompletionRepo.AssertExpectations(suite.T())
}

func (suite *CompletionServiceTestSuite) TestUndo_CrossUserForbidden() {
	ctx := context.Background()
	completionID := uuid.NewString()
	completion := &domain.Completion{
		CompletionID: completionID,
		UserID:       uuid.NewString(), // someone else's
		CompletedAt:  time.Now(),
	}

	suite.mockCompletionRepo.On("FindCompletionByID", ctx, completionID).Return(completion, nil).Once()

	_, err := suite.service.Undo(ctx, completionID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCompletionRepo.AssertNotCalled(suite.T(), "DeleteCompletion")
}

func (suite *CompletionServiceTestSuite) TestUndo_WindowExpired() {
	ctx := context.Background()
	completionID := uuid.NewString()
	completion := &domain.Completion{
		CompletionID: completionID,
		UserID:       suite.userID,
		CompletedAt:  time.Now().Add(-6 * time.Minute),
	}

	suite.mockCompletionRepo.On("FindCompletionByID", ctx, completionID).Return(completion, nil).Once()

	_, err := suite.service.Undo(ctx, completionID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrUndoWindowExpired)
	suite.mockCompletionRepo.AssertNotCalled(suite.T(), "DeleteCompletion")
}

func (suite *CompletionServiceTestSuite) TestCanUndo_Boundary() {
	ctx := context.Background()

	inside := &domain.Completion{UserID: suite.userID, CompletedAt: time.Now().Add(-4 * time.Minute)}
	outside := &domain.Completion{UserID: suite.userID, CompletedAt: time.Now().Add(-6 * time.Minute)}

	suite.mockCompletionRepo.On("FindCompletionByID", ctx, "in").Return(inside, nil).Once()
	suite.mockCompletionRepo.On("FindCompletionByID", ctx, "out").Return(outside, nil).Once()

	ok, err := suite.service.CanUndo(ctx, "in")
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = suite.service.CanUndo(ctx, "out")
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestCompletionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompletionServiceTestSuite))
}
