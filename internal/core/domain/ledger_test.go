package domain_test

import (
	"testing"
	"time"

	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionKind_Sides(t *testing.T) {
	tests := []struct {
		kind     domain.TransactionKind
		isCredit bool
		isDebit  bool
	}{
		{domain.KindEarned, true, false},
		{domain.KindBonus, true, false},
		{domain.KindSpent, false, true},
		{domain.KindPayout, false, true},
		{domain.KindAdjustment, true, true},
		{domain.TransactionKind("REFUND"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.isCredit, tt.kind.IsCreditKind())
			assert.Equal(t, tt.isDebit, tt.kind.IsDebitKind())
		})
	}
}

func TestCompletion_CanUndoAt(t *testing.T) {
	completedAt := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	c := domain.Completion{CompletedAt: completedAt}
	window := 5 * time.Minute

	assert.True(t, c.CanUndoAt(completedAt, window))
	assert.True(t, c.CanUndoAt(completedAt.Add(5*time.Minute), window))
	assert.False(t, c.CanUndoAt(completedAt.Add(5*time.Minute+time.Second), window))
}
