package dto

import "github.com/choretrack/chore_tracker_app/internal/core/domain"

// StreakResponse defines the data returned for a streak query.
type StreakResponse struct {
	UserID             string  `json:"userID"`
	RoutineID          string  `json:"routineID"`
	CurrentCount       int     `json:"currentCount"`
	BestCount          int     `json:"bestCount"`
	LastCompletionDate *string `json:"lastCompletionDate,omitempty"`
}

// ToStreakResponse converts a domain.Streak to its DTO.
func ToStreakResponse(s *domain.Streak) StreakResponse {
	resp := StreakResponse{
		UserID:       s.UserID,
		RoutineID:    s.RoutineID,
		CurrentCount: s.CurrentCount,
		BestCount:    s.BestCount,
	}
	if s.LastCompletionDate != nil {
		d := s.LastCompletionDate.Format("2006-01-02")
		resp.LastCompletionDate = &d
	}
	return resp
}

// TotalStreakResponse is the display fallback summing all routines.
type TotalStreakResponse struct {
	UserID string `json:"userID"`
	Total  int    `json:"total"`
}
