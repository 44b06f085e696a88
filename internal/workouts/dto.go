package workouts

import (
	"time"

	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// WorkoutDTO exposes workout data in API responses.
type WorkoutDTO struct {
	ID              uuid.UUID         `json:"id"`
	MemberID        uuid.UUID         `json:"member_id"`
	MemberName      string            `json:"member_name,omitempty"`
	Type            enums.WorkoutType `json:"type"`
	DurationMinutes int               `json:"duration_minutes"`
	Calories        *int              `json:"calories,omitempty"`
	PerformedAt     time.Time         `json:"performed_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// CreateWorkoutInput holds creation-time data for a new workout entry.
type CreateWorkoutInput struct {
	MemberID        uuid.UUID
	Type            enums.WorkoutType
	DurationMinutes int
	Calories        *int
	PerformedAt     *time.Time
}

// UpdateWorkoutInput captures the allowed workout fields for mutation. Nil
// means leave untouched.
type UpdateWorkoutInput struct {
	Type            *enums.WorkoutType
	DurationMinutes *int
	Calories        *int
	PerformedAt     *time.Time
}

// OverviewDTO summarizes logged workouts for the stats endpoint.
type OverviewDTO struct {
	TotalCount    int64            `json:"total_count"`
	CountByType   map[string]int64 `json:"count_by_type"`
	TotalMinutes  int64            `json:"total_minutes"`
	TotalCalories int64            `json:"total_calories"`
}

// FromModel maps the persisted workout into a DTO.
func FromModel(w *models.Workout) *WorkoutDTO {
	if w == nil {
		return nil
	}
	dto := &WorkoutDTO{
		ID:              w.ID,
		MemberID:        w.MemberID,
		Type:            w.Type,
		DurationMinutes: w.DurationMinutes,
		PerformedAt:     w.PerformedAt,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
	if w.Calories != nil {
		cpy := *w.Calories
		dto.Calories = &cpy
	}
	if w.Member != nil {
		dto.MemberName = w.Member.FullName()
	}
	return dto
}

// FromModels maps a workout slice into DTOs.
func FromModels(ws []models.Workout) []WorkoutDTO {
	out := make([]WorkoutDTO, 0, len(ws))
	for i := range ws {
		out = append(out, *FromModel(&ws[i]))
	}
	return out
}
