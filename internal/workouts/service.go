package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

type workoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	List(ctx context.Context, input ListWorkoutsInput) ([]models.Workout, int64, error)
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id uuid.UUID) error
	Overview(ctx context.Context) (*OverviewDTO, error)
}

type memberLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// Service exposes workout operations.
type Service interface {
	List(ctx context.Context, input ListWorkoutsInput) ([]WorkoutDTO, pagination.Meta, error)
	Create(ctx context.Context, input CreateWorkoutInput) (*WorkoutDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*WorkoutDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateWorkoutInput) (*WorkoutDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MemberHistory(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]WorkoutDTO, pagination.Meta, error)
	Overview(ctx context.Context) (*OverviewDTO, error)
}

type service struct {
	repo    workoutRepository
	members memberLookup
	now     func() time.Time
}

// NewService builds a workout service with the provided repositories.
func NewService(repo workoutRepository, members memberLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("workout repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member repository required")
	}
	return &service{repo: repo, members: members, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, input ListWorkoutsInput) ([]WorkoutDTO, pagination.Meta, error) {
	if input.Type != "" && input.Type != "all" {
		if _, err := enums.ParseWorkoutType(input.Type); err != nil {
			return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid type filter %q", input.Type))
		}
	}
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list workouts")
	}
	return FromModels(rows), pagination.NewMeta(input.Pagination, total), nil
}

func (s *service) Create(ctx context.Context, input CreateWorkoutInput) (*WorkoutDTO, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid workout type")
	}
	if input.DurationMinutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	if input.Calories != nil && *input.Calories < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "calories cannot be negative")
	}

	if _, err := s.members.FindByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	performedAt := s.now().UTC()
	if input.PerformedAt != nil {
		performedAt = input.PerformedAt.UTC()
	}

	workout := &models.Workout{
		MemberID:        input.MemberID,
		Type:            input.Type,
		DurationMinutes: input.DurationMinutes,
		Calories:        input.Calories,
		PerformedAt:     performedAt,
	}
	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create workout")
	}
	return FromModel(workout), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*WorkoutDTO, error) {
	workout, err := s.loadWorkout(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(workout), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateWorkoutInput) (*WorkoutDTO, error) {
	workout, err := s.loadWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid workout type")
		}
		workout.Type = *input.Type
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
		}
		workout.DurationMinutes = *input.DurationMinutes
	}
	if input.Calories != nil {
		if *input.Calories < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "calories cannot be negative")
		}
		cpy := *input.Calories
		workout.Calories = &cpy
	}
	if input.PerformedAt != nil {
		workout.PerformedAt = input.PerformedAt.UTC()
	}

	if err := s.repo.Update(ctx, workout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update workout")
	}
	return FromModel(workout), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "workout not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete workout")
	}
	return nil
}

// MemberHistory lists a single member's workouts, newest first.
func (s *service) MemberHistory(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]WorkoutDTO, pagination.Meta, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	return s.List(ctx, ListWorkoutsInput{MemberID: &memberID, Pagination: params})
}

func (s *service) Overview(ctx context.Context) (*OverviewDTO, error) {
	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout overview")
	}
	return overview, nil
}

func (s *service) loadWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	workout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load workout")
	}
	return workout, nil
}
