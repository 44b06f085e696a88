package workouts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

// ListWorkoutsInput captures the inputs for the paginated workout list.
type ListWorkoutsInput struct {
	MemberID   *uuid.UUID
	Type       string
	Pagination pagination.Params
}

// Repository handles workout persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to workout operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new workout row.
func (r *Repository) Create(ctx context.Context, workout *models.Workout) error {
	if workout == nil {
		return fmt.Errorf("workout is required")
	}
	return r.db.WithContext(ctx).Create(workout).Error
}

// FindByID loads a workout with its member.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).
		Preload("Member").
		Where("id = ?", id).
		First(&workout).Error; err != nil {
		return nil, err
	}
	return &workout, nil
}

// List returns a filtered workout page, most recent first, plus the total
// match count.
func (r *Repository) List(ctx context.Context, input ListWorkoutsInput) ([]models.Workout, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Workout{})
	if input.MemberID != nil {
		base = base.Where("member_id = ?", *input.MemberID)
	}
	if input.Type != "" && input.Type != "all" {
		base = base.Where("type = ?", input.Type)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Workout
	if err := base.
		Preload("Member").
		Order("performed_at DESC").
		Limit(input.Pagination.Limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided workout.
func (r *Repository) Update(ctx context.Context, workout *models.Workout) error {
	if workout == nil {
		return fmt.Errorf("workout is required")
	}
	return r.db.WithContext(ctx).Save(workout).Error
}

// Delete removes a workout row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Workout{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Overview aggregates workout counts and effort totals.
func (r *Repository) Overview(ctx context.Context) (*OverviewDTO, error) {
	overview := &OverviewDTO{CountByType: map[string]int64{}}

	var rows []struct {
		Type     string
		Count    int64
		Minutes  int64
		Calories int64
	}
	if err := r.db.WithContext(ctx).Model(&models.Workout{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(duration_minutes), 0) AS minutes, COALESCE(SUM(calories), 0) AS calories").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		overview.TotalCount += row.Count
		overview.CountByType[row.Type] = row.Count
		overview.TotalMinutes += row.Minutes
		overview.TotalCalories += row.Calories
	}
	return overview, nil
}
