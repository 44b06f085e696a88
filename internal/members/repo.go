package members

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// Repository handles member persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to member operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new member row.
func (r *Repository) Create(ctx context.Context, member *models.Member) error {
	if member == nil {
		return fmt.Errorf("member is required")
	}
	return r.db.WithContext(ctx).Create(member).Error
}

// FindByID loads a member by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail loads a member by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns a filtered, sorted member page plus the total match count.
func (r *Repository) List(ctx context.Context, input ListMembersInput) ([]models.Member, int64, error) {
	base := input.Filters.ApplyToQuery(r.db.WithContext(ctx).Model(&models.Member{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Member
	if err := base.
		Order(input.orderClause()).
		Limit(input.Pagination.Limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided member.
func (r *Repository) Update(ctx context.Context, member *models.Member) error {
	if member == nil {
		return fmt.Errorf("member is required")
	}
	return r.db.WithContext(ctx).Save(member).Error
}

// Stats aggregates a member's activity across payments, workouts and
// check-ins.
func (r *Repository) Stats(ctx context.Context, id uuid.UUID) (*MemberStatsDTO, error) {
	stats := &MemberStatsDTO{
		MemberID:      id,
		TotalPaid:     decimal.Zero,
		PendingAmount: decimal.Zero,
	}

	q := r.db.WithContext(ctx)
	if err := q.Model(&models.Workout{}).
		Where("member_id = ?", id).
		Count(&stats.WorkoutCount).Error; err != nil {
		return nil, err
	}
	if err := q.Model(&models.CheckIn{}).
		Where("member_id = ?", id).
		Count(&stats.CheckInCount).Error; err != nil {
		return nil, err
	}

	var sums []struct {
		Status string
		Total  decimal.Decimal
	}
	if err := q.Model(&models.Payment{}).
		Select("status, COALESCE(SUM(amount), 0) AS total").
		Where("member_id = ?", id).
		Group("status").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	for _, row := range sums {
		switch enums.PaymentStatus(row.Status) {
		case enums.PaymentStatusPaid:
			stats.TotalPaid = stats.TotalPaid.Add(row.Total)
		case enums.PaymentStatusPending, enums.PaymentStatusOverdue:
			stats.PendingAmount = stats.PendingAmount.Add(row.Total)
		}
	}

	var last models.CheckIn
	err := q.Where("member_id = ?", id).Order("checked_in_at DESC").First(&last).Error
	switch {
	case err == nil:
		at := last.CheckedInAt
		stats.LastCheckInAt = &at
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}

	return stats, nil
}
