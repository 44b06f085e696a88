package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

// ListPaymentsInput captures the inputs for the paginated payment list.
type ListPaymentsInput struct {
	MemberID   *uuid.UUID
	Status     string
	Pagination pagination.Params
}

// Repository handles payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new payment row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID loads a payment with its member.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Member").
		Where("id = ?", id).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List returns a filtered payment page, newest due first, plus the total
// match count.
func (r *Repository) List(ctx context.Context, input ListPaymentsInput) ([]models.Payment, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Payment{})
	if input.MemberID != nil {
		base = base.Where("member_id = ?", *input.MemberID)
	}
	if input.Status != "" && input.Status != "all" {
		base = base.Where("status = ?", input.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Payment
	if err := base.
		Preload("Member").
		Order("due_at DESC").
		Limit(input.Pagination.Limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update saves the provided payment.
func (r *Repository) Update(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return fmt.Errorf("payment is required")
	}
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes a payment row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Overview aggregates payment counts and revenue totals.
func (r *Repository) Overview(ctx context.Context, now time.Time) (*OverviewDTO, error) {
	overview := &OverviewDTO{
		CountByStatus:    map[string]int64{},
		OutstandingTotal: decimal.Zero,
		RevenueThisMonth: decimal.Zero,
		RevenueAllTime:   decimal.Zero,
	}

	var rows []struct {
		Status string
		Count  int64
		Total  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		overview.TotalCount += row.Count
		overview.CountByStatus[row.Status] = row.Count
		switch enums.PaymentStatus(row.Status) {
		case enums.PaymentStatusPaid:
			overview.RevenueAllTime = overview.RevenueAllTime.Add(row.Total)
		case enums.PaymentStatusPending, enums.PaymentStatusOverdue:
			overview.OutstandingTotal = overview.OutstandingTotal.Add(row.Total)
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var monthRevenue decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", enums.PaymentStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Scan(&monthRevenue).Error; err != nil {
		return nil, err
	}
	overview.RevenueThisMonth = monthRevenue

	return overview, nil
}
