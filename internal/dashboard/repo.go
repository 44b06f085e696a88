package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dashboard queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) memberBase(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Member{}).
		Where("status <> ?", enums.MemberStatusArchived)
}

// CountMembersByStatus returns non-archived member counts keyed by status.
func (r *Repository) CountMembersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.memberBase(ctx).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// CountMembersJoinedBetween counts non-archived members who joined in
// [from, to).
func (r *Repository) CountMembersJoinedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.memberBase(ctx).
		Where("joined_at >= ? AND joined_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CountCheckInsBetween counts check-ins in [from, to).
func (r *Repository) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CheckIn{}).
		Where("checked_in_at >= ? AND checked_in_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// SumRevenueBetween sums paid payments settled in [from, to).
func (r *Repository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", enums.PaymentStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Scan(&total).Error
	return total, err
}

// SumOutstanding sums pending and overdue payment amounts.
func (r *Repository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", []enums.PaymentStatus{enums.PaymentStatusPending, enums.PaymentStatusOverdue}).
		Scan(&total).Error
	return total, err
}

// MemberJoinDatesBetween returns the join timestamps of non-archived members
// in [from, to). Bucketing happens in the service so the query stays portable
// across drivers.
func (r *Repository) MemberJoinDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.memberBase(ctx).
		Where("joined_at >= ? AND joined_at < ?", from, to).
		Pluck("joined_at", &dates).Error
	return dates, err
}

// PaidPaymentsBetween returns (paid_at, amount) pairs settled in [from, to).
func (r *Repository) PaidPaymentsBetween(ctx context.Context, from, to time.Time) ([]PaidPaymentRow, error) {
	var rows []PaidPaymentRow
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Select("paid_at, amount").
		Where("status = ?", enums.PaymentStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Scan(&rows).Error
	return rows, err
}

// PaidPaymentRow is the projection used by the monthly revenue series.
type PaidPaymentRow struct {
	PaidAt time.Time
	Amount decimal.Decimal
}

// CheckInDatesBetween returns check-in timestamps in [from, to).
func (r *Repository) CheckInDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).Model(&models.CheckIn{}).
		Where("checked_in_at >= ? AND checked_in_at < ?", from, to).
		Pluck("checked_in_at", &dates).Error
	return dates, err
}

// MembershipDistribution counts non-archived members per membership type.
func (r *Repository) MembershipDistribution(ctx context.Context) ([]DistributionEntry, error) {
	return r.distribution(ctx, "membership_type")
}

// GenderDistribution counts non-archived members per gender.
func (r *Repository) GenderDistribution(ctx context.Context) ([]DistributionEntry, error) {
	return r.distribution(ctx, "gender")
}

func (r *Repository) distribution(ctx context.Context, column string) ([]DistributionEntry, error) {
	var rows []DistributionEntry
	err := r.memberBase(ctx).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// AgeDistribution counts non-archived members per fixed age bucket. Members
// younger than 16 fall outside the histogram.
func (r *Repository) AgeDistribution(ctx context.Context) ([]DistributionEntry, error) {
	var rows []DistributionEntry
	err := r.memberBase(ctx).
		Select(`CASE
			WHEN age BETWEEN 16 AND 25 THEN '16-25'
			WHEN age BETWEEN 26 AND 35 THEN '26-35'
			WHEN age BETWEEN 36 AND 45 THEN '36-45'
			WHEN age BETWEEN 46 AND 55 THEN '46-55'
			WHEN age >= 56 THEN '56+'
			ELSE 'under-16'
		END AS label, COUNT(*) AS count`).
		Group("label").
		Scan(&rows).Error
	return rows, err
}

// RecentMembers returns the newest non-archived members.
func (r *Repository) RecentMembers(ctx context.Context, limit int) ([]models.Member, error) {
	var rows []models.Member
	err := r.memberBase(ctx).
		Order("joined_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// RecentPaidPayments returns the latest settled payments with members.
func (r *Repository) RecentPaidPayments(ctx context.Context, limit int) ([]models.Payment, error) {
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("status = ?", enums.PaymentStatusPaid).
		Order("paid_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// RecentCheckIns returns the latest check-ins with members.
func (r *Repository) RecentCheckIns(ctx context.Context, limit int) ([]models.CheckIn, error) {
	var rows []models.CheckIn
	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("checked_in_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
