package payments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	members := `
CREATE TABLE IF NOT EXISTS members (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  age INTEGER NOT NULL,
  gender TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  membership_type TEXT NOT NULL,
  status TEXT NOT NULL,
  joined_at DATETIME NOT NULL,
  expires_at DATETIME NOT NULL,
  profile_image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	payments := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  member_id TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL,
  due_at DATETIME NOT NULL,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(members).Error)
	require.NoError(t, conn.Exec(payments).Error)
	return conn
}

func seedPaymentMember(t *testing.T, conn *gorm.DB) *models.Member {
	t.Helper()

	member := &models.Member{
		ID:             uuid.New(),
		FirstName:      "Dana",
		LastName:       "Voss",
		Age:            35,
		Gender:         enums.GenderFemale,
		Email:          fmt.Sprintf("gd_test_%s@example.com", uuid.NewString()),
		MembershipType: enums.MembershipTypeOneYear,
		Status:         enums.MemberStatusActive,
		JoinedAt:       time.Now().UTC(),
		ExpiresAt:      time.Now().UTC().AddDate(1, 0, 0),
	}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func seedPayment(t *testing.T, conn *gorm.DB, memberID uuid.UUID, status enums.PaymentStatus, amount int64, paidAt *time.Time) *models.Payment {
	t.Helper()

	p := &models.Payment{
		ID:       uuid.New(),
		MemberID: memberID,
		Amount:   decimal.NewFromInt(amount),
		Type:     enums.PaymentTypeMembership,
		Status:   status,
		DueAt:    time.Now().UTC(),
		PaidAt:   paidAt,
	}
	require.NoError(t, conn.Create(p).Error)
	return p
}

func TestRepositoryListFiltersByMemberAndStatus(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	alpha := seedPaymentMember(t, conn)
	beta := seedPaymentMember(t, conn)
	now := time.Now().UTC()

	seedPayment(t, conn, alpha.ID, enums.PaymentStatusPending, 40, nil)
	seedPayment(t, conn, alpha.ID, enums.PaymentStatusPaid, 60, &now)
	seedPayment(t, conn, beta.ID, enums.PaymentStatusPending, 25, nil)

	rows, total, err := repo.List(ctx, ListPaymentsInput{
		MemberID:   &alpha.ID,
		Pagination: pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, alpha.ID, row.MemberID)
		require.NotNil(t, row.Member)
		assert.Equal(t, "Dana Voss", row.Member.FullName())
	}

	rows, total, err = repo.List(ctx, ListPaymentsInput{
		Status:     "pending",
		Pagination: pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, row := range rows {
		assert.Equal(t, enums.PaymentStatusPending, row.Status)
	}
}

func TestRepositoryDeleteMissingRow(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryOverview(t *testing.T) {
	conn := setupPaymentsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := seedPaymentMember(t, conn)
	now := time.Date(2026, time.April, 18, 10, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.April, 3, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)

	seedPayment(t, conn, member.ID, enums.PaymentStatusPaid, 100, &thisMonth)
	seedPayment(t, conn, member.ID, enums.PaymentStatusPaid, 80, &lastMonth)
	seedPayment(t, conn, member.ID, enums.PaymentStatusPending, 50, nil)
	seedPayment(t, conn, member.ID, enums.PaymentStatusOverdue, 30, nil)
	seedPayment(t, conn, member.ID, enums.PaymentStatusCancelled, 999, nil)

	overview, err := repo.Overview(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, int64(5), overview.TotalCount)
	assert.Equal(t, int64(2), overview.CountByStatus["paid"])
	assert.Equal(t, int64(1), overview.CountByStatus["pending"])
	assert.True(t, overview.RevenueAllTime.Equal(decimal.NewFromInt(180)), "all time %s", overview.RevenueAllTime)
	assert.True(t, overview.RevenueThisMonth.Equal(decimal.NewFromInt(100)), "this month %s", overview.RevenueThisMonth)
	assert.True(t, overview.OutstandingTotal.Equal(decimal.NewFromInt(80)), "outstanding %s", overview.OutstandingTotal)
}
