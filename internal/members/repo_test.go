package members

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

	"github.com/felipeortega/gymdesk-backend/pkg/db"
	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

func setupMembersTestDB(t *testing.T) *gorm.DB {
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
	workouts := `
CREATE TABLE IF NOT EXISTS workouts (
  id TEXT PRIMARY KEY,
  member_id TEXT NOT NULL,
  type TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  calories INTEGER,
  performed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	checkins := `
CREATE TABLE IF NOT EXISTS checkins (
  id TEXT PRIMARY KEY,
  member_id TEXT NOT NULL,
  checked_in_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(members).Error)
	require.NoError(t, conn.Exec(payments).Error)
	require.NoError(t, conn.Exec(workouts).Error)
	require.NoError(t, conn.Exec(checkins).Error)
	return conn
}

func newTestMember(t *testing.T, conn *gorm.DB, mutate func(*models.Member)) *models.Member {
	t.Helper()

	member := &models.Member{
		ID:             uuid.New(),
		FirstName:      "Jon",
		LastName:       "Petters",
		Age:            28,
		Gender:         enums.GenderMale,
		Email:          fmt.Sprintf("gd_test_%s@example.com", uuid.NewString()),
		Phone:          "555-0199",
		MembershipType: enums.MembershipTypeThreeMonth,
		Status:         enums.MemberStatusActive,
		JoinedAt:       time.Now().UTC(),
		ExpiresAt:      time.Now().UTC().AddDate(0, 3, 0),
	}
	if mutate != nil {
		mutate(member)
	}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func TestRepositoryCreateAndFindByEmail(t *testing.T) {
	conn := setupMembersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := &models.Member{
		ID:             uuid.New(),
		FirstName:      "Ana",
		LastName:       "Reyes",
		Age:            40,
		Gender:         enums.GenderFemale,
		Email:          "ana.reyes@example.com",
		MembershipType: enums.MembershipTypeOneYear,
		Status:         enums.MemberStatusActive,
		JoinedAt:       time.Now().UTC(),
		ExpiresAt:      time.Now().UTC().AddDate(1, 0, 0),
	}
	require.NoError(t, repo.Create(ctx, member))

	found, err := repo.FindByEmail(ctx, "  Ana.Reyes@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	conn := setupMembersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := newTestMember(t, conn, nil)
	dup := &models.Member{
		ID:             uuid.New(),
		FirstName:      "Copy",
		LastName:       "Cat",
		Age:            22,
		Gender:         enums.GenderOther,
		Email:          first.Email,
		MembershipType: enums.MembershipTypeOneMonth,
		Status:         enums.MemberStatusActive,
		JoinedAt:       time.Now().UTC(),
		ExpiresAt:      time.Now().UTC().AddDate(0, 1, 0),
	}

	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestRepositoryListFilterParityWithMatches(t *testing.T) {
	conn := setupMembersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seeded := []*models.Member{
		newTestMember(t, conn, func(m *models.Member) {
			m.FirstName, m.LastName = "Carla", "Jimenez"
			m.Status = enums.MemberStatusActive
			m.MembershipType = enums.MembershipTypeSixMonth
		}),
		newTestMember(t, conn, func(m *models.Member) {
			m.FirstName, m.LastName = "Bruno", "Keller"
			m.Status = enums.MemberStatusExpiringSoon
			m.MembershipType = enums.MembershipTypeOneMonth
		}),
		newTestMember(t, conn, func(m *models.Member) {
			m.FirstName, m.LastName = "Carla", "Silva"
			m.Status = enums.MemberStatusArchived
			m.MembershipType = enums.MembershipTypeSixMonth
		}),
	}

	filterSets := []Filters{
		{},
		{Search: "carla"},
		{Search: "carla jimenez"},
		{Search: "bruno keller"},
		{Search: "jimenez bruno"},
		{Status: "archived"},
		{Status: "expiring_soon"},
		{MembershipType: "six_month"},
		{Search: "carla", MembershipType: "six_month"},
	}

	for _, f := range filterSets {
		f = f.Normalize()
		rows, total, err := repo.List(ctx, ListMembersInput{
			Filters:    f,
			Pagination: pagination.Params{Page: 1, Limit: 50},
		})
		require.NoError(t, err)

		wantIDs := map[uuid.UUID]bool{}
		for _, m := range seeded {
			if f.Matches(m) {
				wantIDs[m.ID] = true
			}
		}
		assert.Equal(t, int64(len(wantIDs)), total, "filters %+v", f)
		assert.Len(t, rows, len(wantIDs), "filters %+v", f)
		for _, row := range rows {
			assert.True(t, wantIDs[row.ID], "unexpected row for filters %+v", f)
		}
	}
}

func TestRepositoryListPaginates(t *testing.T) {
	conn := setupMembersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		newTestMember(t, conn, nil)
	}

	rows, total, err := repo.List(ctx, ListMembersInput{
		Filters:    Filters{}.Normalize(),
		SortBy:     "email",
		SortOrder:  "asc",
		Pagination: pagination.Params{Page: 2, Limit: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, rows, 3)
}

func TestRepositoryStats(t *testing.T) {
	conn := setupMembersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := newTestMember(t, conn, nil)
	now := time.Now().UTC()

	paidAt := now.Add(-time.Hour)
	payments := []models.Payment{
		{ID: uuid.New(), MemberID: member.ID, Amount: decimal.NewFromInt(50), Type: enums.PaymentTypeMembership, Status: enums.PaymentStatusPaid, DueAt: now, PaidAt: &paidAt},
		{ID: uuid.New(), MemberID: member.ID, Amount: decimal.NewFromInt(30), Type: enums.PaymentTypeMembership, Status: enums.PaymentStatusPending, DueAt: now},
		{ID: uuid.New(), MemberID: member.ID, Amount: decimal.NewFromInt(20), Type: enums.PaymentTypeDayPass, Status: enums.PaymentStatusOverdue, DueAt: now.Add(-48 * time.Hour)},
		{ID: uuid.New(), MemberID: member.ID, Amount: decimal.NewFromInt(99), Type: enums.PaymentTypeOther, Status: enums.PaymentStatusCancelled, DueAt: now},
	}
	for i := range payments {
		require.NoError(t, conn.Create(&payments[i]).Error)
	}

	for i := 0; i < 3; i++ {
		w := models.Workout{
			ID:              uuid.New(),
			MemberID:        member.ID,
			Type:            enums.WorkoutTypeStrength,
			DurationMinutes: 45,
			PerformedAt:     now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		require.NoError(t, conn.Create(&w).Error)
	}

	latest := now.Add(-30 * time.Minute)
	checkins := []models.CheckIn{
		{ID: uuid.New(), MemberID: member.ID, CheckedInAt: now.Add(-72 * time.Hour)},
		{ID: uuid.New(), MemberID: member.ID, CheckedInAt: latest},
	}
	for i := range checkins {
		require.NoError(t, conn.Create(&checkins[i]).Error)
	}

	stats, err := repo.Stats(ctx, member.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.WorkoutCount)
	assert.Equal(t, int64(2), stats.CheckInCount)
	assert.True(t, stats.TotalPaid.Equal(decimal.NewFromInt(50)), "total paid %s", stats.TotalPaid)
	assert.True(t, stats.PendingAmount.Equal(decimal.NewFromInt(50)), "pending %s", stats.PendingAmount)
	require.NotNil(t, stats.LastCheckInAt)
	assert.WithinDuration(t, latest, *stats.LastCheckInAt, time.Second)
}
