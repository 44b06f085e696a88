package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
)

type stubStatsRepo struct {
	byStatus     map[string]int64
	joins        []time.Time
	payments     []PaidPaymentRow
	checkins     []time.Time
	distribution []DistributionEntry
	members      []models.Member
	paidRows     []models.Payment
	checkinRows  []models.CheckIn
	err          error
}

func (s *stubStatsRepo) CountMembersByStatus(_ context.Context) (map[string]int64, error) {
	return s.byStatus, s.err
}

func (s *stubStatsRepo) CountMembersJoinedBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return int64(len(s.joins)), s.err
}

func (s *stubStatsRepo) CountCheckInsBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return int64(len(s.checkins)), s.err
}

func (s *stubStatsRepo) SumRevenueBetween(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, s.err
}

func (s *stubStatsRepo) SumOutstanding(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, s.err
}

func (s *stubStatsRepo) MemberJoinDatesBetween(_ context.Context, _, _ time.Time) ([]time.Time, error) {
	return s.joins, s.err
}

func (s *stubStatsRepo) PaidPaymentsBetween(_ context.Context, _, _ time.Time) ([]PaidPaymentRow, error) {
	return s.payments, s.err
}

func (s *stubStatsRepo) CheckInDatesBetween(_ context.Context, _, _ time.Time) ([]time.Time, error) {
	return s.checkins, s.err
}

func (s *stubStatsRepo) MembershipDistribution(_ context.Context) ([]DistributionEntry, error) {
	return s.distribution, s.err
}

func (s *stubStatsRepo) GenderDistribution(_ context.Context) ([]DistributionEntry, error) {
	return s.distribution, s.err
}

func (s *stubStatsRepo) AgeDistribution(_ context.Context) ([]DistributionEntry, error) {
	return s.distribution, s.err
}

func (s *stubStatsRepo) RecentMembers(_ context.Context, _ int) ([]models.Member, error) {
	return s.members, s.err
}

func (s *stubStatsRepo) RecentPaidPayments(_ context.Context, _ int) ([]models.Payment, error) {
	return s.paidRows, s.err
}

func (s *stubStatsRepo) RecentCheckIns(_ context.Context, _ int) ([]models.CheckIn, error) {
	return s.checkinRows, s.err
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestMonthlyStatsEmptyYearIsZeroFilled(t *testing.T) {
	svc, err := NewService(&stubStatsRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	buckets, err := svc.MonthlyStats(context.Background(), 2026)
	if err != nil {
		t.Fatalf("monthly stats: %v", err)
	}
	if len(buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		if b.Month != time.Month(i+1) {
			t.Fatalf("bucket %d has month %s", i, b.Month)
		}
		if b.NewMembers != 0 || b.CheckIns != 0 || !b.Revenue.IsZero() {
			t.Fatalf("bucket %s is not zero-filled: %+v", b.Month, b)
		}
	}
}

func TestMonthlyStatsBucketsByMonth(t *testing.T) {
	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	october := time.Date(2026, time.October, 2, 8, 0, 0, 0, time.UTC)
	repo := &stubStatsRepo{
		joins: []time.Time{march, march.AddDate(0, 0, 3), october},
		payments: []PaidPaymentRow{
			{PaidAt: march, Amount: decimal.NewFromInt(70)},
			{PaidAt: october, Amount: decimal.NewFromInt(55)},
			{PaidAt: october, Amount: decimal.NewFromInt(5)},
		},
		checkins: []time.Time{march, october, october, october},
	}
	svc, _ := NewService(repo)

	buckets, err := svc.MonthlyStats(context.Background(), 2026)
	if err != nil {
		t.Fatalf("monthly stats: %v", err)
	}

	marchBucket := buckets[time.March-1]
	if marchBucket.NewMembers != 2 || marchBucket.CheckIns != 1 || !marchBucket.Revenue.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("unexpected march bucket %+v", marchBucket)
	}
	octoberBucket := buckets[time.October-1]
	if octoberBucket.NewMembers != 1 || octoberBucket.CheckIns != 3 || !octoberBucket.Revenue.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected october bucket %+v", octoberBucket)
	}
	if june := buckets[time.June-1]; june.NewMembers != 0 || june.CheckIns != 0 || !june.Revenue.IsZero() {
		t.Fatalf("expected zero june bucket, got %+v", june)
	}
}

func TestMonthlyStatsRejectsBogusYear(t *testing.T) {
	svc, _ := NewService(&stubStatsRepo{})

	for _, year := range []int{0, 1987, 3000} {
		_, err := svc.MonthlyStats(context.Background(), year)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("year %d: expected validation error, got %v", year, err)
		}
	}
}

func TestAgeDistributionZeroFillsFixedBuckets(t *testing.T) {
	repo := &stubStatsRepo{distribution: []DistributionEntry{
		{Label: "26-35", Count: 7},
		{Label: "56+", Count: 2},
		{Label: "under-16", Count: 9},
	}}
	svc, _ := NewService(repo)

	rows, err := svc.AgeDistribution(context.Background())
	if err != nil {
		t.Fatalf("age distribution: %v", err)
	}

	want := []DistributionEntry{
		{Label: "16-25", Count: 0},
		{Label: "26-35", Count: 7},
		{Label: "36-45", Count: 0},
		{Label: "46-55", Count: 0},
		{Label: "56+", Count: 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestMembershipDistributionKeepsCanonicalOrder(t *testing.T) {
	repo := &stubStatsRepo{distribution: []DistributionEntry{
		{Label: "one_year", Count: 12},
		{Label: "one_month", Count: 3},
	}}
	svc, _ := NewService(repo)

	rows, err := svc.MembershipDistribution(context.Background())
	if err != nil {
		t.Fatalf("membership distribution: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 types, got %d", len(rows))
	}
	if rows[0].Label != "one_month" || rows[0].Count != 3 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[3].Label != "one_year" || rows[3].Count != 12 {
		t.Fatalf("unexpected last row %+v", rows[3])
	}
}

func TestOverviewSumsStatuses(t *testing.T) {
	repo := &stubStatsRepo{byStatus: map[string]int64{
		"active":        10,
		"expiring_soon": 4,
		"inactive":      2,
	}}
	svc, _ := NewService(repo)

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalMembers != 16 {
		t.Fatalf("expected 16 total, got %d", overview.TotalMembers)
	}
	if overview.ActiveMembers != 10 || overview.ExpiringSoon != 4 || overview.InactiveMembers != 2 {
		t.Fatalf("unexpected overview %+v", overview)
	}
}

func TestRecentActivitiesMergedNewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	memberID := uuid.New()
	member := models.Member{ID: memberID, FirstName: "Omar", LastName: "Haddad", JoinedAt: base.Add(-3 * time.Hour)}
	paidAt := base.Add(-1 * time.Hour)
	amount := decimal.NewFromInt(45)

	repo := &stubStatsRepo{
		members: []models.Member{member},
		paidRows: []models.Payment{{
			ID:       uuid.New(),
			MemberID: memberID,
			Amount:   amount,
			PaidAt:   &paidAt,
			Member:   &member,
		}},
		checkinRows: []models.CheckIn{{
			ID:          uuid.New(),
			MemberID:    memberID,
			CheckedInAt: base.Add(-2 * time.Hour),
			Member:      &member,
		}},
	}
	svc, _ := NewService(repo)

	feed, err := svc.RecentActivities(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent activities: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(feed))
	}
	if feed[0].Kind != ActivityPaymentPaid || feed[1].Kind != ActivityCheckIn || feed[2].Kind != ActivityMemberJoined {
		t.Fatalf("unexpected order: %s, %s, %s", feed[0].Kind, feed[1].Kind, feed[2].Kind)
	}
	if feed[0].Amount == nil || !feed[0].Amount.Equal(amount) {
		t.Fatalf("expected payment amount on feed entry, got %v", feed[0].Amount)
	}
	for _, entry := range feed {
		if entry.MemberName != "Omar Haddad" {
			t.Fatalf("expected member name on %s entry, got %q", entry.Kind, entry.MemberName)
		}
	}
}

func TestRecentActivitiesCapsLimit(t *testing.T) {
	base := time.Now().UTC()
	var members []models.Member
	for i := 0; i < 5; i++ {
		members = append(members, models.Member{
			ID:        uuid.New(),
			FirstName: "M",
			LastName:  "Ember",
			JoinedAt:  base.Add(-time.Duration(i) * time.Minute),
		})
	}
	svc, _ := NewService(&stubStatsRepo{members: members})

	feed, err := svc.RecentActivities(context.Background(), 3)
	if err != nil {
		t.Fatalf("recent activities: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected capped feed of 3, got %d", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].OccurredAt.After(feed[i-1].OccurredAt) {
			t.Fatal("feed is not sorted newest first")
		}
	}
}
