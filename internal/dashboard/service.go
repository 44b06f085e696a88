package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 50
)

type statsRepository interface {
	CountMembersByStatus(ctx context.Context) (map[string]int64, error)
	CountMembersJoinedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountCheckInsBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
	MemberJoinDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	PaidPaymentsBetween(ctx context.Context, from, to time.Time) ([]PaidPaymentRow, error)
	CheckInDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
	MembershipDistribution(ctx context.Context) ([]DistributionEntry, error)
	GenderDistribution(ctx context.Context) ([]DistributionEntry, error)
	AgeDistribution(ctx context.Context) ([]DistributionEntry, error)
	RecentMembers(ctx context.Context, limit int) ([]models.Member, error)
	RecentPaidPayments(ctx context.Context, limit int) ([]models.Payment, error)
	RecentCheckIns(ctx context.Context, limit int) ([]models.CheckIn, error)
}

// Service exposes the dashboard statistics.
type Service interface {
	Overview(ctx context.Context) (*OverviewDTO, error)
	MonthlyStats(ctx context.Context, year int) ([]MonthlyBucket, error)
	MembershipDistribution(ctx context.Context) ([]DistributionEntry, error)
	GenderDistribution(ctx context.Context) ([]DistributionEntry, error)
	AgeDistribution(ctx context.Context) ([]DistributionEntry, error)
	RecentActivities(ctx context.Context, limit int) ([]ActivityDTO, error)
}

type service struct {
	repo statsRepository
	now  func() time.Time
}

// NewService builds a dashboard service with the provided repository.
func NewService(repo statsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Overview(ctx context.Context) (*OverviewDTO, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	byStatus, err := s.repo.CountMembersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count members")
	}

	overview := &OverviewDTO{
		ActiveMembers:   byStatus[enums.MemberStatusActive.String()],
		ExpiringSoon:    byStatus[enums.MemberStatusExpiringSoon.String()],
		InactiveMembers: byStatus[enums.MemberStatusInactive.String()],
	}
	for _, count := range byStatus {
		overview.TotalMembers += count
	}

	if overview.NewMembersThisMonth, err = s.repo.CountMembersJoinedBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count new members")
	}
	if overview.CheckInsToday, err = s.repo.CountCheckInsBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count check-ins")
	}
	if overview.RevenueThisMonth, err = s.repo.SumRevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	if overview.OutstandingTotal, err = s.repo.SumOutstanding(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum outstanding")
	}
	return overview, nil
}

// MonthlyStats returns exactly twelve buckets, January through December, for
// the requested year. Months with no activity are zero-filled.
func (s *service) MonthlyStats(ctx context.Context, year int) ([]MonthlyBucket, error) {
	if year < 2000 || year > 2100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid year %d", year))
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	buckets := make([]MonthlyBucket, 12)
	for i := range buckets {
		buckets[i] = MonthlyBucket{Month: time.Month(i + 1), Revenue: decimal.Zero}
	}

	joins, err := s.repo.MemberJoinDatesBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member joins")
	}
	for _, at := range joins {
		buckets[at.UTC().Month()-1].NewMembers++
	}

	payments, err := s.repo.PaidPaymentsBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load paid payments")
	}
	for _, row := range payments {
		i := row.PaidAt.UTC().Month() - 1
		buckets[i].Revenue = buckets[i].Revenue.Add(row.Amount)
	}

	checkins, err := s.repo.CheckInDatesBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load check-ins")
	}
	for _, at := range checkins {
		buckets[at.UTC().Month()-1].CheckIns++
	}

	return buckets, nil
}

func (s *service) MembershipDistribution(ctx context.Context) ([]DistributionEntry, error) {
	rows, err := s.repo.MembershipDistribution(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership distribution")
	}
	return fillDistribution(rows, membershipLabels()), nil
}

func (s *service) GenderDistribution(ctx context.Context) ([]DistributionEntry, error) {
	rows, err := s.repo.GenderDistribution(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gender distribution")
	}
	return fillDistribution(rows, genderLabels()), nil
}

// AgeDistribution always returns the five fixed buckets in ascending order.
func (s *service) AgeDistribution(ctx context.Context) ([]DistributionEntry, error) {
	rows, err := s.repo.AgeDistribution(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load age distribution")
	}
	return fillDistribution(rows, ageBuckets), nil
}

// RecentActivities merges the latest joins, settled payments and check-ins
// into one feed, newest first.
func (s *service) RecentActivities(ctx context.Context, limit int) ([]ActivityDTO, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	feed := make([]ActivityDTO, 0, 3*limit)

	members, err := s.repo.RecentMembers(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent members")
	}
	for i := range members {
		m := &members[i]
		feed = append(feed, ActivityDTO{
			Kind:       ActivityMemberJoined,
			MemberID:   m.ID,
			MemberName: m.FullName(),
			OccurredAt: m.JoinedAt,
		})
	}

	payments, err := s.repo.RecentPaidPayments(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent payments")
	}
	for i := range payments {
		p := &payments[i]
		if p.PaidAt == nil {
			continue
		}
		amount := p.Amount
		entry := ActivityDTO{
			Kind:       ActivityPaymentPaid,
			MemberID:   p.MemberID,
			Amount:     &amount,
			OccurredAt: *p.PaidAt,
		}
		if p.Member != nil {
			entry.MemberName = p.Member.FullName()
		}
		feed = append(feed, entry)
	}

	checkins, err := s.repo.RecentCheckIns(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent check-ins")
	}
	for i := range checkins {
		c := &checkins[i]
		entry := ActivityDTO{
			Kind:       ActivityCheckIn,
			MemberID:   c.MemberID,
			OccurredAt: c.CheckedInAt,
		}
		if c.Member != nil {
			entry.MemberName = c.Member.FullName()
		}
		feed = append(feed, entry)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].OccurredAt.After(feed[j].OccurredAt)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

// fillDistribution zero-fills missing labels and fixes their order, dropping
// anything outside the known label set.
func fillDistribution(rows []DistributionEntry, labels []string) []DistributionEntry {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Label] = row.Count
	}
	out := make([]DistributionEntry, 0, len(labels))
	for _, label := range labels {
		out = append(out, DistributionEntry{Label: label, Count: counts[label]})
	}
	return out
}

func membershipLabels() []string {
	types := enums.MembershipTypes()
	labels := make([]string, 0, len(types))
	for _, t := range types {
		labels = append(labels, t.String())
	}
	return labels
}

func genderLabels() []string {
	return []string{
		enums.GenderMale.String(),
		enums.GenderFemale.String(),
		enums.GenderOther.String(),
	}
}
