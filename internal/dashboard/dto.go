package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverviewDTO is the dashboard landing summary. Archived members are
// excluded from every figure.
type OverviewDTO struct {
	TotalMembers        int64           `json:"total_members"`
	ActiveMembers       int64           `json:"active_members"`
	ExpiringSoon        int64           `json:"expiring_soon"`
	InactiveMembers     int64           `json:"inactive_members"`
	NewMembersThisMonth int64           `json:"new_members_this_month"`
	CheckInsToday       int64           `json:"checkins_today"`
	RevenueThisMonth    decimal.Decimal `json:"revenue_this_month"`
	OutstandingTotal    decimal.Decimal `json:"outstanding_total"`
}

// MonthlyBucket is one month of the yearly stats series.
type MonthlyBucket struct {
	Month      time.Month      `json:"month"`
	NewMembers int64           `json:"new_members"`
	Revenue    decimal.Decimal `json:"revenue"`
	CheckIns   int64           `json:"checkins"`
}

// DistributionEntry is one slice of a categorical breakdown.
type DistributionEntry struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ActivityKind tags entries in the recent-activity feed.
type ActivityKind string

const (
	ActivityMemberJoined ActivityKind = "member_joined"
	ActivityPaymentPaid  ActivityKind = "payment_paid"
	ActivityCheckIn      ActivityKind = "checkin"
)

// ActivityDTO is one row of the merged recent-activity feed.
type ActivityDTO struct {
	Kind       ActivityKind     `json:"kind"`
	MemberID   uuid.UUID        `json:"member_id"`
	MemberName string           `json:"member_name"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// ageBuckets is the fixed histogram used by the age distribution. Members
// younger than the first bucket are not counted.
var ageBuckets = []string{"16-25", "26-35", "36-45", "46-55", "56+"}
