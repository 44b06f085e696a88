package enums

import "fmt"

// MembershipType is the plan duration a member signed up for.
type MembershipType string

const (
	MembershipTypeOneMonth   MembershipType = "one_month"
	MembershipTypeThreeMonth MembershipType = "three_month"
	MembershipTypeSixMonth   MembershipType = "six_month"
	MembershipTypeOneYear    MembershipType = "one_year"
)

var validMembershipTypes = []MembershipType{
	MembershipTypeOneMonth,
	MembershipTypeThreeMonth,
	MembershipTypeSixMonth,
	MembershipTypeOneYear,
}

// MembershipTypes returns every known plan, in duration order.
func MembershipTypes() []MembershipType {
	out := make([]MembershipType, len(validMembershipTypes))
	copy(out, validMembershipTypes)
	return out
}

// Months returns the plan duration in calendar months.
func (m MembershipType) Months() int {
	switch m {
	case MembershipTypeOneMonth:
		return 1
	case MembershipTypeThreeMonth:
		return 3
	case MembershipTypeSixMonth:
		return 6
	case MembershipTypeOneYear:
		return 12
	}
	return 0
}

// String implements fmt.Stringer.
func (m MembershipType) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipType.
func (m MembershipType) IsValid() bool {
	for _, candidate := range validMembershipTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipType converts raw input into a MembershipType.
func ParseMembershipType(value string) (MembershipType, error) {
	for _, candidate := range validMembershipTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership type %q", value)
}
