package enums

import "fmt"

// MemberStatus captures the membership lifecycle. Every status except
// archived is derived from the expiry date; archived is a manual,
// terminal override that only an explicit restore can leave.
type MemberStatus string

const (
	MemberStatusActive       MemberStatus = "active"
	MemberStatusInactive     MemberStatus = "inactive"
	MemberStatusExpiringSoon MemberStatus = "expiring_soon"
	MemberStatusArchived     MemberStatus = "archived"
)

var validMemberStatuses = []MemberStatus{
	MemberStatusActive,
	MemberStatusInactive,
	MemberStatusExpiringSoon,
	MemberStatusArchived,
}

// MemberStatuses returns every known status.
func MemberStatuses() []MemberStatus {
	out := make([]MemberStatus, len(validMemberStatuses))
	copy(out, validMemberStatuses)
	return out
}

// IsArchived reports whether the status is the terminal archive state.
func (m MemberStatus) IsArchived() bool {
	return m == MemberStatusArchived
}

// CanArchive reports whether the status may transition into archived.
// Any live status may; archiving an archived member is rejected upstream.
func (m MemberStatus) CanArchive() bool {
	return m.IsValid() && !m.IsArchived()
}

// String implements fmt.Stringer.
func (m MemberStatus) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MemberStatus.
func (m MemberStatus) IsValid() bool {
	for _, candidate := range validMemberStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberStatus converts raw input into a MemberStatus.
func ParseMemberStatus(value string) (MemberStatus, error) {
	for _, candidate := range validMemberStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member status %q", value)
}
