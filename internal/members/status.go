package members

import (
	"time"

	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// expiringSoonWindow is how far ahead of expiry a member is flagged.
const expiringSoonWindow = 30 * 24 * time.Hour

// DeriveStatus computes the effective membership status from the expiry date.
// Archived is a manual override and is never recomputed away; callers must go
// through Restore to bring an archived member back.
func DeriveStatus(current enums.MemberStatus, expiresAt, now time.Time) enums.MemberStatus {
	if current.IsArchived() {
		return enums.MemberStatusArchived
	}
	if !expiresAt.After(now) {
		return enums.MemberStatusInactive
	}
	if !expiresAt.After(now.Add(expiringSoonWindow)) {
		return enums.MemberStatusExpiringSoon
	}
	return enums.MemberStatusActive
}
