package members

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// FilterAll is the wildcard value accepted for status and membership type.
const FilterAll = "all"

// Filters describe the supported member list filter knobs. The SQL clause
// builder and the in-memory predicate both live here so the two can never
// disagree about what matches.
type Filters struct {
	Search         string
	Status         string
	MembershipType string
}

// Normalize trims and lowercases the filter inputs, mapping empty selectors
// to the wildcard.
func (f Filters) Normalize() Filters {
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.MembershipType = strings.ToLower(strings.TrimSpace(f.MembershipType))
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.MembershipType == "" {
		f.MembershipType = FilterAll
	}
	return f
}

// Validate rejects unknown status or membership type selectors.
func (f Filters) Validate() error {
	if f.Status != FilterAll {
		if _, err := enums.ParseMemberStatus(f.Status); err != nil {
			return fmt.Errorf("invalid status filter %q", f.Status)
		}
	}
	if f.MembershipType != FilterAll {
		if _, err := enums.ParseMembershipType(f.MembershipType); err != nil {
			return fmt.Errorf("invalid membership type filter %q", f.MembershipType)
		}
	}
	return nil
}

// ApplyToQuery adds the filter clauses to a members query. Filters must be
// normalized first.
func (f Filters) ApplyToQuery(q *gorm.DB) *gorm.DB {
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if f.Status == FilterAll {
		q = q.Where("status <> ?", enums.MemberStatusArchived)
	} else {
		q = q.Where("status = ?", f.Status)
	}
	if f.MembershipType != FilterAll {
		q = q.Where("membership_type = ?", f.MembershipType)
	}
	return q
}

// Matches reports whether a member satisfies the filters in memory. It is the
// predicate twin of ApplyToQuery. Filters must be normalized first.
func (f Filters) Matches(m *models.Member) bool {
	if m == nil {
		return false
	}
	if f.Search != "" && !searchMatches(f.Search, m) {
		return false
	}
	if f.Status == FilterAll {
		if m.Status.IsArchived() {
			return false
		}
	} else if m.Status.String() != f.Status {
		return false
	}
	if f.MembershipType != FilterAll && m.MembershipType.String() != f.MembershipType {
		return false
	}
	return true
}

// searchMatches mirrors the columns ApplyToQuery searches: first name, last
// name, the space-joined full name, email, and phone.
func searchMatches(search string, m *models.Member) bool {
	fields := []string{
		m.FirstName,
		m.LastName,
		m.FirstName + " " + m.LastName,
		m.Email,
		m.Phone,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// likePattern wraps the search term for a LIKE clause, escaping the wildcard
// characters so user input matches literally.
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(search)
	return "%" + escaped + "%"
}
