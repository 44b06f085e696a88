package members

import (
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

// sortColumns whitelists the sortable member columns by their API names.
var sortColumns = map[string]string{
	"name":       "first_name",
	"email":      "email",
	"joined_at":  "joined_at",
	"expires_at": "expires_at",
	"created_at": "created_at",
}

// ListMembersInput captures the inputs needed to paginate, filter and sort
// the member list.
type ListMembersInput struct {
	Filters    Filters
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

// orderClause resolves the requested sort into a safe ORDER BY expression,
// falling back to newest-first.
func (in ListMembersInput) orderClause() string {
	column, ok := sortColumns[in.SortBy]
	if !ok {
		return "created_at DESC"
	}
	if in.SortOrder == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}
