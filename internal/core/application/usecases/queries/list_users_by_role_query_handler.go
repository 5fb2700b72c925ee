package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListUsersByRoleQueryHandler reads participant rows from the database.
type ListUsersByRoleQueryHandler struct {
	db *gorm.DB
}

// NewListUsersByRoleQueryHandler creates a handler for directory lookups.
func NewListUsersByRoleQueryHandler(db *gorm.DB) ListUsersByRoleQueryHandler {
	return ListUsersByRoleQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by username for stable
// picker output.
func (h ListUsersByRoleQueryHandler) Handle(ctx context.Context, query ListUsersByRoleQuery) ([]ListUsersByRoleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			username,
			role
		FROM users
		WHERE role = ?
		ORDER BY username
	`, query.Role().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]ListUsersByRoleQueryResponse, 0)
	for rows.Next() {
		var resp ListUsersByRoleQueryResponse

		if err = rows.Scan(&resp.ID, &resp.Username, &resp.Role); err != nil {
			return nil, err
		}

		users = append(users, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
