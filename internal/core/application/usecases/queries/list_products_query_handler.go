package queries

import (
	"context"

	"provenance/internal/core/domain/model/identity"

	"gorm.io/gorm"
)

// ListProductsQueryHandler reads product rows straight from the database
// with role-scoped visibility.
type ListProductsQueryHandler struct {
	db *gorm.DB
}

// NewListProductsQueryHandler creates a handler for product listings.
func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db}
}

// Handle executes the query. Distributors see products they currently hold
// plus those they handled earlier, found through the history's actor column.
func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ListProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			name,
			description,
			owner,
			custodian,
			status,
			created_at
		FROM products
	`
	var args []any

	actor := query.Actor()
	switch actor.Role() {
	case identity.RoleSuperAdmin:
		// no filter
	case identity.RoleDistributor:
		sql += `
		WHERE owner = ? OR custodian = ?
			OR id IN (SELECT product_id FROM product_histories WHERE by_who = ?)
		`
		args = append(args, actor.Username(), actor.Username(), actor.Username())
	default:
		sql += " WHERE owner = ? OR custodian = ?"
		args = append(args, actor.Username(), actor.Username())
	}

	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ListProductsQueryResponse, 0)
	for rows.Next() {
		var resp ListProductsQueryResponse

		err = rows.Scan(
			&resp.ID,
			&resp.Name,
			&resp.Description,
			&resp.Owner,
			&resp.Custodian,
			&resp.Status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		products = append(products, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
