package queries

import (
	"context"
	"time"

	"provenance/internal/core/domain/model/identity"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order rows straight from the database,
// joining in the product name for display.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.product_id,
			COALESCE(p.name, ''),
			o.from_user,
			o.to_user,
			o.message,
			o.status,
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		WHERE 1 = 1
	`
	var args []any

	actor := query.Actor()
	if actor.Role() != identity.RoleSuperAdmin {
		switch query.Box() {
		case BoxSent:
			sql += " AND o.from_user = ?"
			args = append(args, actor.Username())
		case BoxReceived:
			sql += " AND o.to_user = ?"
			args = append(args, actor.Username())
		default:
			sql += " AND (o.from_user = ? OR o.to_user = ?)"
			args = append(args, actor.Username(), actor.Username())
		}
	}

	if query.Status() != nil {
		sql += " AND o.status = ?"
		args = append(args, query.Status().String())
	}

	sql += " ORDER BY o.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var resp ListOrdersQueryResponse
		var createdAt, updatedAt time.Time

		err = rows.Scan(
			&resp.ID,
			&resp.ProductID,
			&resp.ProductName,
			&resp.FromUser,
			&resp.ToUser,
			&resp.Message,
			&resp.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.CreatedAt = createdAt
		resp.UpdatedAt = updatedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
