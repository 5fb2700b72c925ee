package queries

import (
	"context"
	"fmt"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrderableProductsQueryHandler reads the actor's bottom-up availability
// view: products currently held by identities of the actor's upstream role.
type ListOrderableProductsQueryHandler struct {
	db *gorm.DB
}

// NewListOrderableProductsQueryHandler creates a handler for availability
// queries.
func NewListOrderableProductsQueryHandler(db *gorm.DB) ListOrderableProductsQueryHandler {
	return ListOrderableProductsQueryHandler{db: db}
}

// Handle executes the query.
func (h ListOrderableProductsQueryHandler) Handle(ctx context.Context, query ListOrderableProductsQuery) ([]ListProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()

	sql := `
		SELECT
			p.id,
			p.name,
			p.description,
			p.owner,
			p.custodian,
			p.status,
			p.created_at
		FROM products p
	`
	var args []any

	switch actor.Role() {
	case identity.RoleRetailer:
		sql += " JOIN users u ON u.username = p.custodian WHERE u.role = ?"
		args = append(args, identity.RoleDistributor.String())
	case identity.RoleDistributor:
		sql += " JOIN users u ON u.username = p.custodian WHERE u.role = ?"
		args = append(args, identity.RoleManufacturer.String())
	case identity.RoleManufacturer:
		sql += " WHERE p.custodian = ?"
		args = append(args, actor.Username())
	default:
		return nil, errs.NewAuthorizationError(actor.Username(),
			fmt.Sprintf("role '%s' has no availability view", actor.Role()))
	}

	if query.Supplier() != "" {
		sql += " AND p.custodian = ?"
		args = append(args, query.Supplier())
	}

	sql += " ORDER BY p.created_at DESC"

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
