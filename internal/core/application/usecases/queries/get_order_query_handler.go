package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row from the database and
// enforces the participant-or-admin read gate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var resp ListOrdersQueryResponse
	var createdAt, updatedAt time.Time
	err := row.Scan(
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
	if errors.Is(err, sql.ErrNoRows) {
		return ListOrdersQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	resp.CreatedAt = createdAt
	resp.UpdatedAt = updatedAt

	actor := query.Actor()
	if actor.Role() != identity.RoleSuperAdmin &&
		actor.Username() != resp.FromUser && actor.Username() != resp.ToUser {
		return ListOrdersQueryResponse{}, errs.NewAuthorizationError(actor.Username(),
			fmt.Sprintf("only the order's participants can read order '%s'", resp.ID))
	}

	return resp, nil
}
