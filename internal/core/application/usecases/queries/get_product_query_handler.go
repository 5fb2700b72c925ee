package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"provenance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetProductQueryHandler reads a single product row from the database,
// optionally joined with its custody history in chronological order.
type GetProductQueryHandler struct {
	db *gorm.DB
}

// NewGetProductQueryHandler creates a handler for single-product reads.
func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// GetProductHistoryEntry is one custody history row embedded in a product
// read.
type GetProductHistoryEntry struct {
	Status    string
	By        string
	Timestamp time.Time
	Latitude  *float64
	Longitude *float64
}

// GetProductQueryResponse is the read-side shape of one product, with the
// history populated only when the query asked for it.
type GetProductQueryResponse struct {
	ID          string
	Name        string
	Description string
	Owner       string
	Custodian   string
	Status      string
	CreatedAt   time.Time
	History     []GetProductHistoryEntry
}

// Handle executes the query.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (GetProductQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			owner,
			custodian,
			status,
			created_at
		FROM products
		WHERE id = ?
	`, query.ProductID().Bytes()).Row()

	var resp GetProductQueryResponse
	err := row.Scan(
		&resp.ID,
		&resp.Name,
		&resp.Description,
		&resp.Owner,
		&resp.Custodian,
		&resp.Status,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProductQueryResponse{}, errs.NewObjectNotFoundError("productId", query.ProductID())
	}
	if err != nil {
		return GetProductQueryResponse{}, err
	}

	if !query.IncludeHistory() {
		return resp, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			by_who,
			timestamp,
			latitude,
			longitude
		FROM product_histories
		WHERE product_id = ?
		ORDER BY timestamp ASC
	`, query.ProductID().Bytes()).Rows()
	if err != nil {
		return GetProductQueryResponse{}, err
	}
	defer rows.Close()

	resp.History = make([]GetProductHistoryEntry, 0)
	for rows.Next() {
		var entry GetProductHistoryEntry

		err = rows.Scan(
			&entry.Status,
			&entry.By,
			&entry.Timestamp,
			&entry.Latitude,
			&entry.Longitude,
		)
		if err != nil {
			return GetProductQueryResponse{}, err
		}

		resp.History = append(resp.History, entry)
	}

	if err = rows.Err(); err != nil {
		return GetProductQueryResponse{}, err
	}

	return resp, nil
}
