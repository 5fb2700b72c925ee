package http

import (
	"time"

	"provenance/internal/core/application/usecases/queries"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/core/domain/model/product"
)

// Error is the uniform JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateProductRequest is the body of POST /api/v1/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// TransitionCustodyRequest is the body of POST /api/v1/products/:id/transitions.
type TransitionCustodyRequest struct {
	Status     string `json:"status"`
	TransferTo string `json:"transfer_to,omitempty"`
	Location   string `json:"location,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. An empty ToUser
// lets the server pick any participant of the expected upstream role.
type CreateOrderRequest struct {
	ProductID string `json:"product_id"`
	ToUser    string `json:"to_user,omitempty"`
	Message   string `json:"message,omitempty"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ProductResponse mirrors a product aggregate on the wire.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Custodian   string    `json:"custodian"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryEntryResponse mirrors one custody history row on the wire.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	By        string    `json:"by"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

// ProductDetailResponse is a single-product read, with the custody history
// embedded when it was requested.
type ProductDetailResponse struct {
	ProductResponse
	History []HistoryEntryResponse `json:"history,omitempty"`
}

// OrderResponse mirrors an order on the wire. ProductName is only filled by
// listing endpoints that join against products.
type OrderResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	FromUser    string    `json:"from_user"`
	ToUser      string    `json:"to_user"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlockResponse mirrors an audit-ledger block on the wire.
type BlockResponse struct {
	Index        int            `json:"index"`
	Timestamp    float64        `json:"timestamp"`
	Data         map[string]any `json:"data"`
	PreviousHash string         `json:"previous_hash"`
	Hash         string         `json:"hash"`
}

// ChainResponse carries the full chain and its verification outcome.
type ChainResponse struct {
	Chain   []BlockResponse `json:"chain"`
	Length  int             `json:"length"`
	Valid   bool            `json:"valid"`
	Message string          `json:"message,omitempty"`
}

// TimelineEntryResponse is one normalized custody event of a product.
type TimelineEntryResponse struct {
	Status     string   `json:"status"`
	By         string   `json:"by"`
	Timestamp  float64  `json:"timestamp"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	BlockIndex int      `json:"block_index"`
}

// TimelineResponse is the audit-derived history of one product.
type TimelineResponse struct {
	ProductID           string                  `json:"product_id"`
	Timeline            []TimelineEntryResponse `json:"timeline"`
	Verified            bool                    `json:"verified"`
	VerificationMessage string                  `json:"verification_message,omitempty"`
}

// TransferPrefillResponse carries the values to prefill into the custody
// transfer that should follow an accepted order.
type TransferPrefillResponse struct {
	ProductID  string `json:"product_id"`
	TransferTo string `json:"transfer_to_username"`
}

// TransferHintResponse is the advisory next step returned when an order is
// accepted.
type TransferHintResponse struct {
	NextAction string                  `json:"next_action"`
	Prefill    TransferPrefillResponse `json:"prefill"`
}

// ProductWithBlockResponse is returned by commands that change a product and
// append an audit block in the same transaction.
type ProductWithBlockResponse struct {
	Product ProductResponse `json:"product"`
	Block   BlockResponse   `json:"block"`
}

// OrderWithBlockResponse is returned by POST /api/v1/orders.
type OrderWithBlockResponse struct {
	Order OrderResponse `json:"order"`
	Block BlockResponse `json:"block"`
}

// OrderDecisionResponse is returned by PATCH /api/v1/orders/:id/status.
// Block is absent when the call was an idempotent repeat that changed
// nothing; Hint is present only when the order was accepted.
type OrderDecisionResponse struct {
	Order OrderResponse         `json:"order"`
	Block *BlockResponse        `json:"block,omitempty"`
	Hint  *TransferHintResponse `json:"hint,omitempty"`
}

// DeletionResponse is returned by the admin removal endpoints.
type DeletionResponse struct {
	Block                  BlockResponse `json:"block"`
	CascadeDeletedProducts []string      `json:"cascade_deleted_products,omitempty"`
}

// UserResponse mirrors a registered participant on the wire.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Owner:       p.Owner(),
		Custodian:   p.Custodian(),
		Status:      p.Status().String(),
		CreatedAt:   p.CreatedAt(),
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID().String(),
		ProductID: o.ProductID().String(),
		FromUser:  o.FromUser(),
		ToUser:    o.ToUser(),
		Message:   o.Message(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toListedOrderResponse(row queries.ListOrdersQueryResponse) OrderResponse {
	return OrderResponse{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		FromUser:    row.FromUser,
		ToUser:      row.ToUser,
		Message:     row.Message,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toListedProductResponse(row queries.ListProductsQueryResponse) ProductResponse {
	return ProductResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Owner:       row.Owner,
		Custodian:   row.Custodian,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
	}
}

func toProductDetailResponse(row queries.GetProductQueryResponse) ProductDetailResponse {
	detail := ProductDetailResponse{
		ProductResponse: ProductResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Owner:       row.Owner,
			Custodian:   row.Custodian,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
		},
	}

	for _, entry := range row.History {
		detail.History = append(detail.History, HistoryEntryResponse{
			Status:    entry.Status,
			By:        entry.By,
			Timestamp: entry.Timestamp,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
		})
	}

	return detail
}

func toBlockResponse(b ledger.Block) BlockResponse {
	return BlockResponse{
		Index:        b.Index(),
		Timestamp:    b.Timestamp(),
		Data:         b.Data(),
		PreviousHash: b.PreviousHash(),
		Hash:         b.Hash(),
	}
}
