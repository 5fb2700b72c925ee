// Package http exposes the custody tracker over a REST API.
// It translates HTTP requests into commands and queries and maps domain
// errors onto status codes; no business rules live here.
package http

import (
	"net/http"

	"provenance/internal/core/application/usecases/commands"
	"provenance/internal/core/application/usecases/queries"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/core/domain/model/product"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createProductHandler     commands.CreateProductCommandHandler
	transitionCustodyHandler commands.TransitionCustodyCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteProductHandler     commands.DeleteProductCommandHandler
	deleteUserHandler        commands.DeleteUserCommandHandler

	// Query handlers
	getChainHandler              queries.GetChainQueryHandler
	getProductHandler            queries.GetProductQueryHandler
	getProductTimelineHandler    queries.GetProductTimelineQueryHandler
	listProductsHandler          queries.ListProductsQueryHandler
	listOrderableProductsHandler queries.ListOrderableProductsQueryHandler
	listOrdersHandler            queries.ListOrdersQueryHandler
	getOrderHandler              queries.GetOrderQueryHandler
	listUsersByRoleHandler       queries.ListUsersByRoleQueryHandler
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(
	createProductHandler commands.CreateProductCommandHandler,
	transitionCustodyHandler commands.TransitionCustodyCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteProductHandler commands.DeleteProductCommandHandler,
	deleteUserHandler commands.DeleteUserCommandHandler,
	getChainHandler queries.GetChainQueryHandler,
	getProductHandler queries.GetProductQueryHandler,
	getProductTimelineHandler queries.GetProductTimelineQueryHandler,
	listProductsHandler queries.ListProductsQueryHandler,
	listOrderableProductsHandler queries.ListOrderableProductsQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listUsersByRoleHandler queries.ListUsersByRoleQueryHandler,
) *Server {
	return &Server{
		createProductHandler:         createProductHandler,
		transitionCustodyHandler:     transitionCustodyHandler,
		createOrderHandler:           createOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		deleteProductHandler:         deleteProductHandler,
		deleteUserHandler:            deleteUserHandler,
		getChainHandler:              getChainHandler,
		getProductHandler:            getProductHandler,
		getProductTimelineHandler:    getProductTimelineHandler,
		listProductsHandler:          listProductsHandler,
		listOrderableProductsHandler: listOrderableProductsHandler,
		listOrdersHandler:            listOrdersHandler,
		getOrderHandler:              getOrderHandler,
		listUsersByRoleHandler:       listUsersByRoleHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.GetProducts)
	api.GET("/products/orderable", s.GetOrderableProducts)
	api.GET("/products/:id", s.GetProduct)
	api.POST("/products/:id/transitions", s.TransitionCustody)
	api.GET("/products/:id/timeline", s.GetProductTimeline)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)

	api.GET("/chain", s.GetChain)

	api.GET("/users", s.GetUsersByRole)
	api.DELETE("/users/:username", s.DeleteUser)
}

// CreateProduct handles POST /api/v1/products - registers a new product.
func (s *Server) CreateProduct(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	location, err := kernel.ParseGeoPoint(req.Location)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), req.Name, req.Description, actor, location)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ProductWithBlockResponse{
		Product: toProductResponse(result.Product),
		Block:   toBlockResponse(result.Block),
	})
}

// GetProducts handles GET /api/v1/products - lists products visible to the
// caller.
func (s *Server) GetProducts(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListProductsQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ProductResponse, len(rows))
	for i, row := range rows {
		response[i] = toListedProductResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderableProducts handles GET /api/v1/products/orderable - lists
// products held by the caller's upstream role, optionally narrowed to one
// supplier.
func (s *Server) GetOrderableProducts(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListOrderableProductsQuery(actor, ctx.QueryParam("supplier"))
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listOrderableProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ProductResponse, len(rows))
	for i, row := range rows {
		response[i] = toListedProductResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/v1/products/:id - returns one product,
// embedding its custody history when include_history is set.
func (s *Server) GetProduct(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	includeHistory := false
	switch ctx.QueryParam("include_history") {
	case "1", "true", "yes":
		includeHistory = true
	}

	query, err := queries.NewGetProductQuery(productID, includeHistory)
	if err != nil {
		return respondError(ctx, err)
	}

	row, err := s.getProductHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toProductDetailResponse(row))
}

// TransitionCustody handles POST /api/v1/products/:id/transitions - advances
// a product along the custody lifecycle.
func (s *Server) TransitionCustody(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionCustodyRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := product.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	location, err := kernel.ParseGeoPoint(req.Location)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionCustodyCommand(productID, target, actor, req.TransferTo, location)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionCustodyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ProductWithBlockResponse{
		Product: toProductResponse(result.Product),
		Block:   toBlockResponse(result.Block),
	})
}

// GetProductTimeline handles GET /api/v1/products/:id/timeline - returns the
// audit-derived custody timeline of one product.
func (s *Server) GetProductTimeline(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetProductTimelineQuery(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getProductTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	timeline := make([]TimelineEntryResponse, len(result.Timeline))
	for i, entry := range result.Timeline {
		timeline[i] = TimelineEntryResponse{
			Status:     entry.Status,
			By:         entry.By,
			Timestamp:  entry.Timestamp,
			Latitude:   entry.Latitude,
			Longitude:  entry.Longitude,
			BlockIndex: entry.RawBlockIndex,
		}
	}

	return ctx.JSON(http.StatusOK, TimelineResponse{
		ProductID:           result.ProductID,
		Timeline:            timeline,
		Verified:            result.Verified,
		VerificationMessage: result.VerificationMessage,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id - admin-only removal.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	productID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteProductCommand(productID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.deleteProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeletionResponse{
		Block: toBlockResponse(result.Block),
	})
}

// CreateOrder handles POST /api/v1/orders - places a bottom-up order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), productID, actor, req.ToUser, req.Message)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderWithBlockResponse{
		Order: toOrderResponse(result.Order),
		Block: toBlockResponse(result.Block),
	})
}

// GetOrders handles GET /api/v1/orders - lists the caller's orders with
// optional box (all, sent, received) and status filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	box := ctx.QueryParam("box")
	if box == "" {
		box = queries.BoxAll
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(actor, box, statusFilter)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(rows))
	for i, row := range rows {
		response[i] = toListedOrderResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - returns one order visible to
// its participants or an admin.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	row, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListedOrderResponse(row))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - the recipient
// (or an admin) decides an order. Accepting returns a transfer hint.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor, target)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := OrderDecisionResponse{Order: toOrderResponse(result.Order)}
	if result.Block != nil {
		block := toBlockResponse(*result.Block)
		response.Block = &block
	}
	if result.Hint != nil {
		response.Hint = &TransferHintResponse{
			NextAction: result.Hint.NextAction,
			Prefill: TransferPrefillResponse{
				ProductID:  result.Hint.Prefill.ProductID.String(),
				TransferTo: result.Hint.Prefill.TransferToUsername,
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetChain handles GET /api/v1/chain - returns the full audit chain with
// its verification outcome.
func (s *Server) GetChain(ctx echo.Context) error {
	result, err := s.getChainHandler.Handle(ctx.Request().Context(), queries.NewGetChainQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	blocks := make([]BlockResponse, len(result.Blocks))
	for i, b := range result.Blocks {
		blocks[i] = BlockResponse{
			Index:        b.Index,
			Timestamp:    b.Timestamp,
			Data:         b.Data,
			PreviousHash: b.PreviousHash,
			Hash:         b.Hash,
		}
	}

	return ctx.JSON(http.StatusOK, ChainResponse{
		Chain:   blocks,
		Length:  result.Length,
		Valid:   result.Valid,
		Message: result.Message,
	})
}

// GetUsersByRole handles GET /api/v1/users - lists participants of a role.
func (s *Server) GetUsersByRole(ctx echo.Context) error {
	role, err := identity.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewListUsersByRoleQuery(role)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listUsersByRoleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]UserResponse, len(rows))
	for i, row := range rows {
		response[i] = UserResponse{ID: row.ID, Username: row.Username, Role: row.Role}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteUser handles DELETE /api/v1/users/:username - admin-only removal of
// a participant and their products.
func (s *Server) DeleteUser(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteUserCommand(ctx.Param("username"), actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.deleteUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeletionResponse{
		Block:                  toBlockResponse(result.Block),
		CascadeDeletedProducts: result.CascadeDeletedProducts,
	})
}
