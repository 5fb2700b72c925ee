package queries

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/services"
	"provenance/internal/pkg/errs"
)

// GetProductTimelineQueryHandler builds a product's timeline from its audit
// blocks. Blocks were written by different operations with different payload
// shapes; the handler normalizes them so readers always get the same fields.
type GetProductTimelineQueryHandler struct {
	auditLedger *services.AuditLedger
}

// NewGetProductTimelineQueryHandler creates a handler for timeline queries.
func NewGetProductTimelineQueryHandler(auditLedger *services.AuditLedger) GetProductTimelineQueryHandler {
	return GetProductTimelineQueryHandler{auditLedger: auditLedger}
}

// Handle executes the query. Like the chain query, integrity violations are
// reported in the response rather than failing the read.
func (h GetProductTimelineQueryHandler) Handle(_ context.Context, query GetProductTimelineQuery) (GetProductTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductTimelineQueryResponse{}, err
	}

	blocks, err := h.auditLedger.BlocksForProduct(query.ProductID().String())
	if err != nil {
		return GetProductTimelineQueryResponse{}, err
	}

	// every product registration writes a block, so an identifier with no
	// blocks at all was never a product
	if len(blocks) == 0 {
		return GetProductTimelineQueryResponse{}, errs.NewObjectNotFoundError("productId", query.ProductID())
	}

	response := GetProductTimelineQueryResponse{
		ProductID: query.ProductID().String(),
		Timeline:  make([]TimelineEntry, 0, len(blocks)),
		Verified:  true,
	}
	for _, block := range blocks {
		response.Timeline = append(response.Timeline, NormalizeTimelineEntry(block))
	}

	if verifyErr := h.auditLedger.Verify(); verifyErr != nil {
		var integrityErr *errs.ChainIntegrityError
		if !errors.As(verifyErr, &integrityErr) {
			return GetProductTimelineQueryResponse{}, verifyErr
		}
		response.Verified = false
		response.VerificationMessage = integrityErr.Error()
	}

	return response, nil
}

// NormalizeTimelineEntry maps one audit block onto the uniform timeline
// shape. Payloads written by different operations name their fields
// differently; the entry's status falls back from status to action to the
// event type tag, and the actor falls back across every historically used
// key.
func NormalizeTimelineEntry(block ledger.Block) TimelineEntry {
	data := block.Data()

	entry := TimelineEntry{
		Status:        firstString(data, "status", "action", "type"),
		By:            firstString(data, "by", "by_who", "actor", "username", "owner", "initial_custodian"),
		Timestamp:     block.Timestamp(),
		RawBlockIndex: block.Index(),
	}

	if ts, ok := toFloat(data["timestamp"]); ok {
		entry.Timestamp = ts
	}
	if lat, ok := toFloat(data["latitude"]); ok {
		entry.Latitude = &lat
	}
	if lon, ok := toFloat(data["longitude"]); ok {
		entry.Longitude = &lon
	}

	// older blocks carried coordinates as a "lat,lon" string
	if entry.Latitude == nil || entry.Longitude == nil {
		if loc, ok := data["location"].(string); ok {
			lat, lon, ok := parseLocationString(loc)
			if ok {
				entry.Latitude = lat
				entry.Longitude = lon
			}
		}
	}

	return entry
}

// firstString returns the first of the given keys whose value is a non-empty
// string.
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// toFloat accepts the numeric shapes a JSON payload may carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// parseLocationString splits a "lat,lon" pair. Either side may be empty or
// "N/A", yielding nil for that coordinate.
func parseLocationString(loc string) (*float64, *float64, bool) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return nil, nil, false
	}

	parse := func(s string) *float64 {
		s = strings.TrimSpace(s)
		if s == "" || s == "N/A" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}

	return parse(parts[0]), parse(parts[1]), true
}
