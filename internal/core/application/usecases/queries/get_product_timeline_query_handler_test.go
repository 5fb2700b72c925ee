package queries_test

import (
	"testing"

	"provenance/internal/core/application/usecases/queries"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductTimelineQueryHandler_Handle(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("collects only the product's blocks in chain order", func(t *testing.T) {
		chain := buildFixtureChain(t,
			map[string]any{"type": "create_product", "product_id": productID.String(), "owner": "acme"},
			map[string]any{"type": "create_product", "product_id": "other"},
			map[string]any{"type": "status_update", "product_id": productID.String(), "status": "Shipped", "by": "acme"},
		)
		h := queries.NewGetProductTimelineQueryHandler(ledgerFromChain(t, chain))
		query, err := queries.NewGetProductTimelineQuery(productID)
		require.NoError(t, err)

		response, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.True(t, response.Verified)
		require.Len(t, response.Timeline, 2)
		assert.Equal(t, 1, response.Timeline[0].RawBlockIndex)
		assert.Equal(t, 3, response.Timeline[1].RawBlockIndex)
		assert.Equal(t, "Shipped", response.Timeline[1].Status)
		assert.Equal(t, "acme", response.Timeline[1].By)
	})

	t.Run("identifier with no blocks reports not found", func(t *testing.T) {
		chain := buildFixtureChain(t,
			map[string]any{"type": "create_product", "product_id": "other"},
		)
		h := queries.NewGetProductTimelineQueryHandler(ledgerFromChain(t, chain))
		query, err := queries.NewGetProductTimelineQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("verification outcome is carried alongside the timeline", func(t *testing.T) {
		chain := buildFixtureChain(t,
			map[string]any{"type": "create_product", "product_id": productID.String()},
		)
		tampered, err := ledger.RestoreBlock(1, chain[1].Timestamp(),
			map[string]any{"type": "forged", "product_id": productID.String()},
			chain[1].PreviousHash(), chain[1].Hash())
		require.NoError(t, err)
		chain[1] = tampered
		h := queries.NewGetProductTimelineQueryHandler(ledgerFromChain(t, chain))
		query, err := queries.NewGetProductTimelineQuery(productID)
		require.NoError(t, err)

		response, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.False(t, response.Verified)
		assert.Contains(t, response.VerificationMessage, "hash mismatch")
		require.Len(t, response.Timeline, 1)
	})
}

func TestNormalizeTimelineEntry(t *testing.T) {
	newBlockWithData := func(t *testing.T, data map[string]any) ledger.Block {
		t.Helper()
		block, err := ledger.NewBlock(7, 1700000000.5, data, "prev")
		require.NoError(t, err)
		return block
	}

	t.Run("status falls back from status to action to type", func(t *testing.T) {
		withStatus := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"status": "Shipped", "action": "ignored", "type": "status_update",
		}))
		withAction := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"action": "transfer", "type": "custody_transfer",
		}))
		withType := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"type": "create_product",
		}))

		assert.Equal(t, "Shipped", withStatus.Status)
		assert.Equal(t, "transfer", withAction.Status)
		assert.Equal(t, "create_product", withType.Status)
	})

	t.Run("actor falls back across every historical key", func(t *testing.T) {
		for key, want := range map[string]string{
			"by":                "a",
			"by_who":            "b",
			"actor":             "c",
			"username":          "d",
			"owner":             "e",
			"initial_custodian": "f",
		} {
			entry := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{key: want}))
			assert.Equal(t, want, entry.By, "key %s", key)
		}
	})

	t.Run("payload timestamp wins over block timestamp", func(t *testing.T) {
		entry := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"timestamp": 1600000000.25,
		}))
		assert.Equal(t, 1600000000.25, entry.Timestamp)

		withoutPayloadTS := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{}))
		assert.Equal(t, 1700000000.5, withoutPayloadTS.Timestamp)
	})

	t.Run("explicit coordinates are preferred", func(t *testing.T) {
		entry := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"latitude": 48.2, "longitude": 16.37, "location": "0,0",
		}))

		require.NotNil(t, entry.Latitude)
		require.NotNil(t, entry.Longitude)
		assert.Equal(t, 48.2, *entry.Latitude)
		assert.Equal(t, 16.37, *entry.Longitude)
	})

	t.Run("location string is parsed as lat,lon", func(t *testing.T) {
		entry := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"location": "48.2,16.37",
		}))

		require.NotNil(t, entry.Latitude)
		require.NotNil(t, entry.Longitude)
		assert.Equal(t, 48.2, *entry.Latitude)
		assert.Equal(t, 16.37, *entry.Longitude)
	})

	t.Run("empty and N/A location parts yield nil coordinates", func(t *testing.T) {
		entry := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"location": "N/A,16.37",
		}))

		assert.Nil(t, entry.Latitude)
		require.NotNil(t, entry.Longitude)
		assert.Equal(t, 16.37, *entry.Longitude)

		malformed := queries.NormalizeTimelineEntry(newBlockWithData(t, map[string]any{
			"location": "somewhere",
		}))
		assert.Nil(t, malformed.Latitude)
		assert.Nil(t, malformed.Longitude)
	})
}
