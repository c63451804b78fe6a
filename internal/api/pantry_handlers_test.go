package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPantryEntry_CreatesEntry(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ingID := ts.createTestIngredient(t, "lentils")

	resp := ts.api.Put("/api/v1/pantry/"+ingID, map[string]any{
		"quantity": 500,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[PantryEntryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, ingID, envelope.Data.IngredientID)
	require.NotNil(t, envelope.Data.Quantity)
	assert.InDelta(t, 500, *envelope.Data.Quantity, 0.001)
}

func TestSetPantryEntry_PresenceOnly(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ingID := ts.createTestIngredient(t, "soy sauce")

	// No quantity means "have some".
	resp := ts.api.Put("/api/v1/pantry/"+ingID, map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[PantryEntryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Data.Quantity)
}

func TestSetPantryEntry_UnknownIngredient(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/pantry/ing_nonexistent", map[string]any{})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListPantry_ReturnsEntries(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.createTestIngredient(t, "flour")
	second := ts.createTestIngredient(t, "sugar")

	for _, ingID := range []string{first, second} {
		resp := ts.api.Put("/api/v1/pantry/"+ingID, map[string]any{})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/pantry")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListPantryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Entries, 2)
}

func TestRemovePantryEntry_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ingID := ts.createTestIngredient(t, "butter")

	resp := ts.api.Put("/api/v1/pantry/"+ingID, map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/pantry/" + ingID)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/pantry")
	var envelope testEnvelope[ListPantryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Entries)
}

func TestRemovePantryEntry_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Delete("/api/v1/pantry/ing_nonexistent")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTransferToPantry_AddsOntoExisting(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ingID := ts.createTestIngredient(t, "rice")

	resp := ts.api.Put("/api/v1/pantry/"+ingID, map[string]any{"quantity": 200})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/pantry/transfer", map[string]any{
		"items": []map[string]any{
			{"ingredient_id": ingID, "quantity": 300},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/pantry")
	var envelope testEnvelope[ListPantryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Entries, 1)
	require.NotNil(t, envelope.Data.Entries[0].Quantity)
	assert.InDelta(t, 500, *envelope.Data.Entries[0].Quantity, 0.001)
}

func TestTransferToPantry_EmptyItemsRejected(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/pantry/transfer", map[string]any{
		"items": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTransferToPantry_IsUndoable(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ingID := ts.createTestIngredient(t, "pasta")

	resp := ts.api.Post("/api/v1/pantry/transfer", map[string]any{
		"items": []map[string]any{
			{"ingredient_id": ingID, "quantity": 400},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// Undo removes the transferred entry again.
	resp = ts.api.Post("/api/v1/undo", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var undoEnvelope testEnvelope[UndoResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &undoEnvelope))
	assert.Equal(t, "pantry_transfer", undoEnvelope.Data.Kind)

	resp = ts.api.Get("/api/v1/pantry")
	var envelope testEnvelope[ListPantryResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Entries)
}
