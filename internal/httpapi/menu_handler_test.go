package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejayadad/seafoodapp/internal/menu"
)

func TestGetItem(t *testing.T) {
	router := newTestRouter(&fakeCatalog{items: map[string]menu.Item{"item-1": lobsterRoll()}},
		&fakeOrders{}, &fakeProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/api/menu/items/item-1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var it menu.Item
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&it))
	assert.Equal(t, "Lobster Roll", it.Name)
	assert.Equal(t, int64(1799), it.PriceCents)
}

func TestGetItem_NotFound(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeOrders{}, &fakeProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/api/menu/items/missing", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeCatalog{}, &fakeOrders{}, &fakeProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
