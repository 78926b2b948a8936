package cart

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieRoundTrip(t *testing.T) {
	c := &Cart{Lines: []Line{
		{ID: "l1", MenuItemID: "i1", Name: "Clam Chowder", UnitPriceCents: 899, Qty: 2},
	}}

	rr := httptest.NewRecorder()
	WriteCookie(rr, c)

	res := rr.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, "cart_v1", ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(ck)

	got := ReadCookie(req)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Clam Chowder", got.Lines[0].Name)
	assert.Equal(t, int64(899), got.Lines[0].UnitPriceCents)
}

func TestReadCookie_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)

	c := ReadCookie(req)
	assert.True(t, c.IsEmpty())
}

func TestReadCookie_Garbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_v1", Value: "not-base64!!"})

	c := ReadCookie(req)
	assert.True(t, c.IsEmpty())
}

func TestClearCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	ClearCookie(rr)

	res := rr.Result()
	require.Len(t, res.Cookies(), 1)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(res.Cookies()[0])

	assert.True(t, ReadCookie(req).IsEmpty())
}
