package cart

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "cart_v1"

// ReadCookie decodes the cart from the request cookie. A missing or
// unreadable cookie yields an empty cart, never an error: the cookie is
// client-owned state and we cannot do better than start over.
func ReadCookie(r *http.Request) *Cart {
	ck, err := r.Cookie(cookieName)
	if err != nil {
		return &Cart{}
	}

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return &Cart{}
	}

	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return &Cart{}
	}
	return &c
}

// WriteCookie persists the cart on the response.
func WriteCookie(w http.ResponseWriter, c *Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie replaces the cart cookie with an empty cart.
func ClearCookie(w http.ResponseWriter) {
	WriteCookie(w, &Cart{})
}
