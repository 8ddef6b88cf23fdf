package http

import (
	"net/http"

	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
	"github.com/vedakart/vedakart/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set so resource services (storefront
// API, admin API) can verify access tokens without calling back here.
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authapi.JWKSResponse(keys.PublicJWKS()))
	}
}
