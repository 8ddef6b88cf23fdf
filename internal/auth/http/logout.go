package http

import (
	"net/http"

	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
)

// LogoutHandler serves POST /v1/auth/logout. Tokens are not revoked
// server-side; the endpoint exists for the audit trail and so clients have
// an explicit end-of-session call to discard their stored pair against.
type LogoutHandler struct {
	SessionService *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	h.SessionService.Logout(ctx, userID)
	w.WriteHeader(http.StatusNoContent)
}
