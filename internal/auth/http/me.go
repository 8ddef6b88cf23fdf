package http

import (
	"errors"
	"net/http"

	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
	"github.com/vedakart/vedakart/pkg/slogx"
)

// MeHandler serves GET /v1/auth/me.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// A valid token for a since-deleted user reads as a bad token.
		if errors.Is(err, service.ErrUserNotFound) {
			authapi.ErrInvalidToken.WriteError(w)
			return
		}
		log.Warn("failed to load user", "user_id", userID, "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse(user))
}
