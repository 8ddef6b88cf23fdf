package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
	"github.com/vedakart/vedakart/pkg/slogx"
)

// refreshTokenHeader carries the refresh token. A header keeps the token
// out of URLs and request logs.
const refreshTokenHeader = "X-Refresh-Token"

// RefreshHandler serves POST /v1/auth/refresh.
type RefreshHandler struct {
	SessionService *service.SessionService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := strings.TrimSpace(r.Header.Get(refreshTokenHeader))
	if token == "" {
		authapi.ErrInvalidRefreshToken.WriteError(w)
		return
	}

	result, err := h.SessionService.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			authapi.ErrInvalidRefreshToken.WriteError(w)
			return
		}
		log.Error("refresh failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(result))
}
