package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vedakart/vedakart/internal/auth/domain"
	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
	"github.com/vedakart/vedakart/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	SessionService *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.SessionService.Login(ctx, req.Username, req.Password, req.TwoFACode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authapi.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrTwoFARequired):
			authapi.ErrTwoFARequired.WriteError(w)
		case errors.Is(err, service.ErrTwoFAInvalid):
			authapi.ErrTwoFAInvalid.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(result))
}

// tokenResponse converts a login result into the shared wire shape. Login
// and refresh return the same thing.
func tokenResponse(result domain.LoginResult) authapi.TokenResponse {
	return authapi.TokenResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		TokenType:    result.Tokens.TokenType,
		ExpiresIn:    int(result.Tokens.ExpiresIn.Seconds()),
		User:         userInfoResponse(result.User),
	}
}

func userInfoResponse(u domain.User) authapi.UserInfoResponse {
	return authapi.UserInfoResponse{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Roles:        u.Roles,
		TwoFAEnabled: u.TwoFAEnabled,
	}
}
