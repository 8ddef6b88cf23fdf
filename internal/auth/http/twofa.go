package http

import (
	"errors"
	"net/http"

	"github.com/vedakart/vedakart/internal/auth/service"
	"github.com/vedakart/vedakart/pkg/authapi"
	"github.com/vedakart/vedakart/pkg/httpx"
	"github.com/vedakart/vedakart/pkg/slogx"
)

// TwoFAHandler handles the two-factor enrollment endpoints.
type TwoFAHandler struct {
	SessionService *service.SessionService
}

// HandleEnable handles POST /v1/auth/2fa/enable. It returns provisioning
// material; the account is not protected until HandleVerify confirms a code.
func (h *TwoFAHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	setup, err := h.SessionService.EnableTwoFA(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authapi.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("2FA enrollment failed", "user_id", userID, "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.TwoFASetupResponse{
		Secret:     setup.Secret,
		QRCode:     setup.QRCode,
		OTPAuthURL: setup.OTPAuthURL,
		Issuer:     setup.Issuer,
		Account:    setup.Account,
	})
}

// HandleVerify handles POST /v1/auth/2fa/verify. A wrong code is a 200 with
// success=false, so the client can keep prompting.
func (h *TwoFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	var req authapi.TwoFAVerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Code == "" {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	ok, err := h.SessionService.VerifyTwoFA(ctx, userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTwoFANotSetUp):
			authapi.ErrTwoFANotSetUp.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authapi.ErrInvalidToken.WriteError(w)
		default:
			log.Error("2FA verification failed", "user_id", userID, "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	resp := authapi.TwoFAVerifyResponse{Success: ok}
	if ok {
		resp.Message = "2FA enabled"
	} else {
		resp.Message = "invalid 2FA code"
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDisable handles DELETE /v1/auth/2fa/disable.
func (h *TwoFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.SessionService.DisableTwoFA(ctx, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authapi.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("2FA disable failed", "user_id", userID, "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
