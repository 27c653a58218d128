package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/httpx"
)

// RegisterUser stores the profile of an email/password sign-up
func (h *Handler) RegisterUser(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		httpx.Fail(c, "auth.register", apperr.Unauthenticated(nil))
		return
	}

	var body registerBody
	if err := httpx.BindJSON(c, &body); err != nil {
		httpx.Fail(c, "auth.register", err)
		return
	}

	user, created, err := h.authService.Register(c.Request.Context(), id, domain.RegisterRequest{
		Email:       body.Email,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		DateOfBirth: body.DateOfBirth.Ptr(),
		Provider:    body.Provider,
	})
	if err != nil {
		httpx.Fail(c, "auth.register", err)
		return
	}

	httpx.OK(c, statusFor(created), user)
}

// GoogleLogin creates or refreshes the local user after a federated sign-in
func (h *Handler) GoogleLogin(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		httpx.Fail(c, "auth.google", apperr.Unauthenticated(nil))
		return
	}

	// The profile body is optional
	var body federatedLoginBody
	if c.Request.ContentLength > 0 {
		if err := httpx.BindJSON(c, &body); err != nil {
			httpx.Fail(c, "auth.google", err)
			return
		}
	}

	user, created, err := h.authService.FederatedLogin(c.Request.Context(), id, domain.FederatedLoginRequest{
		Email:     body.Email,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Provider:  body.Provider,
	})
	if err != nil {
		httpx.Fail(c, "auth.google", err)
		return
	}

	httpx.OK(c, statusFor(created), user)
}

// GetUser returns the current user's profile
func (h *Handler) GetUser(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		httpx.Fail(c, "auth.user", apperr.Unauthenticated(nil))
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), uid)
	if err != nil {
		httpx.Fail(c, "auth.user", err)
		return
	}

	httpx.OK(c, http.StatusOK, user)
}

func statusFor(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
