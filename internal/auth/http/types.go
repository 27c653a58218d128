package http

import (
	"github.com/calendario-app/calendario-backend/internal/auth/service"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

type Handler struct {
	authService *service.AuthService
}

func New(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

type registerBody struct {
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	DateOfBirth payload.Time `json:"dateOfBirth"`
	Provider    string       `json:"provider"`
}

type federatedLoginBody struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Provider  string `json:"provider"`
}
