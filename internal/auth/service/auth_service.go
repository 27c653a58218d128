package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateLastName(ctx context.Context, uid, lastName string) (*domain.User, error)
}

const (
	maxNameLength = 50

	// Google accounts without a family name used to be stored with this placeholder.
	placeholderLastName = "google"
	defaultFirstName    = "Usuario"
)

// Federated sign-ins do not provide a birth date.
var defaultDateOfBirth = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

type AuthService struct {
	userRepo UserRepository
}

func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// GetUser returns the local record for a verified identity
func (s *AuthService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(ctx, uid)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperr.NotFound("Usuario no encontrado")
	}
	if err != nil {
		return nil, apperr.Unexpected("get user", err)
	}
	return user, nil
}

// ResolveUser is the ownership lookup behind every resource route. A verified
// token without a registered user is still unauthenticated.
func (s *AuthService) ResolveUser(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(ctx, uid)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperr.Unauthenticated(err)
	}
	if err != nil {
		return nil, apperr.Unexpected("resolve user", err)
	}
	return user, nil
}

// Register creates the local record for an email/password sign-up. It is
// idempotent: a known UID returns the stored user with created=false.
func (s *AuthService) Register(ctx context.Context, id domain.Identity, req domain.RegisterRequest) (*domain.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if email == "" || firstName == "" || lastName == "" || req.DateOfBirth == nil {
		return nil, false, apperr.Validation("Todos los campos son requeridos")
	}

	provider, err := parseProvider(req.Provider, domain.ProviderEmail)
	if err != nil {
		return nil, false, err
	}
	if err := checkNames(firstName, lastName); err != nil {
		return nil, false, err
	}

	existing, err := s.userRepo.GetByFirebaseUID(ctx, id.UID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, apperr.Unexpected("register user", err)
	}

	user := &domain.User{
		FirebaseUID: id.UID,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: req.DateOfBirth.UTC(),
		Provider:    provider,
	}
	return s.create(ctx, user)
}

// FederatedLogin creates or refreshes the local record after a Google sign-in.
func (s *AuthService) FederatedLogin(ctx context.Context, id domain.Identity, req domain.FederatedLoginRequest) (*domain.User, bool, error) {
	lastName := strings.TrimSpace(req.LastName)

	existing, err := s.userRepo.GetByFirebaseUID(ctx, id.UID)
	if err == nil {
		if !strings.EqualFold(existing.LastName, placeholderLastName) {
			return existing, false, nil
		}
		if payload.TooLong(lastName, maxNameLength) {
			return nil, false, apperr.Validationf("El apellido no puede exceder %d caracteres", maxNameLength)
		}
		updated, err := s.userRepo.UpdateLastName(ctx, id.UID, lastName)
		if err != nil {
			return nil, false, apperr.Unexpected("fix placeholder last name", err)
		}
		return updated, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, apperr.Unexpected("federated login", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(id.Email))
	}
	if email == "" {
		return nil, false, apperr.Validation("El correo electrónico es requerido")
	}

	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		firstName = defaultFirstName
	}
	if err := checkNames(firstName, lastName); err != nil {
		return nil, false, err
	}

	provider, err := parseProvider(req.Provider, domain.ProviderGoogle)
	if err != nil {
		return nil, false, err
	}

	user := &domain.User{
		FirebaseUID: id.UID,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: defaultDateOfBirth,
		Provider:    provider,
	}
	return s.create(ctx, user)
}

func (s *AuthService) create(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	err := s.userRepo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a race with a concurrent sign-up for the same UID.
		existing, getErr := s.userRepo.GetByFirebaseUID(ctx, user.FirebaseUID)
		if getErr != nil {
			return nil, false, apperr.Unexpected("reload user", getErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperr.Unexpected("create user", err)
	}
	return user, true, nil
}

func parseProvider(raw string, fallback domain.Provider) (domain.Provider, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	p := domain.Provider(raw)
	if !p.Valid() {
		return "", apperr.Validation("Proveedor inválido")
	}
	return p, nil
}

func checkNames(firstName, lastName string) error {
	if payload.TooLong(firstName, maxNameLength) {
		return apperr.Validationf("El nombre no puede exceder %d caracteres", maxNameLength)
	}
	if payload.TooLong(lastName, maxNameLength) {
		return apperr.Validationf("El apellido no puede exceder %d caracteres", maxNameLength)
	}
	return nil
}
