package service

import (
	"context"
	"errors"
	"strings"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/events/domain"
	"github.com/calendario-app/calendario-backend/internal/ownership"
)

const msgNotFound = "Evento no encontrado"

type Repository interface {
	List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Event, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) error
	Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Event, error)
	SetWorkStatus(ctx context.Context, ownerID, id string, status domain.WorkStatus) (*domain.Event, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Event, error) {
	out, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, apperr.Unexpected("list events", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*domain.Event, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ownerID, id)
}

// Create normalizes the payload completely before the single insert.
func (s *Service) Create(ctx context.Context, ownerID string, in domain.Input) (*domain.Event, error) {
	e, err := domain.NormalizeCreate(in)
	if err != nil {
		return nil, err
	}
	e.OwnerID = ownerID

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, wrap("create event", err)
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in domain.Input) (*domain.Event, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.HasWorkFields() {
		in = in.WithStoredWork(existing)
	}
	p, err := domain.NormalizePatch(in)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, ownerID, id, p)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, wrap("update event", err)
	}
	return updated, nil
}

// SetWorkStatus sets the billing label of a work event. Any of the three
// labels may follow any other.
func (s *Service) SetWorkStatus(ctx context.Context, ownerID, id, status string) (*domain.Event, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	ws := domain.WorkStatus(strings.TrimSpace(status))
	if !ws.Valid() {
		return nil, apperr.Validation("Estado de trabajo inválido")
	}

	existing, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsWork {
		return nil, apperr.Validation("El evento no es un trabajo")
	}

	updated, err := s.repo.SetWorkStatus(ctx, ownerID, id, ws)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("set work status", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperr.Unexpected("delete event", err)
	}
	if !deleted {
		return apperr.NotFound(msgNotFound)
	}
	return nil
}

func (s *Service) load(ctx context.Context, ownerID, id string) (*domain.Event, error) {
	e, err := s.repo.Get(ctx, ownerID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("get event", err)
	}
	return e, nil
}

// wrap keeps classified errors from the repository and hides the rest.
func wrap(operation string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Unexpected(operation, err)
}
