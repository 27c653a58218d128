package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/companies/domain"
	evdomain "github.com/calendario-app/calendario-backend/internal/events/domain"
	"github.com/calendario-app/calendario-backend/internal/ownership"
)

const (
	msgNotFound  = "Empresa no encontrada"
	msgDuplicate = "Ya existe una empresa con este nombre en tu cuenta"
	msgInUse     = "No se puede eliminar la empresa porque tiene %d evento(s) asociado(s). Primero elimina o actualiza los eventos relacionados."
)

type Repository interface {
	ownership.NameLookup
	List(ctx context.Context, ownerID string) ([]domain.Company, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Replace(ctx context.Context, ownerID, id string, f domain.Fields) (*domain.Company, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// EventStats reads the owner's events that reference a company id.
type EventStats interface {
	CountByCompany(ctx context.Context, ownerID, companyID string) (int, error)
	WorkSummary(ctx context.Context, ownerID, companyID string) ([]evdomain.WorkTotals, error)
}

type Service struct {
	repo   Repository
	events EventStats
}

func New(repo Repository, events EventStats) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Company, error) {
	out, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, apperr.Unexpected("list companies", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*domain.Company, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, in domain.Input) (*domain.Company, error) {
	f, err := domain.Normalize(in)
	if err != nil {
		return nil, err
	}
	if err := ownership.EnsureUniqueName(ctx, s.repo, ownerID, f.Name, "", msgDuplicate); err != nil {
		return nil, err
	}

	c := &domain.Company{OwnerID: ownerID, Fields: f}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, ownership.TranslateUnique(err, "create company", msgDuplicate)
	}
	return c, nil
}

// Update replaces the company's fields. The owner never comes from the payload.
func (s *Service) Update(ctx context.Context, ownerID, id string, in domain.Input) (*domain.Company, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	f, err := domain.Normalize(in)
	if err != nil {
		return nil, err
	}
	if !ownership.SameName(existing.Name, f.Name) {
		if err := ownership.EnsureUniqueName(ctx, s.repo, ownerID, f.Name, id, msgDuplicate); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Replace(ctx, ownerID, id, f)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, ownership.TranslateUnique(err, "update company", msgDuplicate)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return err
	}
	if _, err := s.load(ctx, ownerID, id); err != nil {
		return err
	}

	n, err := s.events.CountByCompany(ctx, ownerID, id)
	if err != nil {
		return apperr.Unexpected("count company events", err)
	}
	if n > 0 {
		return apperr.Conflict(fmt.Sprintf(msgInUse, n))
	}

	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperr.Unexpected("delete company", err)
	}
	if !deleted {
		return apperr.NotFound(msgNotFound)
	}
	return nil
}

// Summary totals the company's work events by status.
func (s *Service) Summary(ctx context.Context, ownerID, id string) (*domain.Summary, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	c, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.events.WorkSummary(ctx, ownerID, id)
	if err != nil {
		return nil, apperr.Unexpected("company work summary", err)
	}
	return domain.Summarize(c, rows), nil
}

func (s *Service) load(ctx context.Context, ownerID, id string) (*domain.Company, error) {
	c, err := s.repo.Get(ctx, ownerID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("get company", err)
	}
	return c, nil
}
