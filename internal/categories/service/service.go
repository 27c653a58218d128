package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/categories/domain"
	"github.com/calendario-app/calendario-backend/internal/ownership"
)

const (
	msgNotFound  = "Categoría no encontrada"
	msgDuplicate = "Ya existe una categoría con este nombre en tu cuenta"
	msgInUse     = "No se puede eliminar la categoría porque está en uso en %d evento(s) y %d tarea(s)."
)

type Repository interface {
	ownership.NameLookup
	List(ctx context.Context, ownerID string) ([]domain.Category, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, ownerID, id string, ch domain.Changes) (*domain.Category, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// UsageCounter counts the owner's records that carry a category name.
type UsageCounter interface {
	CountByCategory(ctx context.Context, ownerID, category string) (int, error)
}

type Service struct {
	repo   Repository
	events UsageCounter
	tasks  UsageCounter
}

func New(repo Repository, events, tasks UsageCounter) *Service {
	return &Service{repo: repo, events: events, tasks: tasks}
}

func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Category, error) {
	out, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, apperr.Unexpected("list categories", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, ownerID, id)
}

func (s *Service) Create(ctx context.Context, ownerID string, in domain.Input) (*domain.Category, error) {
	name, color, err := domain.NormalizeCreate(in)
	if err != nil {
		return nil, err
	}
	if err := ownership.EnsureUniqueName(ctx, s.repo, ownerID, name, "", msgDuplicate); err != nil {
		return nil, err
	}

	c := &domain.Category{OwnerID: ownerID, Name: name, Color: color}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, ownership.TranslateUnique(err, "create category", msgDuplicate)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in domain.Input) (*domain.Category, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	ch, err := domain.NormalizeUpdate(in)
	if err != nil {
		return nil, err
	}
	if ch.Name != nil && !ownership.SameName(existing.Name, *ch.Name) {
		if err := ownership.EnsureUniqueName(ctx, s.repo, ownerID, *ch.Name, id, msgDuplicate); err != nil {
			return nil, err
		}
	}
	if ch.Empty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, ownerID, id, ch)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, ownership.TranslateUnique(err, "update category", msgDuplicate)
	}
	return updated, nil
}

// Delete refuses while any event or task of the owner still uses the name.
// The count and the delete are separate statements.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return err
	}
	existing, err := s.load(ctx, ownerID, id)
	if err != nil {
		return err
	}

	events, err := s.events.CountByCategory(ctx, ownerID, existing.Name)
	if err != nil {
		return apperr.Unexpected("count category events", err)
	}
	tasks, err := s.tasks.CountByCategory(ctx, ownerID, existing.Name)
	if err != nil {
		return apperr.Unexpected("count category tasks", err)
	}
	if events > 0 || tasks > 0 {
		return apperr.Conflict(fmt.Sprintf(msgInUse, events, tasks))
	}

	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperr.Unexpected("delete category", err)
	}
	if !deleted {
		return apperr.NotFound(msgNotFound)
	}
	return nil
}

func (s *Service) load(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, ownerID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("get category", err)
	}
	return c, nil
}
