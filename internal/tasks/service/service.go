package service

import (
	"context"
	"errors"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/ownership"
	"github.com/calendario-app/calendario-backend/internal/tasks/domain"
)

const msgNotFound = "Tarea no encontrada"

type Repository interface {
	List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Task, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Task, error) {
	out, err := s.repo.List(ctx, ownerID, f)
	if err != nil {
		return nil, apperr.Unexpected("list tasks", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Get(ctx, ownerID, id)
	return t, s.classify("get task", err)
}

func (s *Service) Create(ctx context.Context, ownerID string, in domain.Input) (*domain.Task, error) {
	t, err := domain.NormalizeCreate(in)
	if err != nil {
		return nil, err
	}
	t.OwnerID = ownerID

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperr.Unexpected("create task", err)
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in domain.Input) (*domain.Task, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	p, err := domain.NormalizePatch(in)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, ownerID, id, p)
}

// SetCompleted is the toggle behind PATCH. A nil value flips the stored flag.
func (s *Service) SetCompleted(ctx context.Context, ownerID, id string, completed *bool) (*domain.Task, error) {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		current, err := s.repo.Get(ctx, ownerID, id)
		if err := s.classify("get task", err); err != nil {
			return nil, err
		}
		flipped := !current.Completed
		completed = &flipped
	}
	return s.apply(ctx, ownerID, id, domain.Patch{Completed: completed})
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	id, err := ownership.ParseID(id, msgNotFound)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperr.Unexpected("delete task", err)
	}
	if !deleted {
		return apperr.NotFound(msgNotFound)
	}
	return nil
}

func (s *Service) apply(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Task, error) {
	var (
		t   *domain.Task
		err error
	)
	if p.Empty() {
		t, err = s.repo.Get(ctx, ownerID, id)
	} else {
		t, err = s.repo.Update(ctx, ownerID, id, p)
	}
	if err := s.classify("update task", err); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperr.NotFound(msgNotFound)
	}
	return apperr.Unexpected(operation, err)
}
