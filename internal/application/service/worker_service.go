package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	infraRepo "github.com/sangkips/tailorshop-api/internal/infrastructure/repository"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// WorkerService handles worker-related operations
type WorkerService struct {
	workerRepo repository.WorkerRepository
	orderRepo  repository.OrderRepository
	shopRepo   repository.ShopRepository
}

// NewWorkerService creates a new worker service
func NewWorkerService(
	workerRepo repository.WorkerRepository,
	orderRepo repository.OrderRepository,
	shopRepo repository.ShopRepository,
) *WorkerService {
	return &WorkerService{
		workerRepo: workerRepo,
		orderRepo:  orderRepo,
		shopRepo:   shopRepo,
	}
}

// CreateWorkerInput represents the create worker input
type CreateWorkerInput struct {
	ShopID *uuid.UUID
	Name   string
	Phone  string
}

// CreateWorker adds a worker to the caller's shop
func (s *WorkerService) CreateWorker(ctx context.Context, input *CreateWorkerInput) (*entity.Worker, error) {
	shopID, err := resolveShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Worker name is required")
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.NewNotFoundError("Shop")
	}

	worker := &entity.Worker{
		ShopID: shopID,
		Name:   name,
		Phone:  strings.TrimSpace(input.Phone),
	}
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// ListWorkers lists workers with their active assignment counts
func (s *WorkerService) ListWorkers(ctx context.Context, shopID *uuid.UUID) ([]entity.Worker, error) {
	return s.workerRepo.List(ctx, filterShop(ctx, shopID))
}

// GetWorker retrieves a worker by ID
func (s *WorkerService) GetWorker(ctx context.Context, id uuid.UUID) (*entity.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, apperror.NewNotFoundError("Worker")
	}
	return worker, nil
}

// UpdateWorkerInput represents the update worker input
type UpdateWorkerInput struct {
	Name  *string
	Phone *string
}

// UpdateWorker updates a worker's name or phone
func (s *WorkerService) UpdateWorker(ctx context.Context, id uuid.UUID, input *UpdateWorkerInput) (*entity.Worker, error) {
	worker, err := s.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Worker name is required")
		}
		worker.Name = name
	}
	if input.Phone != nil {
		worker.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := s.workerRepo.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// DeleteWorker removes a worker who has no open assignments
func (s *WorkerService) DeleteWorker(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetWorker(ctx, id); err != nil {
		return err
	}

	active, err := s.orderRepo.CountActiveByWorker(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperror.NewConflictError(fmt.Sprintf("Worker has %d active assignment(s); reassign them first", active))
	}

	if err := s.workerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, infraRepo.ErrReferenced) {
			return apperror.NewConflictError("Worker is still assigned to open orders; reassign them first")
		}
		return err
	}
	return nil
}

// Assignments lists the orders a worker leads or is on the squad of
func (s *WorkerService) Assignments(ctx context.Context, id uuid.UUID, openOnly bool) ([]entity.Order, error) {
	if _, err := s.GetWorker(ctx, id); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByWorker(ctx, id, openOnly)
}
