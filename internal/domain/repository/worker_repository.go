package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
)

// WorkerRepository defines the interface for worker data operations
type WorkerRepository interface {
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error)
	Update(ctx context.Context, worker *entity.Worker) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns workers with their active assignment counts. A nil shopID
	// lists every shop the caller may see.
	List(ctx context.Context, shopID *uuid.UUID) ([]entity.Worker, error)
	// Names resolves worker ids to names, skipping unknown ids.
	Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
