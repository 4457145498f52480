package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/tailorshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

const workerColumns = `workers.*, (
	SELECT COUNT(*) FROM orders o
	WHERE o.status <> ? AND (o.lead_worker_id = workers.id OR o.squad @> jsonb_build_array(workers.id::text))
) AS active_assignments`

type workerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(db *gorm.DB) domainRepo.WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, worker *entity.Worker) error {
	return translate(r.db.WithContext(ctx).Create(worker).Error)
}

func (r *workerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Worker, error) {
	var worker entity.Worker
	err := r.db.WithContext(ctx).
		Model(&entity.Worker{}).
		Select(workerColumns, enum.OrderStatusClosed).
		Scopes(ShopScopeOn(ctx, "workers")).
		First(&worker, "workers.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &worker, err
}

func (r *workerRepository) Update(ctx context.Context, worker *entity.Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

// Delete removes the worker. Closed orders it led keep their record but lose
// the lead reference; an open order still pointing at it yields ErrReferenced.
func (r *workerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var worker entity.Worker
		err := tx.Scopes(ShopScope(ctx)).Select("id").First(&worker, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := releaseLead(tx, id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Worker{}, "id = ?", id).Error
	})
	return translate(err)
}

// releaseLead clears the lead reference of the closed orders a worker led.
func releaseLead(tx *gorm.DB, workerID uuid.UUID) *gorm.DB {
	return tx.Model(&entity.Order{}).
		Where("lead_worker_id = ? AND status = ?", workerID, enum.OrderStatusClosed).
		Update("lead_worker_id", nil)
}

func (r *workerRepository) List(ctx context.Context, shopID *uuid.UUID) ([]entity.Worker, error) {
	var workers []entity.Worker

	query := r.db.WithContext(ctx).
		Model(&entity.Worker{}).
		Select(workerColumns, enum.OrderStatusClosed).
		Scopes(ShopScopeOn(ctx, "workers"))
	if shopID != nil {
		query = query.Where("workers.shop_id = ?", *shopID)
	}

	err := query.Order("workers.name ASC").Find(&workers).Error
	return workers, err
}

func (r *workerRepository) Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Worker{}).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
