package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var providerColumns = []string{
	"id",
	"name",
	"is_active",
	"specialization",
	"assigned_service_ids",
	"average_rating",
	"total_jobs_completed",
	"created_at",
	"updated_at",
}

// Repository репозиторий для чтения исполнителей
// Исполнители создаются и редактируются админским CRUD вне этого сервиса,
// движку планирования нужен только доступ на чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исполнителей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает исполнителя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	provider, err := scanProvider(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	return provider, nil
}

// ListActive получает всех активных исполнителей
// Кандидаты для подбора по услуге, сортировка по рейтингу вторична -
// итоговый порядок определяет ранжирование
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("average_rating DESC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan provider row: %v", ErrScanRow, err)
		}
		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (*domain.Provider, error) {
	var provider domain.Provider
	var specialization pq.StringArray
	var assignedServiceIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.IsActive,
		&specialization,
		&assignedServiceIDs,
		&provider.AverageRating,
		&provider.TotalJobsCompleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	provider.Specialization = []string(specialization)
	provider.AssignedServiceIDs = []int64(assignedServiceIDs)
	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return &provider, nil
}
