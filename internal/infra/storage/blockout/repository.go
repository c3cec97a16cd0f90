package blockout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения блокировок расписания исполнителей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByProviderID получает все блокировки исполнителя: разовые и еженедельные
// Фильтрация по дате выполняется в доменной логике (Blockout.AppliesTo) -
// повторяющиеся блокировки не привязаны к конкретной дате
func (r *Repository) ListByProviderID(ctx context.Context, providerID int64) ([]*domain.Blockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"blockout_date",
		"is_recurring",
		"recurring_day",
		"time_slot",
		"reason",
		"created_at",
	).
		From("provider_blockouts").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProviderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blockouts := make([]*domain.Blockout, 0)
	for rows.Next() {
		var blockout domain.Blockout
		var date sql.NullTime
		var recurringDay sql.NullInt64
		var timeSlot string
		var createdAt sql.NullTime

		err := rows.Scan(
			&blockout.ID,
			&blockout.ProviderID,
			&date,
			&blockout.IsRecurring,
			&recurringDay,
			&timeSlot,
			&blockout.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProviderID - scan blockout row: %v", ErrScanRow, err)
		}

		if date.Valid {
			d := date.Time
			blockout.Date = &d
		}
		if recurringDay.Valid {
			day := time.Weekday(recurringDay.Int64)
			blockout.RecurringDay = &day
		}
		blockout.TimeSlot = domain.TimeSlot(timeSlot)
		blockout.CreatedAt = createdAt.Time

		blockouts = append(blockouts, &blockout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProviderID - rows error: %v", ErrScanRow, err)
	}

	return blockouts, nil
}
