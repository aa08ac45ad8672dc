package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// tableConfig is the per-entity configuration of the shared list
// machinery: which text columns the substring search spans, which
// columns may be sorted on, and the fallback sort column.
type tableConfig struct {
	searchColumns []string
	sortColumns   map[string]bool
	defaultSort   string
}

// base implements the repository contract shared by every entity
// table. Entity repositories embed it with their own tableConfig and
// add aggregate queries on top. Soft-deleted rows are invisible to
// every method here; gorm's DeletedAt handling appends the
// deleted_at IS NULL predicate to each statement.
type base[T any] struct {
	db  *gorm.DB
	cfg tableConfig
}

func newBase[T any](db *gorm.DB, cfg tableConfig) base[T] {
	return base[T]{db: db, cfg: cfg}
}

// listQuery builds the filtered (not yet sorted or paged) query for
// params. Search is a case-insensitive substring match OR-combined
// across the configured columns; filters are exact matches AND-combined
// with the search and each other.
func (b *base[T]) listQuery(ctx context.Context, params ListParams) *gorm.DB {
	q := b.db.WithContext(ctx).Model(new(T))

	if s := strings.TrimSpace(params.Search); s != "" && len(b.cfg.searchColumns) > 0 {
		needle := "%" + strings.ToLower(s) + "%"
		frags := make([]string, 0, len(b.cfg.searchColumns))
		args := make([]any, 0, len(b.cfg.searchColumns))
		for _, col := range b.cfg.searchColumns {
			frags = append(frags, "LOWER("+col+") LIKE ?")
			args = append(args, needle)
		}
		q = q.Where(strings.Join(frags, " OR "), args...)
	}

	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}

	return q
}

// orderClause resolves the requested sort column against the
// whitelist; anything unknown falls back to the entity default.
func (b *base[T]) orderClause(params ListParams) string {
	col := params.SortBy
	if !b.cfg.sortColumns[col] {
		col = b.cfg.defaultSort
	}
	return col + " " + params.SortOrder
}

// FindAllPaginated returns the requested page plus the total count of
// all matching rows.
func (b *base[T]) FindAllPaginated(ctx context.Context, params ListParams) (*Page[T], error) {
	params = params.Normalize()

	var total int64
	if err := b.listQuery(ctx, params).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, params.PageSize)
	err := b.listQuery(ctx, params).
		Order(b.orderClause(params)).
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// FindByID returns (nil, nil) when no live row exists; absence is not
// an error at this layer.
func (b *base[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := b.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create inserts the entity and fills in its generated id and
// timestamps. Constraint violations come back as typed sentinels.
func (b *base[T]) Create(ctx context.Context, entity *T) error {
	return classify(b.db.WithContext(ctx).Create(entity).Error)
}

// Update applies only the supplied columns, then re-reads the row.
// Returns ErrNotFound when no live row matches.
func (b *base[T]) Update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		tx := b.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, classify(tx.Error)
		}
		if tx.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	entity, err := b.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrNotFound
	}
	return entity, nil
}

// SoftDelete stamps deleted_at; the row stays in the table for
// historical joins but disappears from every read path above.
func (b *base[T]) SoftDelete(ctx context.Context, id int64) error {
	tx := b.db.WithContext(ctx).Delete(new(T), id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
