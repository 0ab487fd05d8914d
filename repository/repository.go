package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Repository is the single persistence accessor shared by all eight resources.
// Every method applies the same soft-delete and archive filtering so the rules
// are not re-derived per resource.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

func (r *Repository[T]) visible(q *gorm.DB, includeArchived, includeDeleted bool) *gorm.DB {
	if !includeDeleted {
		q = q.Where("deleted = ?", false)
	}
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	return q
}

func (r *Repository[T]) listQuery(ctx context.Context, opts ListOptions) *gorm.DB {
	q := r.visible(r.db.WithContext(ctx).Model(new(T)), opts.IncludeArchived, opts.IncludeDeleted)
	for column, value := range opts.Filters {
		q = q.Where(column+" = ?", value)
	}
	return q
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// FindByID fetches one record, applying the default visibility filter.
// A soft-deleted or archived row behaves exactly like a missing one.
func (r *Repository[T]) FindByID(ctx context.Context, id uuid.UUID, includeArchived, includeDeleted bool, preloads ...string) (*T, error) {
	var record T
	q := r.visible(r.db.WithContext(ctx), includeArchived, includeDeleted)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindOne fetches the first record matching the given column filters,
// including archived rows but never deleted ones.
func (r *Repository[T]) FindOne(ctx context.Context, filters map[string]any) (*T, error) {
	var record T
	q := r.db.WithContext(ctx).Where("deleted = ?", false)
	for column, value := range filters {
		q = q.Where(column+" = ?", value)
	}
	if err := q.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List fetches one page of records and the total count. The two queries are
// dispatched concurrently and both awaited before the page is assembled.
func (r *Repository[T]) List(ctx context.Context, opts ListOptions) (*Page[T], error) {
	opts.normalize()

	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := r.listQuery(gctx, opts)
		for _, p := range opts.Preloads {
			q = q.Preload(p)
		}
		return q.Order("created_at DESC").
			Offset((opts.Page - 1) * opts.Limit).
			Limit(opts.Limit).
			Find(&items).Error
	})
	g.Go(func() error {
		return r.listQuery(gctx, opts).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages(total, opts.Limit),
	}, nil
}

// Count returns the number of non-deleted records matching the filters.
func (r *Repository[T]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	q := r.db.WithContext(ctx).Model(new(T)).Where("deleted = ?", false)
	for column, value := range filters {
		q = q.Where(column+" = ?", value)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Update merges the given column values into an existing, non-deleted record
// and returns the fresh row. Archived records stay updatable so they can be
// un-archived.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any, preloads ...string) (*T, error) {
	if _, err := r.FindByID(ctx, id, true, false); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrConflict
			}
			return nil, err
		}
	}
	return r.FindByID(ctx, id, true, true, preloads...)
}

// SoftDelete marks a record deleted (optionally archiving it too). Deleting an
// already-deleted record reports ErrNotFound, so a second delete is a 404.
func (r *Repository[T]) SoftDelete(ctx context.Context, id uuid.UUID, alsoArchive bool) error {
	if _, err := r.FindByID(ctx, id, true, false); err != nil {
		return err
	}
	fields := map[string]any{"deleted": true}
	if alsoArchive {
		fields["archived"] = true
	}
	return r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
}
