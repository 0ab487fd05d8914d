package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"coopsave/entity"
)

// CooperativeMembers pages through users whose memberOf array references the
// cooperative. Membership lives inline on the user row as jsonb, so this drops
// to a containment query rather than a join.
func CooperativeMembers(ctx context.Context, db *gorm.DB, cooperativeID uuid.UUID, opts ListOptions) (*Page[entity.User], error) {
	opts.normalize()

	member := fmt.Sprintf(`[{"cooperativeId": %q}]`, cooperativeID)
	base := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&entity.User{}).Where("member_of @> ?::jsonb", member)
		if !opts.IncludeDeleted {
			q = q.Where("deleted = ?", false)
		}
		if !opts.IncludeArchived {
			q = q.Where("archived = ?", false)
		}
		return q
	}

	var (
		items []entity.User
		total int64
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base().Order("created_at DESC").
			Offset((opts.Page - 1) * opts.Limit).
			Limit(opts.Limit).
			Find(&items).Error
	})
	g.Go(func() error {
		return base().Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Page[entity.User]{
		Items:      items,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages(total, opts.Limit),
	}, nil
}
