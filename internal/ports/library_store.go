package ports

import (
	"context"

	"github.com/bnema/paperswipe/internal/domain"
)

// LibraryStore persists accepted papers. Add is idempotent by title and
// reports whether the paper was newly stored.
type LibraryStore interface {
	List(ctx context.Context) ([]domain.Paper, error)
	Add(ctx context.Context, paper domain.Paper) (bool, error)
	Remove(ctx context.Context, title string) error
	Clear(ctx context.Context) error
}
