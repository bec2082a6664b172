package repository

import (
	"context"

	"github.com/taesko/freefall/internal/domain/entity"
)

// PageArchive stores raw search pages.
type PageArchive interface {
	Save(ctx context.Context, page *entity.ArchivedPage) error
}
