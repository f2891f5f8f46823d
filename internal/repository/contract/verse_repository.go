package contract

import (
	"context"

	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
)

type VerseRepository interface {
	Create(ctx context.Context, verse *entity.Verse) error
	CreateBulk(ctx context.Context, verses []*entity.Verse) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Verse, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Verse, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
