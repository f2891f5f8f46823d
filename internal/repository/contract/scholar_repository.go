package contract

import (
	"context"

	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
)

type ScholarRepository interface {
	Create(ctx context.Context, scholar *entity.Scholar) error
	CreateBulk(ctx context.Context, scholars []*entity.Scholar) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scholar, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scholar, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
