package contract

import (
	"context"
	"time"

	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Quota management
	ResetQuota(ctx context.Context, userId uuid.UUID, quota int, resetAt time.Time) error
	DecrementQuota(ctx context.Context, userId uuid.UUID) error
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error

	// Password reset codes
	CreatePasswordReset(ctx context.Context, reset *entity.PasswordReset) error
	FindPasswordReset(ctx context.Context, specs ...specification.Specification) (*entity.PasswordReset, error)
	MarkResetUsed(ctx context.Context, id uuid.UUID) error
}
