package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID
	Email         string
	PasswordHash  string
	Name          *string
	DailyQuota    int
	QuotaResetAt  time.Time
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PasswordReset stores only the bcrypt hash of the 6-digit code. A user may
// accumulate rows; only the newest unused one is ever honored.
type PasswordReset struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
