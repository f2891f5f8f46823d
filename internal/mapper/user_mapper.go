package mapper

import (
	"mufessir/internal/entity"
	"mufessir/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Name:          u.Name,
		DailyQuota:    u.DailyQuota,
		QuotaResetAt:  u.QuotaResetAt,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Name:          u.Name,
		DailyQuota:    u.DailyQuota,
		QuotaResetAt:  u.QuotaResetAt,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) PasswordResetToEntity(r *model.PasswordReset) *entity.PasswordReset {
	if r == nil {
		return nil
	}
	return &entity.PasswordReset{
		Id:        r.Id,
		UserId:    r.UserId,
		CodeHash:  r.CodeHash,
		ExpiresAt: r.ExpiresAt,
		Used:      r.Used,
		CreatedAt: r.CreatedAt,
	}
}

func (m *UserMapper) PasswordResetToModel(r *entity.PasswordReset) *model.PasswordReset {
	if r == nil {
		return nil
	}
	return &model.PasswordReset{
		Id:        r.Id,
		UserId:    r.UserId,
		CodeHash:  r.CodeHash,
		ExpiresAt: r.ExpiresAt,
		Used:      r.Used,
		CreatedAt: r.CreatedAt,
	}
}
