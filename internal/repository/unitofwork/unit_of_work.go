package unitofwork

import (
	"context"

	"mufessir/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	VerseRepository() contract.VerseRepository
	ScholarRepository() contract.ScholarRepository
	TafsirRepository() contract.TafsirRepository
	SearchRepository() contract.SearchRepository
}
