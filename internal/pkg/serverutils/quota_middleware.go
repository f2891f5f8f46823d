package serverutils

import (
	"context"
	"time"

	"mufessir/internal/pkg/logger"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
)

// QuotaMiddleware gates costly generation endpoints on the user's daily
// allowance. Before the handler runs it reloads quota state, replenishes an
// expired window, and rejects with 429 when the allowance is spent. After
// the handler returns with a 2xx status it decrements the allowance by one,
// asynchronously and best-effort.
func QuotaMiddleware(factory unitofwork.RepositoryFactory, ceiling int, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, ok := UserID(ctx)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
		}

		uow := factory.NewUnitOfWork(ctx.UserContext())
		userRepo := uow.UserRepository()

		user, err := userRepo.FindOne(ctx.UserContext(), specification.ByID{ID: userId})
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthenticated"})
		}

		now := time.Now().UTC()
		remaining := user.DailyQuota
		if user.QuotaResetAt.Before(now) {
			resetAt := now.Add(24 * time.Hour)
			if err := userRepo.ResetQuota(ctx.UserContext(), userId, ceiling, resetAt); err != nil {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
			}
			remaining = ceiling
		}

		if remaining <= 0 {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Quota exhausted"})
		}

		err = ctx.Next()

		status := ctx.Response().StatusCode()
		if err == nil && status >= 200 && status < 300 {
			go func() {
				decCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				repo := factory.NewUnitOfWork(decCtx).UserRepository()
				if decErr := repo.DecrementQuota(decCtx, userId); decErr != nil {
					log.Warn("QuotaMiddleware", "best-effort quota decrement failed", map[string]interface{}{
						"user_id": userId.String(),
						"error":   decErr.Error(),
					})
				}
			}()
		}
		return err
	}
}
