package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mufessir/internal/dto"
	"mufessir/internal/pkg/logger"
	"mufessir/internal/pkg/serverutils"
	"mufessir/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const streamTimeout = 3 * time.Minute

type ITafseerController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type tafseerController struct {
	tafseerService  service.ITafseerService
	quotaMiddleware fiber.Handler
	jwtSecret       string
	log             logger.ILogger
}

func NewTafseerController(
	tafseerService service.ITafseerService,
	quotaMiddleware fiber.Handler,
	jwtSecret string,
	log logger.ILogger,
) ITafseerController {
	return &tafseerController{
		tafseerService:  tafseerService,
		quotaMiddleware: quotaMiddleware,
		jwtSecret:       jwtSecret,
		log:             log,
	}
}

func (c *tafseerController) RegisterRoutes(r fiber.Router) {
	r.Post("/tafseer", serverutils.JwtMiddleware(c.jwtSecret), c.quotaMiddleware, c.Generate)
}

func (c *tafseerController) Generate(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}

	var req dto.GenerateTafseerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.Stream {
		return c.generateStream(ctx, userId, &req)
	}

	res, err := c.tafseerService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrVerseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Verse not found")
		}
		return err
	}
	return ctx.JSON(res)
}

// generateStream renders the generation as server-sent events. The fiber
// context is recycled as soon as the handler returns, so everything the
// stream writer needs is captured before SetBodyStreamWriter.
func (c *tafseerController) generateStream(ctx *fiber.Ctx, userId uuid.UUID, req *dto.GenerateTafseerRequest) error {
	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	tafseerService := c.tafseerService
	log := c.log
	request := *req

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		streamCtx, cancel := context.WithTimeout(context.Background(), streamTimeout)
		defer cancel()

		sink := func(event *dto.StreamEvent) error {
			if err := writeEvent(w, event); err != nil {
				return err
			}
			return w.Flush()
		}

		err := tafseerService.GenerateStream(streamCtx, userId, &request, sink)
		if err == nil {
			return
		}

		message := "Generation failed"
		if errors.Is(err, service.ErrVerseNotFound) {
			message = "Verse not found"
		} else {
			log.Error("TafseerController", "streamed generation failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
		if werr := writeEvent(w, &dto.StreamEvent{Type: "error", Message: message}); werr == nil {
			_ = w.Flush()
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, event *dto.StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
