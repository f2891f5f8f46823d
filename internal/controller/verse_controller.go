package controller

import (
	"mufessir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVerseController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
}

type verseController struct {
	verseService service.IVerseService
}

func NewVerseController(verseService service.IVerseService) IVerseController {
	return &verseController{
		verseService: verseService,
	}
}

func (c *verseController) RegisterRoutes(r fiber.Router) {
	r.Get("/verses", c.Lookup)
}

// Lookup serves both addressing modes of /verses: exact surah/verse
// coordinates, or a text query with pagination.
func (c *verseController) Lookup(ctx *fiber.Ctx) error {
	surahNumber := ctx.QueryInt("surahNumber", 0)
	verseNumber := ctx.QueryInt("verseNumber", -1)

	if surahNumber > 0 && verseNumber >= 0 {
		verse, err := c.verseService.GetBySurahVerse(ctx.Context(), surahNumber, verseNumber)
		if err != nil {
			return err
		}
		if verse == nil {
			return fiber.NewError(fiber.StatusNotFound, "Verse not found")
		}
		return ctx.JSON(verse)
	}

	query := ctx.Query("q")
	skip := ctx.QueryInt("skip", 0)
	take := ctx.QueryInt("take", 20)
	if skip < 0 {
		skip = 0
	}

	res, err := c.verseService.List(ctx.Context(), query, surahNumber, skip, take)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
