package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/helpers/signals"
)

// AcademicsController: cabang, kelas, periode akademik.
type AcademicsController struct {
	DB  *gorm.DB
	Bus *signals.Bus
}

func NewAcademicsController(db *gorm.DB, bus *signals.Bus) *AcademicsController {
	return &AcademicsController{DB: db, Bus: bus}
}

func activeFilter(c *fiber.Ctx) (*bool, error) {
	raw := c.Query("active")
	switch raw {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "active harus true/false")
	}
}
