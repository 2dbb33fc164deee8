package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/moods/dto"
	"schoolhub_backend/internals/features/moods/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/dbtime"
)

type MoodController struct {
	Service *service.MoodService
	Now     func() time.Time
}

func NewMoodController(db *gorm.DB) *MoodController {
	return &MoodController{Service: service.NewMoodService(db), Now: time.Now}
}

func (ctl *MoodController) today(c *fiber.Ctx) time.Time {
	return dbtime.Today(c.UserContext(), ctl.Now())
}

func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = helper.ParseDateQuery(c, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = helper.ParseDateQuery(c, "to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "to harus >= from")
	}
	return from, to, nil
}

// POST /moods/me
func (ctl *MoodController) RecordMine(c *fiber.Ctx) error {
	var req dto.RecordMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := req.ToModel(userID, helperAuth.GetUserType(c), ctl.today(c))
	if err != nil {
		return err
	}
	saved, err := ctl.Service.Record(c.UserContext(), m)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan mood")
	}
	return helper.JsonOK(c, "Mood tersimpan", dto.FromModel(saved))
}

// GET /moods/me?from=&to=
func (ctl *MoodController) ListMine(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	from, to, err := dateRange(c)
	if err != nil {
		return err
	}
	rows, err := ctl.Service.Range(c.UserContext(), from, to, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("mood_user_id = ?", userID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mood")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// DELETE /moods/me/:id
func (ctl *MoodController) DeleteMine(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ok, err := ctl.Service.DeleteMine(c.UserContext(), id, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus mood")
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Mood tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Mood dihapus", fiber.Map{"mood_id": id})
}

func (ctl *MoodController) adminFilter(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, *time.Time, *time.Time, error) {
	var q dto.ListMoodQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return nil, nil, nil, err
	}
	from, to, err := dateRange(c)
	if err != nil {
		return nil, nil, nil, err
	}
	apply := func(tx *gorm.DB) *gorm.DB {
		if q.UserType != "" {
			tx = tx.Where("mood_user_type = ?", q.UserType)
		}
		if q.Mood != "" {
			tx = tx.Where("mood_value = ?", q.Mood)
		}
		if q.UserID != "" {
			tx = tx.Where("mood_user_id = ?", q.UserID)
		}
		return tx
	}
	return apply, from, to, nil
}

// GET /moods?from=&to=&user_type=&mood=&user_id=
func (ctl *MoodController) List(c *fiber.Ctx) error {
	apply, from, to, err := ctl.adminFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := ctl.Service.Page(c.UserContext(), from, to, apply, p.Offset, p.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil mood")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

// GET /moods/summary?from=&to=&user_type=
func (ctl *MoodController) Summary(c *fiber.Ctx) error {
	apply, from, to, err := ctl.adminFilter(c)
	if err != nil {
		return err
	}
	if from == nil && to == nil {
		// default 30 hari terakhir
		today := ctl.today(c)
		start := today.AddDate(0, 0, -29)
		from, to = &start, &today
	}
	rows, err := ctl.Service.Range(c.UserContext(), from, to, apply)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung mood")
	}
	return helper.JsonOK(c, "ok", service.Summarize(rows))
}
