package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolhub_backend/internals/features/storage/dto"
	"schoolhub_backend/internals/features/storage/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	helperOSS "schoolhub_backend/internals/helpers/oss"
	"schoolhub_backend/internals/helpers/tenant"
)

type StorageController struct {
	Service *service.Service
}

func NewStorageController(svc *service.Service) *StorageController {
	return &StorageController{Service: svc}
}

// httpError memetakan error service ke *fiber.Error.
func httpError(err error, fail string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidPath), errors.Is(err, service.ErrInvalidName):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRootFolder):
		return fiber.NewError(fiber.StatusBadRequest, "Folder root tidak bisa dihapus")
	case errors.Is(err, service.ErrFileNotFound):
		return fiber.NewError(fiber.StatusNotFound, "File tidak ditemukan")
	case errors.Is(err, service.ErrExists):
		return fiber.NewError(fiber.StatusConflict, "Tujuan sudah ada")
	case errors.Is(err, service.ErrAlreadyInTrash):
		return fiber.NewError(fiber.StatusConflict, "File sudah di trash")
	case errors.Is(err, service.ErrNotDeleted):
		return fiber.NewError(fiber.StatusConflict, "File tidak berada di trash")
	case errors.Is(err, service.ErrTooLarge):
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file melebihi batas")
	case errors.Is(err, helperOSS.ErrUnsupportedImage):
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung")
	case errors.Is(err, tenant.ErrNoTenant):
		return fiber.NewError(fiber.StatusBadRequest, "Tenant tidak ditemukan. Sertakan header X-Customer-Slug.")
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return fiber.NewError(fiber.StatusInternalServerError, fail)
}

// GET /storage?path=a/b
func (ctl *StorageController) List(c *fiber.Ctx) error {
	path := c.Query("path")
	e, err := ctl.Service.List(c.UserContext(), path)
	if err != nil {
		return httpError(err, "Gagal membaca folder")
	}
	clean, _ := service.CleanFolder(path)
	return helper.JsonOK(c, "ok", dto.FromEntry(clean, e))
}

// POST /storage/folders
func (ctl *StorageController) CreateFolder(c *fiber.Ctx) error {
	var req dto.CreateFolderRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	path, err := ctl.Service.CreateFolder(c.UserContext(), req.Path)
	if err != nil {
		return httpError(err, "Gagal membuat folder")
	}
	return helper.JsonCreated(c, "Folder dibuat", dto.FolderResponse{Name: service.FolderName(path), Path: path})
}

// DELETE /storage/folders?path=a/b
func (ctl *StorageController) DeleteFolder(c *fiber.Ctx) error {
	var q dto.DeleteFolderQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	res, err := ctl.Service.DeleteFolder(c.UserContext(), q.Path)
	if err != nil {
		return httpError(err, "Gagal menghapus folder")
	}
	return helper.JsonDeleted(c, "Folder dipindah ke trash", res)
}

// POST /storage/files (multipart: folder, optimize, files[]/file)
func (ctl *StorageController) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form multipart tidak valid")
	}
	files := helperOSS.CollectUploadFiles(form)
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada file yang diupload")
	}
	folder := c.FormValue("folder")
	optimize, _ := strconv.ParseBool(strings.TrimSpace(c.FormValue("optimize")))

	var uploadedBy *uuid.UUID
	if id, err := helperAuth.GetUserIDFromToken(c); err == nil {
		uploadedBy = &id
	}

	var out dto.UploadResponse
	for _, fh := range files {
		if fh.Size > ctl.Service.MaxUpload {
			if len(files) == 1 {
				return httpError(service.ErrTooLarge, "")
			}
			out.Failed = append(out.Failed, dto.UploadFailure{Name: fh.Filename, Error: service.ErrTooLarge.Error()})
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibaca")
		}
		m, err := ctl.Service.Upload(c.UserContext(), service.UploadInput{
			Folder:     folder,
			Name:       fh.Filename,
			Body:       f,
			Size:       fh.Size,
			Optimize:   optimize,
			UploadedBy: uploadedBy,
		})
		_ = f.Close()
		if err != nil {
			if len(files) == 1 {
				return httpError(err, "Gagal upload file")
			}
			out.Failed = append(out.Failed, dto.UploadFailure{Name: fh.Filename, Error: err.Error()})
			continue
		}
		out.Uploaded = append(out.Uploaded, dto.FromFile(m))
	}
	if len(out.Uploaded) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Semua file gagal diupload")
	}
	return helper.JsonCreated(c, "File diupload", out)
}

// GET /storage/files/:id
func (ctl *StorageController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, url, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return httpError(err, "Gagal mengambil file")
	}
	resp := dto.FromFile(m)
	resp.URL = url
	return helper.JsonOK(c, "ok", resp)
}

// PATCH /storage/files/:id/move
func (ctl *StorageController) Move(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MoveFileRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Folder == nil && req.Name == nil {
		return helper.NewValidationError("name", "folder or name is required")
	}
	m, err := ctl.Service.Move(c.UserContext(), id, req.Folder, req.Name)
	if err != nil {
		return httpError(err, "Gagal memindah file")
	}
	return helper.JsonUpdated(c, "File dipindah", dto.FromFile(m))
}

// DELETE /storage/files/:id
func (ctl *StorageController) Trash(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Service.Trash(c.UserContext(), id)
	if err != nil {
		return httpError(err, "Gagal menghapus file")
	}
	return helper.JsonDeleted(c, "File dipindah ke trash", dto.FromFile(m))
}

// PATCH /storage/files/:id/restore
func (ctl *StorageController) Restore(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Service.Restore(c.UserContext(), id)
	if err != nil {
		return httpError(err, "Gagal memulihkan file")
	}
	return helper.JsonOK(c, "File dipulihkan", dto.FromFile(m))
}
