package controller

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/firmantawakal/simak-tracer-study/internals/constants"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/dto"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

// MaxImportSize membatasi ukuran file import (5 MB).
const MaxImportSize = 5 << 20

type AlumniController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func NewAlumniController(svc *service.Service) *AlumniController {
	return &AlumniController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/alumni?q=&page=&per_page=
func (ac *AlumniController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := ac.Svc.List(c.UserContext(), c.Query("q"), p.Offset, p.Limit)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonList(c, "Daftar alumni", rows, p.Pagination(total))
}

// GET /api/a/alumni/:id
func (ac *AlumniController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID alumni tidak valid")
	}
	res, err := ac.Svc.Get(c.UserContext(), id)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonOK(c, "Detail alumni", res)
}

// POST /api/a/alumni
func (ac *AlumniController) Create(c *fiber.Ctx) error {
	var req dto.AlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := ac.Svc.Create(c.UserContext(), req)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonCreated(c, "Alumni berhasil ditambahkan", res)
}

// PUT /api/a/alumni/:id
func (ac *AlumniController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID alumni tidak valid")
	}
	var req dto.AlumniRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := ac.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonUpdated(c, "Alumni berhasil diperbarui", res)
}

// DELETE /api/a/alumni/:id
func (ac *AlumniController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID alumni tidak valid")
	}
	if err := ac.Svc.Delete(c.UserContext(), id); err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonDeleted(c, "Alumni berhasil dihapus", fiber.Map{"id": id})
}

// POST /api/a/alumni/import
// Body JSON {alumni:[...]} atau multipart dengan field "file" (CSV/JSON).
func (ac *AlumniController) Import(c *fiber.Ctx) error {
	var (
		rows []service.ImportRow
		pre  []dto.ImportError
	)

	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File import wajib diunggah pada field 'file'")
		}
		if fh.Size > MaxImportSize {
			return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 5 MB")
		}
		f, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, MaxImportSize+1))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
		}

		switch constants.DetectImportFormat(data, fh.Filename) {
		case constants.ImportCSV:
			rows, pre, err = service.ParseCSV(bytes.NewReader(data))
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
			}
		case constants.ImportJSON:
			var req dto.ImportRequest
			if err := sonic.Unmarshal(data, &req); err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Isi file JSON tidak valid")
			}
			rows = service.RowsFromJSON(req.Alumni)
		default:
			return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Format file harus CSV atau JSON")
		}
	} else {
		var req dto.ImportRequest
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		rows = service.RowsFromJSON(req.Alumni)
	}

	if len(rows) == 0 && len(pre) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada data alumni untuk diimport")
	}
	report := ac.Svc.Import(c.UserContext(), rows, pre)
	return helper.JsonOK(c, "Import alumni selesai", report)
}

func (ac *AlumniController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Alumni tidak ditemukan")
	case errors.Is(err, service.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}
	log.Printf("[ALUMNI] %s %s gagal: %v", c.Method(), c.Path(), err)
	status, msg := helper.MapDBError(err)
	return helper.JsonError(c, status, msg)
}
