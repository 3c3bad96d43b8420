package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "akademiku_backend/internals/features/academy/students/dto"
	model "akademiku_backend/internals/features/academy/students/model"
	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

var validate = validator.New()

/* ======================= CREATE ======================= */
// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(academyID)
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Student created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/students?page=&per_page=&active=
func (h *StudentController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.StudentModel{}).
		Where("student_academy_id = ?", academyID)
	if active := c.Query("active"); active == "true" {
		q = q.Where("student_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count students")
	}

	var rows []model.StudentModel
	if err := q.Order("student_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}

	return helper.Success(c, "OK", fiber.Map{
		"students":   dto.FromModels(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

/* ======================= GET BY ID ======================= */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	row, err := h.findScoped(c.Params("id"), academyID)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", dto.FromModel(*row))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	row, err := h.findScoped(c.Params("id"), academyID)
	if err != nil {
		return err
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.Apply(row)
	if err := h.DB.Save(row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.Success(c, "Student updated", dto.FromModel(*row))
}

/* ======================= DEACTIVATE ======================= */
// DELETE /api/a/students/:id (soft: mark inactive so billing stops)
func (h *StudentController) Deactivate(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	row, err := h.findScoped(c.Params("id"), academyID)
	if err != nil {
		return err
	}

	row.StudentIsActive = false
	if err := h.DB.Save(row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate student")
	}

	return helper.Success(c, "Student deactivated", dto.FromModel(*row))
}

/* ======================= internal ======================= */

func (h *StudentController) findScoped(idStr string, academyID uuid.UUID) (*model.StudentModel, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var row model.StudentModel
	if err := h.DB.
		Where("student_id = ? AND student_academy_id = ?", id, academyID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}
