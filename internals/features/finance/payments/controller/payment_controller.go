package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/features/finance/payments/dto"
	model "akademiku_backend/internals/features/finance/payments/model"
	"akademiku_backend/internals/features/finance/payments/service"
	notif "akademiku_backend/internals/features/notifications/service"
	helper "akademiku_backend/internals/helpers"
	helperAuth "akademiku_backend/internals/helpers/auth"
)

type PaymentController struct {
	DB       *gorm.DB
	Notifier *notif.Notifier
}

func NewPaymentController(db *gorm.DB, notifier *notif.Notifier) *PaymentController {
	return &PaymentController{DB: db, Notifier: notifier}
}

var validate = validator.New()

/* ======================= LIST ======================= */
// GET /api/a/payments?status=&student_id=&page=&per_page=
func (h *PaymentController) List(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.PaymentModel{}).
		Where("payment_academy_id = ?", academyID)
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if sid := c.Query("student_id"); sid != "" {
		studentID, err := uuid.Parse(sid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("payment_student_id = ?", studentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count payments")
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list payments")
	}

	return helper.Success(c, "OK", fiber.Map{
		"payments":   dto.FromModels(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

/* ======================= GET BY ID ======================= */
// GET /api/a/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}

	var row model.PaymentModel
	if err := h.DB.
		Where("payment_id = ? AND payment_academy_id = ?", id, academyID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.FromModel(row))
}

/* ======================= VERIFY ======================= */
// PUT /api/a/payments/:id/verify
func (h *PaymentController) Verify(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}

	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.VerifyPayment(h.DB, h.Notifier, academyID, id, req, time.Now())
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	return helper.Success(c, "Payment verified", dto.FromModel(*p))
}

/* ======================= BULK VERIFY ======================= */
// POST /api/a/payments/bulk-verify
func (h *PaymentController) BulkVerify(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := service.BulkVerifyPayments(h.DB, h.Notifier, academyID, req, time.Now())
	return helper.Success(c, "Bulk verification finished", res)
}

/* ======================= GENERATE MONTHLY ======================= */
// POST /api/a/payments/generate-monthly (hit by the external cron)
func (h *PaymentController) GenerateMonthly(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	res, err := service.GenerateMonthlyPayments(service.NewPaymentStore(h.DB), academyID, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Monthly payment generation finished", res)
}

/* ======================= SEND REMINDERS ======================= */
// POST /api/a/payments/send-reminders        (whole roster)
// POST /api/a/payments/:id/send-reminders    (manual single)
func (h *PaymentController) SendReminders(c *fiber.Ctx) error {
	academyID, err := helperAuth.GetAcademyIDFromToken(c)
	if err != nil {
		return err
	}

	var paymentID *uuid.UUID
	if idStr := c.Params("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
		}
		paymentID = &id
	}

	res := service.SendPaymentReminders(service.NewPaymentStore(h.DB), h.Notifier, academyID, paymentID, time.Now())
	return helper.Success(c, "Reminder run finished", res)
}
