package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "akademiku_backend/internals/features/academy/students/controller"
)

// StudentAdminRoutes mounts the student CRUD under the admin group.
func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := controller.NewStudentController(db)

	students := admin.Group("/students")
	students.Post("/", h.Create)
	students.Get("/", h.List)
	students.Get("/:id", h.GetByID)
	students.Put("/:id", h.Update)
	students.Delete("/:id", h.Deactivate)
}
