package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminUserRoutes sets up user administration and dashboard routes
func SetupAdminUserRoutes(app *fiber.App) {
	userGroup := app.Group("/admin/users")

	userGroup.Get("/pending-teachers", middleware.JWTMiddleware, adminController.GetPendingTeachers)
	userGroup.Put("/:id/approve", middleware.JWTMiddleware, adminValidator.UserID(), adminController.ApproveTeacher)
	userGroup.Put("/:id/role", middleware.JWTMiddleware, adminValidator.UserID(), adminValidator.ChangeRole(), adminController.ChangeRole)
	userGroup.Put("/:id/suspend", middleware.JWTMiddleware, adminValidator.UserID(), adminController.SuspendUser)

	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, adminController.DashboardStats)
}
