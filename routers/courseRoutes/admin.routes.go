package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the course moderation routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/courses")

	adminGroup.Get("/pending", middleware.JWTMiddleware, courseController.AdminGetPendingCourses)
	adminGroup.Put("/:id/approve", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.AdminApproveCourse)
	adminGroup.Put("/:id/reject", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.RejectCourse(), courseController.AdminRejectCourse)
}
