package enrollmentRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up all student enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollments")

	enrollGroup.Post("/", middleware.JWTMiddleware, courseValidator.Enroll(), courseController.EnrollInCourse)

	// Static paths before the :id routes
	enrollGroup.Get("/my-courses", middleware.JWTMiddleware, courseValidator.EnrollmentList(), courseController.GetMyCourses)
	enrollGroup.Get("/stats/student", middleware.JWTMiddleware, courseController.GetStudentStats)

	enrollGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.EnrollmentID(), courseController.GetEnrollment)
	enrollGroup.Put("/:id/progress", middleware.JWTMiddleware, courseValidator.EnrollmentID(), courseValidator.Progress(), courseController.UpdateProgress)
	enrollGroup.Delete("/:id", middleware.JWTMiddleware, courseValidator.EnrollmentID(), courseController.CancelEnrollment)
}
