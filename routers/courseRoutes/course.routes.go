package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalogue and teacher-facing course
// routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Material upload (registered before the :id routes)
	courseGroup.Post("/materials/upload", middleware.JWTMiddleware, courseController.UploadMaterial)

	// Teacher course management
	courseGroup.Post("/", middleware.JWTMiddleware, courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.DeleteCourse)

	// Public catalogue (approved courses only)
	courseGroup.Get("/", courseValidator.CourseList(), courseController.GetAllCourses)
	courseGroup.Get("/:id", courseValidator.CourseID(), courseController.GetCourse)
	courseGroup.Get("/:id/materials", courseValidator.CourseID(), courseController.GetCourseMaterials)

	// Enrollee listing for the owning teacher
	courseGroup.Get("/:id/students", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetCourseStudents)
}
