package courseValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"course_id": "Course id is required!",
			})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

// EnrollmentID parses and validates the :id route parameter
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
		}

		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

// Progress validates the progress payload. Out-of-range values are rejected
// before any state is touched.
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress *int `json:"progress"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"progress": "Progress is required!",
			})
		}
		if *reqData.Progress < 0 || *reqData.Progress > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"progress": "Progress must be between 0 and 100!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// EnrollmentList validates the optional ?status= filter
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")

		switch status {
		case "", models.EnrollmentStatusPendingPayment, models.EnrollmentStatusActive,
			models.EnrollmentStatusCompleted, models.EnrollmentStatusCancelled:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Unknown enrollment status!",
			})
		}

		c.Locals("statusFilter", status)
		return c.Next()
	}
}
