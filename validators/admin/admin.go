package adminValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// UserID parses and validates the :id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		c.Locals("targetUserID", id)
		return c.Next()
	}
}

func ChangeRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Role {
		case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be student, teacher or admin!",
			})
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}
