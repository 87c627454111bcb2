package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeInput strips markup from every top-level string field of a JSON
// body before it reaches the validators. Applied to user-generated content
// routes (forum posts and replies).
func SanitizeInput(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPut {
		return c.Next()
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Next()
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	for k, v := range fields {
		if str, ok := v.(string); ok {
			fields[k] = sanitizePolicy.Sanitize(str)
		}
	}

	newBody, err := json.Marshal(fields)
	if err != nil {
		return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	c.Request().SetBody(newBody)

	return c.Next()
}
