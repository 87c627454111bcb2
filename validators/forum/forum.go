package forumValidator

import (
	"fmt"
	"lms/config"
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < config.AppConfig.ForumTitleMinLen {
			errors["title"] = fmt.Sprintf("Title must be at least %d characters long!", config.AppConfig.ForumTitleMinLen)
		}
		if len(strings.TrimSpace(reqData.Message)) < config.AppConfig.ForumPostMinLen {
			errors["message"] = fmt.Sprintf("Message must be at least %d characters long!", config.AppConfig.ForumPostMinLen)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}

func UpdatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   *string `json:"title"`
			Message *string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < config.AppConfig.ForumTitleMinLen {
			errors["title"] = fmt.Sprintf("Title must be at least %d characters long!", config.AppConfig.ForumTitleMinLen)
		}
		if reqData.Message != nil && len(strings.TrimSpace(*reqData.Message)) < config.AppConfig.ForumPostMinLen {
			errors["message"] = fmt.Sprintf("Message must be at least %d characters long!", config.AppConfig.ForumPostMinLen)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPostUpdate", reqData)
		return c.Next()
	}
}

func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message       string `json:"message"`
			ParentReplyID *uint  `json:"parent_reply_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Message)) < config.AppConfig.ForumReplyMinLen {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"message": fmt.Sprintf("Message must be at least %d characters long!", config.AppConfig.ForumReplyMinLen),
			})
		}

		c.Locals("validatedReply", reqData)
		return c.Next()
	}
}

func UpdateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Message string `json:"message"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Message)) < config.AppConfig.ForumReplyMinLen {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"message": fmt.Sprintf("Message must be at least %d characters long!", config.AppConfig.ForumReplyMinLen),
			})
		}

		c.Locals("validatedReplyUpdate", reqData)
		return c.Next()
	}
}

func Pin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Pinned *bool `json:"pinned"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Pinned == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"pinned": "Pinned flag is required!",
			})
		}

		c.Locals("validatedPin", reqData)
		return c.Next()
	}
}

// PostID parses and validates the :id route parameter
func PostID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
		}

		c.Locals("postID", id)
		return c.Next()
	}
}

// ReplyID parses and validates the :id route parameter
func ReplyID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reply id!", nil)
		}

		c.Locals("replyID", id)
		return c.Next()
	}
}
