package forumRoutes

import (
	forumController "lms/controllers/forum"
	"lms/middleware"
	courseValidator "lms/validators/course"
	forumValidator "lms/validators/forum"

	"github.com/gofiber/fiber/v2"
)

// SetupForumRoutes sets up course forum routes. Writes go through the input
// sanitizer before validation.
func SetupForumRoutes(app *fiber.App) {
	// Thread listing and creation hang off the course
	app.Post("/courses/:id/forum", middleware.JWTMiddleware, middleware.SanitizeInput, courseValidator.CourseID(), forumValidator.CreatePost(), forumController.CreatePost)
	app.Get("/courses/:id/forum", middleware.JWTMiddleware, courseValidator.CourseID(), forumController.ListPosts)

	postGroup := app.Group("/forum/posts")
	postGroup.Get("/:id", middleware.JWTMiddleware, forumValidator.PostID(), forumController.GetPost)
	postGroup.Put("/:id", middleware.JWTMiddleware, middleware.SanitizeInput, forumValidator.PostID(), forumValidator.UpdatePost(), forumController.UpdatePost)
	postGroup.Delete("/:id", middleware.JWTMiddleware, forumValidator.PostID(), forumController.DeletePost)
	postGroup.Put("/:id/pin", middleware.JWTMiddleware, forumValidator.PostID(), forumValidator.Pin(), forumController.PinPost)

	postGroup.Post("/:id/replies", middleware.JWTMiddleware, middleware.SanitizeInput, forumValidator.PostID(), forumValidator.CreateReply(), forumController.CreateReply)
	postGroup.Get("/:id/replies", middleware.JWTMiddleware, forumValidator.PostID(), forumController.ListReplies)

	replyGroup := app.Group("/forum/replies")
	replyGroup.Put("/:id", middleware.JWTMiddleware, middleware.SanitizeInput, forumValidator.ReplyID(), forumValidator.UpdateReply(), forumController.UpdateReply)
	replyGroup.Delete("/:id", middleware.JWTMiddleware, forumValidator.ReplyID(), forumController.DeleteReply)
}
