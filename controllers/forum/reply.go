package forumController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"

	"github.com/gofiber/fiber/v2"
)

// CreateReply answers a thread. A parent_reply_id must reference a
// top-level reply of the same post; nesting stops at one level.
func CreateReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	postID := c.Locals("postID").(int)

	var post models.ForumPost
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if !canAccessForum(database.Database.Db, user.ID, post.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this forum!", nil)
	}

	reqData, ok := c.Locals("validatedReply").(*struct {
		Message       string `json:"message"`
		ParentReplyID *uint  `json:"parent_reply_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ParentReplyID != nil {
		var parent models.ForumReply
		if err := database.Database.Db.
			Where("id = ? AND post_id = ? AND is_deleted = ?", *reqData.ParentReplyID, post.ID, false).
			First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Parent reply not found in this post!", nil)
		}
		if parent.ParentReplyID != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Replies can only nest one level!", nil)
		}
	}

	reply := models.ForumReply{
		PostID:        post.ID,
		AuthorID:      user.ID,
		Message:       reqData.Message,
		ParentReplyID: reqData.ParentReplyID,
	}

	if err := database.Database.Db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply created successfully!", reply)
}

// ListReplies returns a thread's replies in creation order so nested
// conversations read chronologically
func ListReplies(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	postID := c.Locals("postID").(int)

	var post models.ForumPost
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if !canAccessForum(database.Database.Db, user.ID, post.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this forum!", nil)
	}

	var replies []models.ForumReply
	if err := database.Database.Db.
		Where("post_id = ? AND is_deleted = ?", post.ID, false).
		Order("created_at asc, id asc").
		Find(&replies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch replies!", nil)
	}

	type ReplyWithAuthor struct {
		models.ForumReply
		AuthorName string `json:"author_name"`
	}

	result := make([]ReplyWithAuthor, len(replies))
	for i, r := range replies {
		var author models.User
		database.Database.Db.Where("id = ?", r.AuthorID).First(&author)
		result[i] = ReplyWithAuthor{
			ForumReply: r,
			AuthorName: author.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Replies fetched successfully!", result)
}

// UpdateReply edits a reply. Author only.
func UpdateReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	replyID := c.Locals("replyID").(int)

	var reply models.ForumReply
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", replyID, false).First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	if !policy.IsOwner(user.ID, reply.AuthorID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can edit this reply!", nil)
	}

	reqData, ok := c.Locals("validatedReplyUpdate").(*struct {
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Model(&reply).Update("message", reqData.Message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update reply!", nil)
	}

	database.Database.Db.Where("id = ?", reply.ID).First(&reply)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply updated successfully!", reply)
}

// DeleteReply removes a reply. Children are detached, not deleted: their
// parent reference is cleared in a single set-based update.
func DeleteReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	replyID := c.Locals("replyID").(int)

	var reply models.ForumReply
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", replyID, false).First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	if !policy.IsOwner(user.ID, reply.AuthorID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this reply!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Model(&models.ForumReply{}).
		Where("parent_reply_id = ?", reply.ID).
		Update("parent_reply_id", nil).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete reply!", nil)
	}
	if err := tx.Model(&reply).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete reply!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply deleted successfully!", nil)
}
