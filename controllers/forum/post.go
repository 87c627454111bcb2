package forumController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"

	"github.com/gofiber/fiber/v2"
)

// CreatePost opens a new discussion thread in a course forum
func CreatePost(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canAccessForum(database.Database.Db, user.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this forum!", nil)
	}

	reqData, ok := c.Locals("validatedPost").(*struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	post := models.ForumPost{
		CourseID: course.ID,
		AuthorID: user.ID,
		Title:    reqData.Title,
		Message:  reqData.Message,
	}

	if err := database.Database.Db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", post)
}

// ListPosts returns a course's threads, pinned first then newest first,
// annotated with the author and a reply count
func ListPosts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canAccessForum(database.Database.Db, user.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this forum!", nil)
	}

	var posts []models.ForumPost
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("is_pinned desc, created_at desc, id desc").
		Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	type PostWithMeta struct {
		models.ForumPost
		AuthorName string `json:"author_name"`
		ReplyCount int64  `json:"reply_count"`
	}

	result := make([]PostWithMeta, len(posts))
	for i, p := range posts {
		var author models.User
		database.Database.Db.Where("id = ?", p.AuthorID).First(&author)

		var replyCount int64
		database.Database.Db.Model(&models.ForumReply{}).
			Where("post_id = ? AND is_deleted = ?", p.ID, false).
			Count(&replyCount)

		result[i] = PostWithMeta{
			ForumPost:  p,
			AuthorName: author.Name,
			ReplyCount: replyCount,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", result)
}

// GetPost returns a single thread to anyone with forum access
func GetPost(c *fiber.Ctx) error {
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post fetched successfully!", post)
}

// UpdatePost edits a thread. Author only; existence is checked before
// ownership so a missing post never reads as a permission problem.
func UpdatePost(c *fiber.Ctx) error {
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

	if !policy.IsOwner(user.ID, post.AuthorID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can edit this post!", nil)
	}

	reqData, ok := c.Locals("validatedPostUpdate").(*struct {
		Title   *string `json:"title"`
		Message *string `json:"message"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		post.Title = *reqData.Title
	}
	if reqData.Message != nil {
		post.Message = *reqData.Message
	}

	if err := database.Database.Db.Save(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost removes a thread and all its replies in one transaction
func DeletePost(c *fiber.Ctx) error {
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

	if !policy.IsOwner(user.ID, post.AuthorID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this post!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Model(&models.ForumReply{}).Where("post_id = ?", post.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}
	if err := tx.Model(&post).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}

// PinPost pins or unpins a thread. Only the course teacher may do this.
func PinPost(c *fiber.Ctx) error {
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

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", post.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !policy.IsOwner(user.ID, course.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course teacher can pin posts!", nil)
	}

	reqData, ok := c.Locals("validatedPin").(*struct {
		Pinned *bool `json:"pinned"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Model(&post).Update("is_pinned", *reqData.Pinned).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	database.Database.Db.Where("id = ?", post.ID).First(&post)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}
