package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"

	"github.com/gofiber/fiber/v2"
)

// AdminGetPendingCourses lists courses awaiting moderation
func AdminGetPendingCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !policy.CanModerateCourses(&user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = ?", models.CourseStatusPending, false).
		Order("created_at asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", courses)
}

// decideCourse runs the shared approve/reject conditional update. The write
// is a compare-and-swap on status: only a course still in pending_approval
// is touched, so of two racing moderators exactly one wins and the other
// observes the conflict.
func decideCourse(c *fiber.Ctx, newStatus, reason, successMsg string) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !policy.CanModerateCourses(&user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.CourseStatusRejected {
		updates["reject_reason"] = reason
	}

	result := database.Database.Db.Model(&models.Course{}).
		Where("id = ? AND status = ? AND is_deleted = ?", courseID, models.CourseStatusPending, false).
		Updates(updates)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if result.RowsAffected == 0 {
		// Zero rows: either the course is gone or it already left pending
		var course models.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is not pending approval!", nil)
	}

	var course models.Course
	database.Database.Db.Where("id = ?", courseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, successMsg, course)
}

// AdminApproveCourse moves a pending course to approved
func AdminApproveCourse(c *fiber.Ctx) error {
	return decideCourse(c, models.CourseStatusApproved, "", "Course approved successfully!")
}

// AdminRejectCourse moves a pending course to rejected with an optional reason
func AdminRejectCourse(c *fiber.Ctx) error {
	reason := ""
	if reqData, ok := c.Locals("validatedReject").(*struct {
		Reason string `json:"reason"`
	}); ok {
		reason = reqData.Reason
	}
	return decideCourse(c, models.CourseStatusRejected, reason, "Course rejected successfully!")
}
