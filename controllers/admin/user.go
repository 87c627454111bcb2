package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"

	"github.com/gofiber/fiber/v2"
)

// GetPendingTeachers lists teacher accounts awaiting validation
func GetPendingTeachers(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !policy.IsAdmin(&user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	var teachers []models.User
	if err := database.Database.Db.
		Where("role = ? AND status = ? AND is_deleted = ?", models.RoleTeacher, models.UserStatusPendingValidation, false).
		Order("created_at asc").
		Find(&teachers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending teachers!", nil)
	}

	for i := range teachers {
		teachers[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending teachers fetched successfully!", teachers)
}

// ApproveTeacher validates a pending teacher account. Approving a non-teacher
// is its own error class, distinct from the not-pending conflict.
func ApproveTeacher(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !policy.CanApproveTeacher(&user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if target.Role != models.RoleTeacher {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is not a teacher!", nil)
	}

	if target.Status != models.UserStatusPendingValidation {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Teacher is not pending validation!", nil)
	}

	if err := database.Database.Db.Model(&target).Update("status", models.UserStatusActive).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve teacher!", nil)
	}

	target.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Teacher approved successfully!", target)
}

// ChangeRole switches a user's role. Moving someone to teacher puts them
// back through validation.
func ChangeRole(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	if !policy.CanChangeRole(&user, uint(targetID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot change this user's role!", nil)
	}

	reqData, ok := c.Locals("validatedRole").(*struct {
		Role string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{"role": reqData.Role}
	if reqData.Role == models.RoleTeacher && target.Role != models.RoleTeacher {
		updates["status"] = models.UserStatusPendingValidation
	}

	if err := database.Database.Db.Model(&target).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change role!", nil)
	}

	target.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role changed successfully!", target)
}

// SuspendUser suspends an account
func SuspendUser(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	targetID := c.Locals("targetUserID").(int)

	if !policy.CanSuspend(&user, uint(targetID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot suspend this account!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&target).Update("status", models.UserStatusSuspended).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to suspend user!", nil)
	}

	target.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User suspended successfully!", target)
}
