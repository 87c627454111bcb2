package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// DashboardStats returns platform-wide totals for the admin dashboard
func DashboardStats(c *fiber.Ctx) error {
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

	db := database.Database.Db

	var totalStudents, totalTeachers int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Count(&totalTeachers)

	var totalCourses, pendingCourses int64
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Course{}).Where("status = ? AND is_deleted = ?", models.CourseStatusPending, false).Count(&pendingCourses)

	var totalEnrollments, monthEnrollments int64
	db.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)

	monthStart := now.BeginningOfMonth()
	db.Model(&models.Enrollment{}).
		Where("created_at BETWEEN ? AND ? AND is_deleted = ?", monthStart, time.Now(), false).
		Count(&monthEnrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":         totalStudents,
		"total_teachers":         totalTeachers,
		"total_courses":          totalCourses,
		"pending_courses":        pendingCourses,
		"total_enrollments":      totalEnrollments,
		"enrollments_this_month": monthEnrollments,
	})
}
