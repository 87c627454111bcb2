package courseController

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/policy"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse enrolls the calling student in an approved course. A
// cancelled enrollment for the same pair is reactivated in place; any other
// existing enrollment is a conflict. The unique (student, course) index
// backstops two racing enrolls.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !policy.IsStudent(&user) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can enroll!", nil)
	}

	reqData, ok := c.Locals("validatedEnroll").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	course, err := existsCourse(db, reqData.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status != models.CourseStatusApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is not available for enrollment!", nil)
	}

	var existing models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		First(&existing).Error; err == nil {
		if existing.Status != models.EnrollmentStatusCancelled {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}

		// Reactivate the cancelled row. Status is re-derived from the
		// course's current price, not the price at first enrollment.
		updates := map[string]interface{}{
			"status":       models.InitialEnrollmentStatus(course.Price),
			"progress":     0,
			"cancelled_at": nil,
			"completed_at": nil,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}

		db.Where("id = ?", existing.ID).First(&existing)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment reactivated successfully!", existing)
	}

	enrollment := models.Enrollment{
		StudentID: user.ID,
		CourseID:  course.ID,
		Status:    models.InitialEnrollmentStatus(course.Price),
		Progress:  0,
	}

	if err := db.Create(&enrollment).Error; err != nil {
		// The loser of a concurrent enroll hits the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetMyCourses lists the calling student's enrollments, optionally filtered
// by status
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db.
		Where("student_id = ? AND is_deleted = ?", user.ID, false)

	if status, ok := c.Locals("statusFilter").(string); ok && status != "" {
		db = db.Where("status = ?", status)
	}

	var enrollments []models.Enrollment
	if err := db.Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetStudentStats aggregates the calling student's enrollment counts and
// mean progress
func GetStudentStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	counts := map[string]int64{}
	for _, status := range []string{
		models.EnrollmentStatusPendingPayment,
		models.EnrollmentStatusActive,
		models.EnrollmentStatusCompleted,
		models.EnrollmentStatusCancelled,
	} {
		var n int64
		db.Model(&models.Enrollment{}).
			Where("student_id = ? AND status = ? AND is_deleted = ?", user.ID, status, false).
			Count(&n)
		counts[status] = n
	}

	var total int64
	db.Model(&models.Enrollment{}).Where("student_id = ? AND is_deleted = ?", user.ID, false).Count(&total)

	var meanProgress float64
	db.Model(&models.Enrollment{}).
		Where("student_id = ? AND is_deleted = ?", user.ID, false).
		Select("COALESCE(AVG(progress), 0)").
		Row().Scan(&meanProgress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total":         total,
		"by_status":     counts,
		"mean_progress": meanProgress,
	})
}

// GetEnrollment returns a single enrollment to its student or to the
// teacher owning the course
func GetEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !policy.IsOwner(user.ID, enrollment.StudentID) {
		var course models.Course
		if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil ||
			!policy.IsOwner(user.ID, course.TeacherID) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot view this enrollment!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateProgress records study progress. Hitting 100 while active flips the
// enrollment to completed and stamps the completion time in the same write,
// so a progress=100/status=active row is never observable.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !policy.IsOwner(user.ID, enrollment.StudentID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot update this enrollment!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress *int `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	progress := *reqData.Progress

	updates := map[string]interface{}{"progress": progress}
	if progress >= 100 && enrollment.Status == models.EnrollmentStatusActive {
		completedAt := time.Now()
		updates["status"] = models.EnrollmentStatusCompleted
		updates["completed_at"] = &completedAt
	}

	if err := database.Database.Db.Model(&enrollment).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	database.Database.Db.Where("id = ?", enrollment.ID).First(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enrollment)
}

// CancelEnrollment cancels an enrollment. Cancelling twice is a no-op that
// returns the record as-is; cancelling a completed enrollment is a conflict.
func CancelEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !policy.IsOwner(user.ID, enrollment.StudentID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot cancel this enrollment!", nil)
	}

	if enrollment.Status == models.EnrollmentStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot cancel a completed course!", nil)
	}

	if enrollment.Status == models.EnrollmentStatusCancelled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment already cancelled.", enrollment)
	}

	cancelledAt := time.Now()
	if err := database.Database.Db.Model(&enrollment).Updates(map[string]interface{}{
		"status":       models.EnrollmentStatusCancelled,
		"cancelled_at": &cancelledAt,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel enrollment!", nil)
	}

	database.Database.Db.Where("id = ?", enrollment.ID).First(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled successfully!", enrollment)
}

// GetCourseStudents lists enrollees of a course for its owning teacher
func GetCourseStudents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := existsCourse(database.Database.Db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !policy.IsOwner(user.ID, course.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithStudent struct {
		models.Enrollment
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	result := make([]EnrollmentWithStudent, len(enrollments))
	for i, e := range enrollments {
		var student models.User
		database.Database.Db.Where("id = ?", e.StudentID).First(&student)
		result[i] = EnrollmentWithStudent{
			Enrollment:   e,
			StudentName:  student.Name,
			StudentEmail: student.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course students fetched successfully!", result)
}
