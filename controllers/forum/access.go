package forumController

import (
	"lms/models"

	"gorm.io/gorm"
)

// canAccessForum decides forum read/write access for a course: an active or
// completed enrollment grants it, as does owning the course. Evaluated fresh
// on every call; a cancelled enrollment loses access immediately.
func canAccessForum(db *gorm.DB, userID, courseID uint) bool {
	var enrollment models.Enrollment
	err := db.Where(
		"student_id = ? AND course_id = ? AND is_deleted = ? AND status IN ?",
		userID, courseID, false,
		[]string{models.EnrollmentStatusActive, models.EnrollmentStatusCompleted},
	).First(&enrollment).Error
	if err == nil {
		return true
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err == nil {
		return course.TeacherID == userID
	}

	return false
}
