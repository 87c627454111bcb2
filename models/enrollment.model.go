package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment states. "completed" is terminal; "cancelled" is terminal except
// for in-place reactivation on a repeat enroll.
const (
	EnrollmentStatusPendingPayment = "pending_payment"
	EnrollmentStatusActive         = "active"
	EnrollmentStatusCompleted      = "completed"
	EnrollmentStatusCancelled      = "cancelled"
)

// Enrollment tracks a student's enrollment in a course with progress.
// The (student_id, course_id) unique index is the concurrency guard: two
// racing enrolls for the same pair collide at the database, the loser gets
// a duplicated-key error surfaced as a conflict.
type Enrollment struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"uniqueIndex:idx_student_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_student_course;not null"`
	Status      string     `json:"status" gorm:"default:'pending_payment'"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	IsDeleted   bool       `gorm:"default:false"`
	Course      Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// InitialEnrollmentStatus derives the status a new (or reactivated)
// enrollment starts in from the course's current price.
func InitialEnrollmentStatus(price float64) string {
	if price > 0 {
		return EnrollmentStatusPendingPayment
	}
	return EnrollmentStatusActive
}
