package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course approval states. New courses are created in "pending_approval";
// only an admin moves them to "approved" or "rejected", and only from
// "pending_approval". "draft" is reserved for a future save-as-draft flow.
const (
	CourseStatusDraft    = "draft"
	CourseStatusPending  = "pending_approval"
	CourseStatusApproved = "approved"
	CourseStatusRejected = "rejected"
)

// Course represents a learning course owned by the teacher that created it.
// Ownership never changes after creation.
type Course struct {
	gorm.Model
	TeacherID    uint           `json:"teacher_id" gorm:"index;not null"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Level        string         `json:"level"`
	Price        float64        `json:"price" gorm:"default:0"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Tags         datatypes.JSON `json:"tags"`
	Status       string         `json:"status" gorm:"default:'pending_approval'"`
	RejectReason string         `json:"reject_reason"`
	IsDeleted    bool           `gorm:"default:false"`
}

// CourseMaterial is a single content item attached to a course. The URL,
// ContentID, SizeBytes and Kind come back from the content store on upload.
type CourseMaterial struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Type       string `json:"type"` // video, pdf, link, ...
	URL        string `json:"url"`
	ContentID  string `json:"content_id"`
	SizeBytes  int64  `json:"size_bytes" gorm:"default:0"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
