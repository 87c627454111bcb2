package models

import "gorm.io/gorm"

// ForumPost is a discussion thread inside a course forum. Only the author
// may edit or delete it; deleting a post removes its replies.
type ForumPost struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	AuthorID  uint   `json:"author_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsPinned  bool   `json:"is_pinned" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}

// ForumReply answers a post. ParentReplyID allows one level of nesting and
// must point at a reply of the same post. Deleting a reply detaches its
// children instead of cascading.
type ForumReply struct {
	gorm.Model
	PostID        uint   `json:"post_id" gorm:"index;not null"`
	AuthorID      uint   `json:"author_id" gorm:"index;not null"`
	Message       string `json:"message"`
	ParentReplyID *uint  `json:"parent_reply_id"`
	IsDeleted     bool   `gorm:"default:false"`
}
