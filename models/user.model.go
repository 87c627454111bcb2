package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User account statuses. A teacher must be "active" before publishing
// courses; freshly registered (or role-changed) teachers start in
// "pending_validation" until an admin approves them.
const (
	UserStatusActive            = "active"
	UserStatusPendingValidation = "pending_validation"
	UserStatusSuspended         = "suspended"
)

type User struct {
	gorm.Model
	Name      string    `json:"name" gorm:"default:''"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"default:'student'"`
	Status    string    `json:"status" gorm:"default:'active'"`
	Bio       string    `json:"bio" gorm:"default:''"`
	LastLogin time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}
