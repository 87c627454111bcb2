// Package policy holds the pure authorization predicates. Nothing here
// touches the database; callers resolve users and resources first and pass
// the current state in.
package policy

import "lms/models"

// CanPublishCourses reports whether a user may create or own courses.
// Requires the teacher role and a validated (active) account.
func CanPublishCourses(user *models.User) bool {
	return user.Role == models.RoleTeacher && user.Status == models.UserStatusActive
}

// IsAdmin reports whether a user holds the admin role.
func IsAdmin(user *models.User) bool {
	return user.Role == models.RoleAdmin
}

// IsStudent reports whether a user holds the student role.
func IsStudent(user *models.User) bool {
	return user.Role == models.RoleStudent
}

// IsOwner reports whether a principal owns a resource.
func IsOwner(principalID, ownerID uint) bool {
	return principalID == ownerID
}

// CanChangeRole allows an admin to change any role except their own.
// The self check is deliberate: an admin must never lock themselves out or
// escalate their own record, even though the role would otherwise allow it.
func CanChangeRole(admin *models.User, targetID uint) bool {
	return IsAdmin(admin) && admin.ID != targetID
}

// CanSuspend allows an admin to suspend any account except their own.
func CanSuspend(admin *models.User, targetID uint) bool {
	return IsAdmin(admin) && admin.ID != targetID
}

// CanApproveTeacher allows an admin to validate a pending teacher account.
func CanApproveTeacher(admin *models.User) bool {
	return IsAdmin(admin)
}

// CanModerateCourses allows an admin to approve or reject pending courses.
func CanModerateCourses(user *models.User) bool {
	return IsAdmin(user)
}
