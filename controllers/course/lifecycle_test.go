package courseController_test

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupFullApp(t *testing.T) *fiber.App {
	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	adminRoutes.SetupAdminUserRoutes(app)
	return app
}

// Full happy path: teacher registers and is validated, publishes a free
// course, admin approves it, a student enrolls, finishes it, and cannot
// cancel the completed enrollment.
func TestFreeCourseLifecycle(t *testing.T) {
	app := setupFullApp(t)
	admin, adminToken := createUser(t, "admin", models.RoleAdmin, models.UserStatusActive)
	_ = admin

	code, envelope := request(t, app, "POST", "/auth/signup", "", fiber.Map{
		"name": "new-teacher", "email": "new-teacher@example.com", "password": "password123", "role": "teacher",
	})
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, models.UserStatusPendingValidation, dataField(envelope)["status"])
	teacherID := uint(dataField(envelope)["ID"].(float64))

	code, _ = request(t, app, "PUT", "/admin/users/"+itoa(teacherID)+"/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	var teacher models.User
	database.Database.Db.First(&teacher, teacherID)
	teacherToken, _ := middleware.GenerateJWT(teacher.ID, teacher.Name, teacher.Role, teacher.Email)

	code, envelope = request(t, app, "POST", "/courses/", teacherToken, fiber.Map{
		"title": "Intro to Testing", "description": "Tests as documentation", "price": 0,
	})
	assert.Equal(t, fiber.StatusCreated, code)
	courseID := uint(dataField(envelope)["ID"].(float64))
	assert.Equal(t, models.CourseStatusPending, dataField(envelope)["status"])

	code, _ = request(t, app, "PUT", "/admin/courses/"+itoa(courseID)+"/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	_, studentToken := createUser(t, "student", models.RoleStudent, models.UserStatusActive)

	code, envelope = request(t, app, "POST", "/enrollments/", studentToken, fiber.Map{"course_id": courseID})
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, models.EnrollmentStatusActive, dataField(envelope)["status"])
	assert.Equal(t, float64(0), dataField(envelope)["progress"])
	enrollmentID := uint(dataField(envelope)["ID"].(float64))

	code, envelope = request(t, app, "PUT", "/enrollments/"+itoa(enrollmentID)+"/progress", studentToken, fiber.Map{"progress": 100})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, models.EnrollmentStatusCompleted, dataField(envelope)["status"])
	assert.NotNil(t, dataField(envelope)["completed_at"])

	code, _ = request(t, app, "DELETE", "/enrollments/"+itoa(enrollmentID), studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, code, "a completed course cannot be cancelled")
}

// Paid course: enrollment starts in pending_payment and a repeat enroll on
// the same course is rejected.
func TestPaidCourseLifecycle(t *testing.T) {
	app := setupFullApp(t)
	_, adminToken := createUser(t, "admin", models.RoleAdmin, models.UserStatusActive)
	teacher, teacherToken := createUser(t, "teacher", models.RoleTeacher, models.UserStatusActive)
	_ = teacher

	code, envelope := request(t, app, "POST", "/courses/", teacherToken, fiber.Map{
		"title": "Paid Course", "description": "Worth every cent", "price": 20,
	})
	assert.Equal(t, fiber.StatusCreated, code)
	courseID := uint(dataField(envelope)["ID"].(float64))

	code, _ = request(t, app, "PUT", "/admin/courses/"+itoa(courseID)+"/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	_, studentToken := createUser(t, "student", models.RoleStudent, models.UserStatusActive)

	code, envelope = request(t, app, "POST", "/enrollments/", studentToken, fiber.Map{"course_id": courseID})
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, models.EnrollmentStatusPendingPayment, dataField(envelope)["status"])

	code, _ = request(t, app, "POST", "/enrollments/", studentToken, fiber.Map{"course_id": courseID})
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestTeacherApprovalErrors(t *testing.T) {
	app := setupFullApp(t)
	_, adminToken := createUser(t, "admin", models.RoleAdmin, models.UserStatusActive)
	student, _ := createUser(t, "student", models.RoleStudent, models.UserStatusActive)
	activeTeacher, _ := createUser(t, "active-teacher", models.RoleTeacher, models.UserStatusActive)

	// Approving a non-teacher is its own error class
	code, envelope := request(t, app, "PUT", "/admin/users/"+itoa(student.ID)+"/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "User is not a teacher!", envelope["message"])

	// Approving an already-active teacher is a state conflict
	code, _ = request(t, app, "PUT", "/admin/users/"+itoa(activeTeacher.ID)+"/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = request(t, app, "PUT", "/admin/users/99999/approve", adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAdminSelfProtectionEndpoints(t *testing.T) {
	app := setupFullApp(t)
	admin, adminToken := createUser(t, "admin", models.RoleAdmin, models.UserStatusActive)
	target, _ := createUser(t, "target", models.RoleStudent, models.UserStatusActive)

	code, _ := request(t, app, "PUT", "/admin/users/"+itoa(admin.ID)+"/role", adminToken, fiber.Map{"role": "student"})
	assert.Equal(t, fiber.StatusForbidden, code, "admin cannot change own role")

	code, _ = request(t, app, "PUT", "/admin/users/"+itoa(admin.ID)+"/suspend", adminToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code, "admin cannot suspend self")

	// Promoting a student to teacher sends them through validation
	code, envelope := request(t, app, "PUT", "/admin/users/"+itoa(target.ID)+"/role", adminToken, fiber.Map{"role": "teacher"})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, models.UserStatusPendingValidation, dataField(envelope)["status"])

	code, envelope = request(t, app, "PUT", "/admin/users/"+itoa(target.ID)+"/suspend", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, models.UserStatusSuspended, dataField(envelope)["status"])
}
