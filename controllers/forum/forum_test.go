package forumController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	forumRoutes "lms/routers/forumRoutes"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupTestApp(t *testing.T) *fiber.App {
	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	forumRoutes.SetupForumRoutes(app)
	return app
}

func createUser(t *testing.T, name, role, status string) (models.User, string) {
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
		Status:   status,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	envelope := map[string]interface{}{}
	json.NewDecoder(resp.Body).Decode(&envelope)
	return resp.StatusCode, envelope
}

func dataField(envelope map[string]interface{}) map[string]interface{} {
	data, _ := envelope["data"].(map[string]interface{})
	return data
}

// seedForum creates a teacher-owned approved course plus an enrolled student
func seedForum(t *testing.T) (models.Course, models.User, string, models.User, string) {
	teacher, teacherToken := createUser(t, "teacher", models.RoleTeacher, models.UserStatusActive)
	student, studentToken := createUser(t, "student", models.RoleStudent, models.UserStatusActive)

	course := models.Course{
		TeacherID:   teacher.ID,
		Title:       "Forum course",
		Description: "Course with a forum",
		Status:      models.CourseStatusApproved,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}

	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: models.EnrollmentStatusActive}
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to seed enrollment: %v", err)
	}

	return course, teacher, teacherToken, student, studentToken
}

func seedPost(t *testing.T, courseID, authorID uint) models.ForumPost {
	post := models.ForumPost{CourseID: courseID, AuthorID: authorID, Title: "Seed title", Message: "Seed message text"}
	if err := database.Database.Db.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func TestForumAccessGate(t *testing.T) {
	app := setupTestApp(t)
	course, _, teacherToken, _, studentToken := seedForum(t)

	postBody := fiber.Map{"title": "Need help", "message": "Where do I start with chapter two?"}
	forumPath := "/courses/" + itoa(course.ID) + "/forum"

	// Enrolled (active) student and owning teacher both have access
	code, _ := request(t, app, "POST", forumPath, studentToken, postBody)
	assert.Equal(t, fiber.StatusCreated, code)
	code, _ = request(t, app, "GET", forumPath, teacherToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	// A non-enrolled student is denied both ways
	_, outsiderToken := createUser(t, "outsider", models.RoleStudent, models.UserStatusActive)
	code, _ = request(t, app, "GET", forumPath, outsiderToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = request(t, app, "POST", forumPath, outsiderToken, postBody)
	assert.Equal(t, fiber.StatusForbidden, code)

	// pending_payment does not grant access
	pendingStudent, pendingToken := createUser(t, "pending", models.RoleStudent, models.UserStatusActive)
	database.Database.Db.Create(&models.Enrollment{
		StudentID: pendingStudent.ID, CourseID: course.ID, Status: models.EnrollmentStatusPendingPayment,
	})
	code, _ = request(t, app, "GET", forumPath, pendingToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// Becoming active grants it on the next call, cancelling revokes it
	database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ?", pendingStudent.ID).
		Update("status", models.EnrollmentStatusActive)
	code, _ = request(t, app, "GET", forumPath, pendingToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ?", pendingStudent.ID).
		Update("status", models.EnrollmentStatusCancelled)
	code, _ = request(t, app, "GET", forumPath, pendingToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestCreatePostValidation(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, _, studentToken := seedForum(t)
	forumPath := "/courses/" + itoa(course.ID) + "/forum"

	code, _ := request(t, app, "POST", forumPath, studentToken, fiber.Map{"title": "Hey", "message": "Long enough message"})
	assert.Equal(t, fiber.StatusBadRequest, code, "title below the floor")

	code, _ = request(t, app, "POST", forumPath, studentToken, fiber.Map{"title": "Long enough", "message": "short"})
	assert.Equal(t, fiber.StatusBadRequest, code, "message below the floor")

	code, _ = request(t, app, "POST", "/courses/99999/forum", studentToken, fiber.Map{"title": "Long enough", "message": "Long enough message"})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestPostAuthorOnlyMutation(t *testing.T) {
	app := setupTestApp(t)
	course, _, teacherToken, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)

	path := "/forum/posts/" + itoa(post.ID)

	// The teacher has forum access but is not the author
	code, _ := request(t, app, "PUT", path, teacherToken, fiber.Map{"message": "teacher rewrite attempt"})
	assert.Equal(t, fiber.StatusForbidden, code)
	code, _ = request(t, app, "DELETE", path, teacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// Missing resources read as not-found, not permission-denied
	code, _ = request(t, app, "PUT", "/forum/posts/99999", teacherToken, fiber.Map{"message": "does not matter"})
	assert.Equal(t, fiber.StatusNotFound, code)

	code, envelope := request(t, app, "PUT", path, studentToken, fiber.Map{"message": "author edited message"})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "author edited message", dataField(envelope)["message"])

	code, _ = request(t, app, "DELETE", path, studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = request(t, app, "GET", path, studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestDeletePostCascadesReplies(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)

	database.Database.Db.Create(&models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: "first"})
	database.Database.Db.Create(&models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: "second"})

	code, _ := request(t, app, "DELETE", "/forum/posts/"+itoa(post.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	var count int64
	database.Database.Db.Model(&models.ForumReply{}).
		Where("post_id = ? AND is_deleted = ?", post.ID, false).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReplyParentValidation(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)
	otherPost := seedPost(t, course.ID, student.ID)

	repliesPath := "/forum/posts/" + itoa(post.ID) + "/replies"

	code, envelope := request(t, app, "POST", repliesPath, studentToken, fiber.Map{"message": "top level reply"})
	assert.Equal(t, fiber.StatusCreated, code)
	parentID := uint(dataField(envelope)["ID"].(float64))

	// Nested one level under an existing reply of the same post
	code, envelope = request(t, app, "POST", repliesPath, studentToken, fiber.Map{
		"message": "nested reply", "parent_reply_id": parentID,
	})
	assert.Equal(t, fiber.StatusCreated, code)
	childID := uint(dataField(envelope)["ID"].(float64))

	// No second nesting level
	code, _ = request(t, app, "POST", repliesPath, studentToken, fiber.Map{
		"message": "too deep", "parent_reply_id": childID,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	// Parent must belong to the same post
	otherReply := models.ForumReply{PostID: otherPost.ID, AuthorID: student.ID, Message: "elsewhere"}
	database.Database.Db.Create(&otherReply)
	code, _ = request(t, app, "POST", repliesPath, studentToken, fiber.Map{
		"message": "cross-post parent", "parent_reply_id": otherReply.ID,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	// Unknown parent
	code, _ = request(t, app, "POST", repliesPath, studentToken, fiber.Map{
		"message": "ghost parent", "parent_reply_id": 99999,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestDeleteReplyDetachesChildren(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)

	parent := models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: "parent"}
	database.Database.Db.Create(&parent)
	child := models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: "child", ParentReplyID: &parent.ID}
	database.Database.Db.Create(&child)

	code, _ := request(t, app, "DELETE", "/forum/replies/"+itoa(parent.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	var survivor models.ForumReply
	database.Database.Db.First(&survivor, child.ID)
	assert.False(t, survivor.IsDeleted, "children survive the parent")
	assert.Nil(t, survivor.ParentReplyID, "parent reference cleared")
}

func TestListRepliesChronological(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)

	for _, msg := range []string{"first", "second", "third"} {
		database.Database.Db.Create(&models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: msg})
	}

	code, envelope := request(t, app, "GET", "/forum/posts/"+itoa(post.ID)+"/replies", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	replies := envelope["data"].([]interface{})
	assert.Len(t, replies, 3)
	first := replies[0].(map[string]interface{})
	assert.Equal(t, "first", first["message"])
	assert.Equal(t, "student", first["author_name"])
}

func TestPinnedPostsListFirst(t *testing.T) {
	app := setupTestApp(t)
	course, _, teacherToken, student, studentToken := seedForum(t)

	older := seedPost(t, course.ID, student.ID)
	seedPost(t, course.ID, student.ID)

	// Only the course teacher may pin
	pinPath := "/forum/posts/" + itoa(older.ID) + "/pin"
	code, _ := request(t, app, "PUT", pinPath, studentToken, fiber.Map{"pinned": true})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = request(t, app, "PUT", pinPath, teacherToken, fiber.Map{"pinned": true})
	assert.Equal(t, fiber.StatusOK, code)

	code, envelope := request(t, app, "GET", "/courses/"+itoa(course.ID)+"/forum", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	posts := envelope["data"].([]interface{})
	assert.Len(t, posts, 2)
	first := posts[0].(map[string]interface{})
	assert.Equal(t, true, first["is_pinned"], "pinned post sorts ahead of newer posts")
}

func TestListPostsAnnotations(t *testing.T) {
	app := setupTestApp(t)
	course, _, _, student, studentToken := seedForum(t)
	post := seedPost(t, course.ID, student.ID)
	database.Database.Db.Create(&models.ForumReply{PostID: post.ID, AuthorID: student.ID, Message: "a reply"})

	code, envelope := request(t, app, "GET", "/courses/"+itoa(course.ID)+"/forum", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	posts := envelope["data"].([]interface{})
	assert.Len(t, posts, 1)
	first := posts[0].(map[string]interface{})
	assert.Equal(t, "student", first["author_name"])
	assert.Equal(t, float64(1), first["reply_count"])
}
