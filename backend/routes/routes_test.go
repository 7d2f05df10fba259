package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studylog/backend/config"
	"studylog/backend/services"
	"studylog/backend/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))
	require.NoError(t, services.NewGormCatalog(db).Seed())

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "8080"}
	app := fiber.New()
	SetupRoutes(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username":     "testuser",
		"email":        "test@example.com",
		"password":     "password123",
		"display_name": "テスト太郎",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := result["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterReturnsTokenAndUser(t *testing.T) {
	app, _ := newTestApp(t)

	status, result := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])
	user := result["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	assert.Equal(t, "newuser", user["display_name"])
}

func TestRegisterValidatesInput(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "u",
		"email":    "",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginWritesLedgerAndSystemJournalOnce(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	// Second login the same day must not add another day or entry.
	status, _ := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", "/api/journal", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	entries := result["entries"].([]interface{})
	assert.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, true, entry["IsSystem"])

	status, result = doJSON(t, app, "GET", "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, result["login_days"].([]interface{}), 1)
}

func TestCoursesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, "GET", "/api/courses/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestEnrollAndCompleteLessonsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, result := doJSON(t, app, "POST", "/api/courses/html-css/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Enrolled", result["message"])

	// Enrolling again stays a no-op.
	status, _ = doJSON(t, app, "POST", "/api/courses/html-css/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result = doJSON(t, app, "POST", "/api/courses/html-css/lessons", token, map[string]interface{}{
		"completed_lessons": []string{"html-css-lesson-1", "html-css-lesson-2"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(67), result["progress"])

	status, result = doJSON(t, app, "GET", "/api/progress", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	progress := result["progress"].(map[string]interface{})
	assert.Equal(t, float64(67), progress["html-css"])
}

func TestEnrollUnknownCourseReturns404(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/courses/no-such-course/enroll", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCourseDetailsIncludeProgress(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/courses/react/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, "POST", "/api/courses/react/lessons", token, map[string]interface{}{
		"completed_lessons": []string{"react-lesson-1"},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", "/api/courses/react", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(33), result["progress"])
	course := result["course"].(map[string]interface{})
	assert.Equal(t, "React入門", course["title"])
	assert.Len(t, course["lessons"].([]interface{}), 3)
}

func TestJournalContentIsRequired(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/journal", token, map[string]string{
		"content": "   ",
		"health":  "良好",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestJournalRoundTripWithRangeFilter(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	for _, date := range []string{"2024-01-15", "2024-02-01"} {
		status, result := doJSON(t, app, "POST", "/api/journal", token, map[string]string{
			"content":  "entry " + date,
			"health":   "良好",
			"reaction": "😊",
			"date":     date,
		})
		require.Equal(t, fiber.StatusCreated, status)
		require.NotEmpty(t, result["id"])
	}

	status, result := doJSON(t, app, "GET", "/api/journal?start=2024-01-01&end=2024-01-31", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	entries := result["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "entry 2024-01-15", entry["Content"])
}

func TestDashboardAggregatesEnrollments(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/courses/html-css/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, "POST", "/api/courses/javascript/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, "POST", "/api/courses/html-css/lessons", token, map[string]interface{}{
		"completed_lessons": []string{"html-css-lesson-1", "html-css-lesson-2", "html-css-lesson-3"},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	// (100 + 0) / 2
	assert.Equal(t, float64(50), result["overall_progress"])
	courses := result["courses"].([]interface{})
	require.Len(t, courses, 2)
	first := courses[0].(map[string]interface{})
	assert.Equal(t, "html-css", first["course_id"])
	assert.Equal(t, float64(3), first["completed"])
	assert.Equal(t, float64(3), first["total"])
}

func TestLoginDaysEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "GET", "/api/logins/2024/13", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, result := doJSON(t, app, "GET", "/api/logins/2020/01", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, result["days"].([]interface{}))
}

func TestProfileShowsEnrollments(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, "POST", "/api/courses/html-css/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, app, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "testuser", data["username"])
	assert.Equal(t, "テスト太郎", data["display_name"])
	enrolled := data["enrolled_courses"].([]interface{})
	assert.Equal(t, []interface{}{"html-css"}, enrolled)
}
