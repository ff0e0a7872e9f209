package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xompass/gradebook-api/accounts"
	"github.com/xompass/gradebook-api/grades"
	"github.com/xompass/gradebook-api/rest"
	"github.com/xompass/gradebook-api/token"
)

// newTestApp wires the whole HTTP surface against in-memory stores. The rate
// limiter stays off so tests do not need Redis.
func newTestApp(t *testing.T) *rest.RestApp {
	t.Helper()

	codec, err := token.NewCodec([]byte("api-test-secret"))
	require.NoError(t, err)

	userStore := accounts.NewMemoryUserStore()
	gradeStore := grades.NewMemoryGradeStore()

	accountService := accounts.NewService(userStore, codec, time.Hour)
	gradeService := grades.NewService(gradeStore, userStore)

	app := rest.NewRestApp(rest.RestAppOptions{
		Name:       "gradebook-api-test",
		Port:       0,
		LogLevel:   rest.LogLevelError,
		Authorizer: NewAuthorizer(codec),
	})

	RegisterRoutes(app, NewAuthHandlers(accountService), NewGradeHandlers(gradeService))
	return app
}

func doJSON(app *rest.RestApp, method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	app.EchoApp.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, app *rest.RestApp, username, role string) {
	t.Helper()

	body := `{"username":"` + username + `","email":"` + username + `@school.edu","password":"password123","role":"` + role + `"}`
	rec := doJSON(app, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func loginUser(t *testing.T, app *rest.RestApp, username string) string {
	t.Helper()

	rec := doJSON(app, http.MethodPost, "/api/auth/login", "", `{"username":"`+username+`","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("register and login", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "alice", "TEACHER")

		rec := doJSON(app, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"password123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var result map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.NotEmpty(t, result["token"])
		assert.Equal(t, "alice", result["username"])
		assert.Equal(t, "alice@school.edu", result["email"])
		assert.Equal(t, "TEACHER", result["role"])
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "alice", "STUDENT")

		rec := doJSON(app, http.MethodPost, "/api/auth/register", "",
			`{"username":"alice","email":"other@school.edu","password":"password123"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure lists offending fields", func(t *testing.T) {
		app := newTestApp(t)

		rec := doJSON(app, http.MethodPost, "/api/auth/register", "",
			`{"username":"ab","email":"not-an-email","password":"123"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "username")
		assert.Contains(t, rec.Body.String(), "email")
		assert.Contains(t, rec.Body.String(), "password")
	})

	t.Run("wrong password and unknown user respond identically", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "alice", "STUDENT")

		wrongPass := doJSON(app, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"nope123"}`)
		unknown := doJSON(app, http.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"nope123"}`)

		assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
	})
}

func TestGradeEndpoints(t *testing.T) {
	t.Run("full teacher and student flow", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "teacher1", "TEACHER")
		registerUser(t, app, "student1", "STUDENT")
		registerUser(t, app, "student2", "STUDENT")

		teacherToken := loginUser(t, app, "teacher1")
		student1Token := loginUser(t, app, "student1")
		student2Token := loginUser(t, app, "student2")

		rec := doJSON(app, http.MethodPost, "/api/grades", teacherToken,
			`{"course":"Matemáticas","score":18.5,"comments":"Examen Final","studentUsername":"student1"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		gradeID := created["id"].(string)
		require.NotEmpty(t, gradeID)

		// The owner sees exactly their grade.
		rec = doJSON(app, http.MethodGet, "/api/grades", student1Token, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var mine []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
		require.Len(t, mine, 1)
		assert.Equal(t, 18.5, mine[0]["score"])

		// Another student sees nothing.
		rec = doJSON(app, http.MethodGet, "/api/grades", student2Token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var others []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &others))
		assert.Empty(t, others)

		// Reading someone else's grade by id is a 404, not a 403.
		rec = doJSON(app, http.MethodGet, "/api/grades/"+gradeID, student2Token, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		// The owner and the teacher read it fine.
		rec = doJSON(app, http.MethodGet, "/api/grades/"+gradeID, student1Token, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(app, http.MethodGet, "/api/grades/"+gradeID, teacherToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		// Update and delete are teacher only.
		rec = doJSON(app, http.MethodPut, "/api/grades/"+gradeID, teacherToken,
			`{"course":"Matemáticas","score":19,"studentUsername":"student1"}`)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doJSON(app, http.MethodDelete, "/api/grades/"+gradeID, teacherToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "grade deleted successfully")

		rec = doJSON(app, http.MethodGet, "/api/grades/"+gradeID, teacherToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anonymous requests get 401", func(t *testing.T) {
		app := newTestApp(t)

		rec := doJSON(app, http.MethodGet, "/api/grades", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid bearer token is anonymous, not an error", func(t *testing.T) {
		app := newTestApp(t)

		rec := doJSON(app, http.MethodGet, "/api/grades", "definitely-not-a-token", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("student cannot create a grade", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "student1", "STUDENT")
		studentToken := loginUser(t, app, "student1")

		rec := doJSON(app, http.MethodPost, "/api/grades", studentToken,
			`{"course":"Matemáticas","score":20,"studentUsername":"student1"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("grade for unknown student is 404", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "teacher1", "TEACHER")
		teacherToken := loginUser(t, app, "teacher1")

		rec := doJSON(app, http.MethodPost, "/api/grades", teacherToken,
			`{"course":"Matemáticas","score":15,"studentUsername":"ghost"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("score outside the vigesimal range rejected", func(t *testing.T) {
		app := newTestApp(t)
		registerUser(t, app, "teacher1", "TEACHER")
		teacherToken := loginUser(t, app, "teacher1")

		rec := doJSON(app, http.MethodPost, "/api/grades", teacherToken,
			`{"course":"Matemáticas","score":25,"studentUsername":"teacher1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "score")
	})

	t.Run("expired token is anonymous", func(t *testing.T) {
		codec, err := token.NewCodec([]byte("api-test-secret"))
		require.NoError(t, err)

		app := newTestApp(t)

		claims := token.NewClaims("student1", []string{"STUDENT"}, time.Now().Add(-2*time.Hour), time.Hour)
		expired, err := codec.Sign(claims)
		require.NoError(t, err)

		rec := doJSON(app, http.MethodGet, "/api/grades", expired, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
