package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/msibaramdora/visitor-management-api/internal/constants"
	"github.com/msibaramdora/visitor-management-api/internal/database"
	"github.com/msibaramdora/visitor-management-api/internal/middleware"
	"github.com/msibaramdora/visitor-management-api/internal/models"
	"github.com/msibaramdora/visitor-management-api/internal/repository"
	"github.com/msibaramdora/visitor-management-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	seedEmployeeUsername = "admin@company.com"
	seedWatchmanUsername = "gate@company.com"
	seedPassword         = "password123"
)

type testEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	authService  *services.AuthService
	visitService *services.VisitService
}

// setupTestEnv builds an in-memory database with the seed accounts and a
// router wired exactly like cmd/server, including the auth middleware chain.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Visit{}))
	require.NoError(t, database.Seed(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	authService := services.NewAuthService(userRepo)
	visitService := services.NewVisitService(visitRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	visitHandler := NewVisitHandler(visitService)
	watchmanHandler := NewWatchmanHandler(visitService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.Identity(authService))

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/user", middleware.RequireAuth(), authHandler.GetCurrentUser)
		api.GET("/employees", authHandler.ListEmployees)

		visits := api.Group("/visits")
		{
			visits.GET("", middleware.RequireAuth(), visitHandler.ListVisits)
			visits.POST("/invite", middleware.RequireRole(models.RoleEmployee), visitHandler.CreateInvite)
			visits.GET("/invite/:token", visitHandler.GetInvite)
			visits.PATCH("/invite/:token", visitHandler.AcceptInvite)
			visits.POST("/register", visitHandler.GateRegister)
			visits.PATCH("/:id/status", middleware.RequireRole(models.RoleEmployee), visitHandler.UpdateStatus)
			visits.GET("/:id", middleware.RequireRole(models.RoleWatchman), visitHandler.GetVisit)
		}

		watchman := api.Group("/watchman", middleware.RequireRole(models.RoleWatchman))
		{
			watchman.GET("/stats", watchmanHandler.Stats)
			watchman.PATCH("/visits/:id/checkin", watchmanHandler.CheckIn)
			watchman.PATCH("/visits/:id/checkout", watchmanHandler.CheckOut)
		}
	}

	return &testEnv{
		db:           db,
		router:       r,
		authService:  authService,
		visitService: visitService,
	}
}

// request performs an HTTP request against the test router.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// loginAs authenticates a seed account and returns its session cookies.
func (e *testEnv) loginAs(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": seedPassword,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// seedEmployee returns the seeded employee account.
func (e *testEnv) seedEmployee(t *testing.T) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, e.db.Where("username = ?", seedEmployeeUsername).First(&user).Error)
	return &user
}

// seedWatchman returns the seeded watchman account.
func (e *testEnv) seedWatchman(t *testing.T) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, e.db.Where("username = ?", seedWatchmanUsername).First(&user).Error)
	return &user
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeJSON(t, w, &body)
	return body["message"]
}
