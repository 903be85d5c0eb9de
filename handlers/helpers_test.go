package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"chucks-kitchen-api/config"
	"chucks-kitchen-api/models"
	"chucks-kitchen-api/routes"
	"chucks-kitchen-api/session"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testPassword = "password123"
	testPhone    = "0712345678"
)

// setupRouter builds the full application router against a fresh
// in-memory database, seeded the same way the server boots.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory DB
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedCategories(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r, session.NewStore(time.Hour))
	return r
}

// client plays one browser: it carries its cookies between requests so
// the session (and therefore the cart and login) persists.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, router: r, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
		} else {
			c.cookies[ck.Name] = ck
		}
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func register(cl *client, email string) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, "/api/auth/register", gin.H{
		"email":    email,
		"phone":    testPhone,
		"password": testPassword,
	})
}

// storedOTP reads the outstanding verification code straight from the
// store, standing in for the mailbox.
func storedOTP(t *testing.T, email string) string {
	t.Helper()
	var user models.User
	require.NoError(t, config.DB.Where("email = ?", email).First(&user).Error)
	require.NotNil(t, user.OTPCode)
	return *user.OTPCode
}

// signUp registers, verifies and logs in one user on the given client.
// The first account created in a test becomes the admin.
func signUp(t *testing.T, cl *client, email string) models.User {
	t.Helper()

	w := register(cl, email)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = cl.do(http.MethodPost, "/api/auth/verify", gin.H{
		"email":    email,
		"otp_code": storedOTP(t, email),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = cl.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", email).First(&user).Error)
	return user
}

// seedFood inserts a menu item directly, bypassing the admin API.
func seedFood(t *testing.T, name string, price float64, available bool) models.Food {
	t.Helper()

	var category models.Category
	require.NoError(t, config.DB.Where("name = ?", "Main Dish").First(&category).Error)

	food := models.Food{
		Name:        name,
		Price:       price,
		CategoryID:  category.ID,
		IsAvailable: true,
	}
	require.NoError(t, config.DB.Create(&food).Error)
	if !available {
		// set explicitly: gorm skips zero-valued fields that carry a default tag
		require.NoError(t, config.DB.Model(&food).Update("is_available", false).Error)
		food.IsAvailable = false
	}
	return food
}

// setStatus forces an order into a given state, bypassing the API.
func setStatus(t *testing.T, orderID uint, status models.OrderStatus) {
	t.Helper()
	require.NoError(t, config.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
