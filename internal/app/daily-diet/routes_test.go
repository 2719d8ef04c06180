package dailydiet

import (
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-diet/internal/cache"
	"github.com/magabrotheeeer/daily-diet/internal/config"
	"github.com/magabrotheeeer/daily-diet/internal/lib/password"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	mealservice "github.com/magabrotheeeer/daily-diet/internal/services/meals"
	metricservice "github.com/magabrotheeeer/daily-diet/internal/services/metrics"
	userservice "github.com/magabrotheeeer/daily-diet/internal/services/users"
	"github.com/magabrotheeeer/daily-diet/internal/storage/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: config.EnvLocal,
		Session: config.Session{
			CookieName: "sessionId",
			CookiePath: "/meals",
			MaxAge:     7 * 24 * time.Hour,
		},
		Auth: config.Auth{
			BcryptCost:     password.DefaultCost,
			LoginRateLimit: 0.0001,
			LoginBurst:     1,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := repository.NewWithDB(db)
	logger := sl.Discard()
	cfg := testConfig()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Users:   userservice.New(store, cache.Nop{}, logger, cfg.BcryptCost, cfg.MaxAge),
		Meals:   mealservice.New(store, logger),
		Metrics: metricservice.New(store),
		Storage: store,
	}, prometheus.NewRegistry())
	return router, mock
}

func TestRoutes_SessionCookieRequired(t *testing.T) {
	router, mock := newTestRouter(t)

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/meals/u1/meals", ""},
		{http.MethodGet, "/meals/m1", ""},
		{http.MethodPost, "/meals", `{"name":"a","description":"b","madeAt":"c","isOnDietPlan":true}`},
		{http.MethodPut, "/meals/m1", `{"name":"a"}`},
		{http.MethodDelete, "/meals/m1", ""},
		{http.MethodGet, "/users/u1/metrics", ""},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"status":"Unauthorized","message":"You're not authorized to do this action"}`, rec.Body.String())
		})
	}
	// ни одного запроса к базе
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_MetricsTrustPathID(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT .* FROM meals WHERE registered_by = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_on_the_diet_plan", "registered_at", "registered_by"}).
			AddRow("m1", "a", "", true, "2024-01-01", "u1").
			AddRow("m2", "b", "", false, "2024-01-01", "u1").
			AddRow("m3", "c", "", true, "2024-01-02", "u1"))

	req := httptest.NewRequest(http.MethodGet, "/users/u1/metrics", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "anything"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalNumberOfMeals":3,"totalNumberOfMealsOnDiet":2,`+
		`"totalNumberOfMealsOffDiet":1,"bestSequenceOfMealsOnDiet":2}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_UnknownSession(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT .* FROM users WHERE session_id = \$1`).
		WithArgs("stale").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "session_id"}))

	req := httptest.NewRequest(http.MethodGet, "/meals/m1", nil)
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "stale"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// captureArg запоминает значение аргумента запроса.
type captureArg struct {
	value string
}

func (c *captureArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	c.value = s
	return ok && s != ""
}

func TestRoutes_LoginCookieMatchesStoredSession(t *testing.T) {
	router, mock := newTestRouter(t)
	hash, err := password.GetHash("password123", password.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "session_id"}).
			AddRow("u1", "Ann", "ann@example.com", hash, time.Now().UTC(), nil))
	stored := &captureArg{}
	mock.ExpectExec(`UPDATE users SET session_id = \$1 WHERE id = \$2`).
		WithArgs(stored, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/users/authenticate",
		strings.NewReader(`{"email":"ann@example.com","password":"password123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionId", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.Equal(t, stored.value, cookies[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_LoginRateLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/users/authenticate", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	router, mock := newTestRouter(t)
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `daily_diet_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
