package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/handlers"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/middleware"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/types"
)

// fakeVerifier accepts a fixed set of tokens and maps each to an email.
type fakeVerifier struct {
	tokens map[string]string
}

func (fv *fakeVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	email, ok := fv.tokens[idToken]
	if !ok {
		return "", fmt.Errorf("unknown token")
	}
	return email, nil
}

type fakePaymentProvider struct {
	sessions map[string]*services.CheckoutSession
}

func (fp *fakePaymentProvider) CreateCheckoutSession(ctx context.Context, in services.CheckoutInput) (string, error) {
	return "https://pay.example/checkout", nil
}

func (fp *fakePaymentProvider) GetSession(ctx context.Context, sessionID string) (*services.CheckoutSession, error) {
	s, ok := fp.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s", sessionID)
	}
	return s, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	provider *fakePaymentProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.User{}, &types.Lesson{}, &types.Favorite{}, &types.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	userRepo := repos.NewUserRepo(db, log)
	lessonRepo := repos.NewLessonRepo(db, log)
	favoriteRepo := repos.NewFavoriteRepo(db, log)
	reportRepo := repos.NewReportRepo(db, log)

	provider := &fakePaymentProvider{sessions: map[string]*services.CheckoutSession{}}
	verifier := &fakeVerifier{tokens: map[string]string{"good-token": "admin@x.com"}}

	userService := services.NewUserService(db, log, userRepo)
	lessonService := services.NewLessonService(db, log, lessonRepo)
	favoriteService := services.NewFavoriteService(db, log, favoriteRepo)
	reportService := services.NewReportService(db, log, reportRepo)
	paymentService := services.NewPaymentService(db, log, provider, userRepo)

	router := NewRouter(RouterConfig{
		AuthMiddleware:  middleware.NewAuthMiddleware(log, verifier),
		LessonHandler:   handlers.NewLessonHandler(log, lessonService),
		FavoriteHandler: handlers.NewFavoriteHandler(log, favoriteService),
		ReportHandler:   handlers.NewReportHandler(log, reportService),
		UserHandler:     handlers.NewUserHandler(log, userService),
		PaymentHandler:  handlers.NewPaymentHandler(log, paymentService),
	})
	return &testEnv{router: router, db: db, provider: provider}
}

func (te *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	te.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRouterRootAndHealthcheck(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "Hello from Server.." {
		t.Fatalf("root = %d %q", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/healthcheck", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthcheck = %d", w.Code)
	}
}

func TestRouterLessonLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/lessons", "", map[string]interface{}{
		"title":        "Walk every day",
		"category":     "health",
		"creator":      map[string]interface{}{"email": "a@x.com", "name": "A"},
		"relatedStory": "free-form field",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	if created["success"] != true {
		t.Fatalf("create envelope missing success: %v", created)
	}
	lesson := created["lesson"].(map[string]interface{})
	lessonID := lesson["id"].(string)

	// Public listing carries the new lesson.
	w = env.do(t, http.MethodGet, "/lessons", "", nil)
	body := decodeBody(t, w)
	if n := len(body["lessons"].([]interface{})); n != 1 {
		t.Fatalf("public listing has %d lessons, want 1", n)
	}

	// Lookup by id.
	w = env.do(t, http.MethodGet, "/lessons/"+lessonID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by id = %d", w.Code)
	}

	// Flip private through the partial update, then the public listing
	// loses it.
	w = env.do(t, http.MethodPatch, "/lessons/"+lessonID, "", map[string]interface{}{"privacy": "private"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch = %d %s", w.Code, w.Body.String())
	}
	w = env.do(t, http.MethodGet, "/lessons", "", nil)
	body = decodeBody(t, w)
	if n := len(body["lessons"].([]interface{})); n != 0 {
		t.Fatalf("private lesson still in public listing")
	}

	// Creator listing still sees it.
	w = env.do(t, http.MethodGet, "/lessons/user/a@x.com", "", nil)
	body = decodeBody(t, w)
	if n := len(body["lessons"].([]interface{})); n != 1 {
		t.Fatalf("creator listing has %d lessons, want 1", n)
	}

	// Delete twice: second time is a 404 with the error envelope.
	w = env.do(t, http.MethodDelete, "/lessons/"+lessonID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d", w.Code)
	}
	w = env.do(t, http.MethodDelete, "/lessons/"+lessonID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete = %d, want 404", w.Code)
	}
	body = decodeBody(t, w)
	if body["success"] != false {
		t.Fatalf("error envelope must carry success:false, got %v", body)
	}
}

func TestRouterMissingLessonIs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/lessons/6fa459ea-ee8a-3ca4-894e-db77e160355e", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing lesson = %d, want 404", w.Code)
	}
	w = env.do(t, http.MethodGet, "/lessons/not-a-uuid", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed id = %d, want 400", w.Code)
	}
}

func TestRouterFavoriteDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"userEmail": "a@x.com",
		"lessonId":  "6fa459ea-ee8a-3ca4-894e-db77e160355e",
	}
	w := env.do(t, http.MethodPost, "/favorites", "", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("first save = %d %s", w.Code, w.Body.String())
	}
	w = env.do(t, http.MethodPost, "/favorites", "", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate save = %d, want 409", w.Code)
	}

	w = env.do(t, http.MethodGet, "/favorites?email=a@x.com", "", nil)
	body := decodeBody(t, w)
	if n := len(body["favorites"].([]interface{})); n != 1 {
		t.Fatalf("favorites listing has %d entries, want 1", n)
	}

	w = env.do(t, http.MethodGet, "/favorites", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("listing without email = %d, want 400", w.Code)
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/all-lessons", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d, want 401", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Unauthorized Access!" || body["success"] != false {
		t.Fatalf("unexpected 401 envelope %v", body)
	}

	w = env.do(t, http.MethodGet, "/all-lessons", "bad-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token = %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodGet, "/all-lessons", "good-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("good token = %d %s", w.Code, w.Body.String())
	}
}

func TestRouterUpsertUserKeepsSingleRow(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{"email": "a@x.com", "name": "A"}
	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/user", "", payload)
		if w.Code != http.StatusOK {
			t.Fatalf("save %d = %d %s", i, w.Code, w.Body.String())
		}
	}

	w := env.do(t, http.MethodGet, "/user/count", "", nil)
	body := decodeBody(t, w)
	if body["count"].(float64) != 1 {
		t.Fatalf("user count = %v, want 1", body["count"])
	}
}

func TestRouterVerifyPaymentGrantsPremium(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/user", "", map[string]interface{}{"email": "admin@x.com", "name": "Admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("seed user = %d", w.Code)
	}

	env.provider.sessions["cs_1"] = &services.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: "paid",
		CustomerEmail: "admin@x.com",
		AmountTotal:   999,
	}

	w = env.do(t, http.MethodGet, "/verify-payment/cs_1", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("verify without token = %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodGet, "/verify-payment/cs_1", "good-token", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify = %d %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/user/admin@x.com", "", nil)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	if user["isPremium"] != true {
		t.Fatalf("paid verification must flip isPremium, got %v", user)
	}
}

func TestRouterReportRequiresAuthAndFields(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]interface{}{
		"lessonId":          "6fa459ea-ee8a-3ca4-894e-db77e160355e",
		"reportedUserEmail": "creator@x.com",
		"reason":            "spam",
	}
	w := env.do(t, http.MethodPost, "/reportes", "", payload)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("report without token = %d, want 401", w.Code)
	}

	w = env.do(t, http.MethodPost, "/reportes", "good-token", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("report = %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	report := body["report"].(map[string]interface{})
	// The verified principal, not the body, names the reporter.
	if report["reporterUserId"] != "admin@x.com" {
		t.Fatalf("reporter = %v, want the verified email", report["reporterUserId"])
	}

	w = env.do(t, http.MethodPost, "/reportes", "good-token", map[string]interface{}{"reason": "spam"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("report missing fields = %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodGet, "/reportes", "", nil)
	body = decodeBody(t, w)
	if n := len(body["reports"].([]interface{})); n != 1 {
		t.Fatalf("reports listing has %d entries, want 1", n)
	}
}

func TestRouterAnalyticsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, title := range []string{"one", "two"} {
		w := env.do(t, http.MethodPost, "/lessons", "", map[string]interface{}{
			"title":   title,
			"creator": map[string]interface{}{"email": "a@x.com", "name": "A"},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("seed lesson = %d", w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/lessons/analytics/today", "good-token", nil)
	body := decodeBody(t, w)
	if body["count"].(float64) != 2 {
		t.Fatalf("today count = %v, want 2", body["count"])
	}

	w = env.do(t, http.MethodGet, "/lessons/analytics/summary", "good-token", nil)
	body = decodeBody(t, w)
	summary := body["summary"].(map[string]interface{})
	if summary["publicLessons"].(float64) != 2 {
		t.Fatalf("summary = %v", summary)
	}

	w = env.do(t, http.MethodGet, "/lessons/analytics/contributors", "good-token", nil)
	body = decodeBody(t, w)
	contributors := body["contributors"].([]interface{})
	if len(contributors) != 1 {
		t.Fatalf("contributors = %v", contributors)
	}
}
