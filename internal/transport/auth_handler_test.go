package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newAuthTestRouter(t *testing.T) (chi.Router, service.AuthService) {
	t.Helper()

	userRepo := newMockUserRepository()
	refreshTokenRepo := newMockRefreshTokenRepository()
	authService := service.NewAuthService(userRepo, refreshTokenRepo, "test-secret")
	logger, _ := zap.NewDevelopment()

	router := chi.NewRouter()
	handler := NewAuthHandler(authService, logger, true)
	handler.RegisterRoutes(router, middleware.AuthMiddleware("test-secret", logger))
	return router, authService
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesAccount(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := postJSON(t, router, "/api/auth/register", RegisterRequest{
		Email:     "jane@example.com",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Doe",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var profile UserProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to parse profile: %v", err)
	}
	if profile.Email != "jane@example.com" || profile.Role != "USER" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestRegisterDuplicateEmailIs409(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	payload := RegisterRequest{
		Email:     "jane@example.com",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	if w := postJSON(t, router, "/api/auth/register", payload); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", w.Code)
	}
	if w := postJSON(t, router, "/api/auth/register", payload); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}
}

func TestRegisterInvalidPayloadIs400(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := postJSON(t, router, "/api/auth/register", RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginWrongPasswordIs401WithoutToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	if w := postJSON(t, router, "/api/auth/register", RegisterRequest{
		Email:     "jane@example.com",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Doe",
	}); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	w := postJSON(t, router, "/api/auth/login", LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if _, ok := body["accessToken"]; ok {
		t.Fatal("failed login must not include an access token")
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("failed login must use the error envelope")
	}
}

func TestLoginReturnsTokensAndProfile(t *testing.T) {
	router, authService := newAuthTestRouter(t)

	if w := postJSON(t, router, "/api/auth/register", RegisterRequest{
		Email:     "jane@example.com",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Doe",
	}); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	w := postJSON(t, router, "/api/auth/login", LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens in the login response")
	}
	if resp.User.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	claims, err := authService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Email != "jane@example.com" {
		t.Fatalf("claims email mismatch: %s", claims.Email)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
}
