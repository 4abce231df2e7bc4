package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tokenString
}

func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			logger, _ := zap.NewDevelopment()
			middleware := AuthMiddleware("test-secret", logger)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			path := "/" + pathSuffix
			if path == "/" {
				path = "/test"
			}

			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ExpiredTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("expired tokens are rejected with 401", prop.ForAll(
		func(userID string, role string) bool {
			logger, _ := zap.NewDevelopment()
			secret := "test-secret"
			middleware := AuthMiddleware(secret, logger)

			tokenString := signTestToken(t, secret, jwt.MapClaims{
				"userId": userID,
				"role":   role,
				"exp":    time.Now().Add(-1 * time.Hour).Unix(),
			})

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tokenString)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AnyString(),
		gen.OneConstOf("USER", "ADMIN"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidTokensAllowProcessing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid tokens populate the request context", prop.ForAll(
		func(userID string, role string) bool {
			logger, _ := zap.NewDevelopment()
			secret := "test-secret"
			middleware := AuthMiddleware(secret, logger)

			tokenString := signTestToken(t, secret, jwt.MapClaims{
				"userId": userID,
				"role":   role,
				"exp":    time.Now().Add(1 * time.Hour).Unix(),
			})

			handlerCalled := false
			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true

				ctxUserID, ok1 := GetUserID(r.Context())
				ctxRole, ok2 := GetUserRole(r.Context())
				if !ok1 || !ok2 || ctxUserID != userID || ctxRole != role {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+tokenString)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return handlerCalled && w.Code == http.StatusOK
		},
		gen.AnyString(),
		gen.OneConstOf("USER", "ADMIN"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_InvalidTokenFormatRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("invalid token formats are rejected", prop.ForAll(
		func(invalidToken string) bool {
			logger, _ := zap.NewDevelopment()
			middleware := AuthMiddleware("test-secret", logger)

			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+invalidToken)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestOptionalAuthAllowsAnonymousRequests(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	middleware := OptionalAuthMiddleware("test-secret", logger)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous request, got %d", w.Code)
	}
}

func TestOptionalAuthAttachesClaimsWhenTokenValid(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	secret := "test-secret"
	middleware := OptionalAuthMiddleware(secret, logger)

	tokenString := signTestToken(t, secret, jwt.MapClaims{
		"userId": "user-123",
		"role":   "USER",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok || userID != "user-123" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected claims in context, got status %d", w.Code)
	}
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	middleware := OptionalAuthMiddleware("test-secret", logger)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected invalid token to be ignored, got status %d", w.Code)
	}
}
