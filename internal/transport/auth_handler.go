package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	TradeCustomer bool   `json:"tradeCustomer"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh request payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UserProfile represents public user profile data
type UserProfile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            string `json:"role"`
	IsTradeCustomer bool   `json:"isTradeCustomer"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserProfile `json:"user"`
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	authService   service.AuthService
	logger        *zap.Logger
	isDevelopment bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger, isDevelopment bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		logger:        logger,
		isDevelopment: isDevelopment,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})
}

func newUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:              user.ID.String(),
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            user.Role,
		IsTradeCustomer: user.IsTradeCustomer,
	}
}

// Register handles customer registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.TradeCustomer)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, newUserProfile(user))
}

// Login authenticates a customer and issues tokens
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         newUserProfile(user),
	})
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// RefreshToken exchanges a refresh token for a new access token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
			middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, h.logger, err, h.isDevelopment)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, newUserProfile(user))
}
