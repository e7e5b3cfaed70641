package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azim18821/track3-sub004/internal/domain"
	"github.com/Azim18821/track3-sub004/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=trainer client"`

	// Biometrics are optional at registration; the plan generator substitutes
	// documented fallbacks for anything missing.
	WeightKg float64       `json:"weightKg" binding:"omitempty,gt=0"`
	HeightCm float64       `json:"heightCm" binding:"omitempty,gt=0"`
	Age      int           `json:"age" binding:"omitempty,gt=0,lt=120"`
	Gender   domain.Gender `json:"gender" binding:"omitempty,oneof=male female other"`
}

type BiometricsRequest struct {
	WeightKg float64       `json:"weightKg" binding:"required,gt=0"`
	HeightCm float64       `json:"heightCm" binding:"required,gt=0"`
	Age      int           `json:"age" binding:"required,gt=0,lt=120"`
	Gender   domain.Gender `json:"gender" binding:"required,oneof=male female other"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      domain.Role   `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	WeightKg  float64       `json:"weightKg,omitempty"`
	HeightCm  float64       `json:"heightCm,omitempty"`
	Age       int           `json:"age,omitempty"`
	Gender    domain.Gender `json:"gender,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	bio := service.Biometrics{
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		Age:      req.Age,
		Gender:   req.Gender,
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, bio)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// UpdateBiometrics refreshes the measurements consumed by plan generation.
func (h *AuthHandler) UpdateBiometrics(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req BiometricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	bio := service.Biometrics{
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		Age:      req.Age,
		Gender:   req.Gender,
	}
	if err := h.authService.UpdateBiometrics(c.Request.Context(), userID, bio); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update biometrics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Biometrics updated"})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		WeightKg:  user.WeightKg,
		HeightCm:  user.HeightCm,
		Age:       user.Age,
		Gender:    user.Gender,
	}
}
