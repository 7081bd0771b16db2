package handler

import (
	"time"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" example:"shopA"`
	Email    string `json:"email"    example:"shop@example.com"`
	Password string `json:"password" example:"s3cret!"`
	Role     string `json:"role"     example:"business" enums:"customer,business"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

// --- Commodity ---

type createCommodityRequest struct {
	Title       string  `json:"title"       example:"Widget1"`
	Price       float64 `json:"price"       example:"10"`
	Description string  `json:"description" example:"A simple widget for testing"`
}

type updateCommodityRequest struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type commodityResponse struct {
	Message   string            `json:"message"`
	Commodity *domain.Commodity `json:"commodity"`
}
