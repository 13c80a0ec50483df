package handler

import "github.com/tabaum/storefront/internal/core/domain"

// Field order defines which message wins when several rules fail.
type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type productQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Sort     string `query:"sort"`
}

type authResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}

type meResponse struct {
	User domain.Profile `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
}
