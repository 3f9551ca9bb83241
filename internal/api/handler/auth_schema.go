package handler

import "github.com/filmoteka/catalog-api/internal/core/ports"

type registerRequest struct {
	Username        string `json:"username"        form:"username"        validate:"required,min=3,max=32"`
	Email           string `json:"email"           form:"email"           validate:"required,email"`
	Password        string `json:"password"        form:"password"        validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
	TelegramID      string `json:"telegramId"      form:"telegramId"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// sessionResponse carries the access token and the public user view. The
// refresh token travels only in the httpOnly cookie, never in the body.
type sessionResponse struct {
	AccessToken string           `json:"accessToken"`
	User        ports.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifiedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
