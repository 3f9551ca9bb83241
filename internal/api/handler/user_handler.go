package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// UserHandler handles the authenticated user's profile endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	Username   string `json:"username"   form:"username"   validate:"omitempty,min=3,max=32"`
	Bio        string `json:"bio"        form:"bio"        validate:"omitempty,max=500"`
	TelegramID string `json:"telegramId" form:"telegramId"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Me returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PublicUser
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.users.GetProfile(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update applies profile changes, optionally replacing the avatar.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        username    formData  string  false  "New username"
// @Param        bio         formData  string  false  "Profile bio"
// @Param        telegramId  formData  string  false  "Telegram id"
// @Param        avatar      formData  file    false  "New avatar image"
// @Success      200  {object}  ports.PublicUser
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /users/me [patch]
func (h *UserHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, err := formFileUpload(c, "avatar")
	if err != nil {
		return err
	}

	profile, err := h.users.UpdateProfile(c.Request().Context(), claims.ID, ports.ProfileUpdate{
		Username:   req.Username,
		Bio:        req.Bio,
		TelegramID: req.TelegramID,
	}, avatar)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ChangePassword verifies the current password before storing a new hash.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/me/password [patch]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), claims.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}
