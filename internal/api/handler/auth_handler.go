package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/api/metrics"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// maxAvatarBytes bounds in-memory reads of uploaded avatar images.
const maxAvatarBytes = 5 << 20

// AuthHandler handles registration, login, token refresh and the email
// verification endpoints.
type AuthHandler struct {
	auth    ports.AuthService
	cookies CookiePolicy
}

func NewAuthHandler(auth ports.AuthService, cookies CookiePolicy) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Register creates a new account and issues a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Param        username         formData  string  true   "Username"
// @Param        email            formData  string  true   "Email address"
// @Param        password         formData  string  true   "Password"
// @Param        confirmPassword  formData  string  true   "Password confirmation"
// @Param        telegramId       formData  string  false  "Telegram id"
// @Param        avatar           formData  file    false  "Avatar image"
// @Success      201  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
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

	session, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		TelegramID: req.TelegramID,
		Avatar:     avatar,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	h.cookies.SetRefresh(c, session.RefreshToken)
	return c.JSON(http.StatusCreated, sessionResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// Login authenticates by email and password and issues a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.cookies.SetRefresh(c, session.RefreshToken)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// Refresh rotates the session from the refresh cookie. The httpOnly cookie
// is the only accepted carrier; a token in the request body is ignored.
//
// @Summary      Refresh the session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}

	session, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	h.cookies.SetRefresh(c, session.RefreshToken)
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

// Logout clears the refresh cookie. Tokens already issued stay valid until
// their own expiry; there is no server-side session state to revoke.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.ClearRefresh(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// VerifyEmail consumes a single-use verification token from the query string.
//
// @Summary      Verify email address
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  verifiedResponse
// @Failure      400    {object}  errorResponse
// @Router       /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	userID, err := h.auth.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifiedResponse{Message: "email verified", UserID: userID})
}

// ResendVerification regenerates the verification token and resends the
// email. The response is the same whether or not the address exists.
//
// @Summary      Resend the verification email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendVerificationRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "verification email sent"})
}

// formFileUpload reads an optional multipart file field into memory.
// A missing field returns (nil, nil).
func formFileUpload(c echo.Context, field string) (*ports.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	if len(content) > maxAvatarBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	return &ports.FileUpload{Filename: fh.Filename, Content: content}, nil
}
