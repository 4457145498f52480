package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/tailorshop-api/internal/application/service"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/tailorshop-api/internal/presentation/http/dto/response"
	"github.com/sangkips/tailorshop-api/pkg/apperror"
)

// OAuthRedirects are the client pages Google sign-in lands on.
type OAuthRedirects struct {
	SuccessURL string
	ErrorURL   string
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	redirects   OAuthRedirects
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, redirects OAuthRedirects) *AuthHandler {
	return &AuthHandler{authService: authService, redirects: redirects}
}

func tokenPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	}
}

// Login handles user login
// @Summary Login
// @Description Authenticate user and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", tokenPayload(output))
}

// RefreshToken handles token refresh
// @Summary Refresh token
// @Tags auth
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", tokenPayload(output))
}

// Logout handles user logout. Tokens are stateless, so the client just drops them.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in profile
// @Summary Get profile
// @Tags auth
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", user)
}

// ChangePassword handles password change
// @Summary Change password
// @Tags auth
// @Security BearerAuth
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.NewFieldError("new_password", "New password must be at least 8 characters and match the confirmation"))
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          *userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// GoogleAuth redirects the browser to Google's consent screen
// @Summary Google sign-in
// @Tags auth
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	authURL, _, err := h.authService.GoogleAuthURL()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes Google sign-in and hands the tokens to the client
// in the URL fragment of the success page.
// @Summary Google sign-in callback
// @Tags auth
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if msg := c.Query("error"); msg != "" {
		h.oauthFailure(c, msg)
		return
	}

	output, err := h.authService.GoogleLogin(c.Request.Context(), c.Query("state"), c.Query("code"))
	if err != nil {
		h.oauthFailure(c, apperror.GetAppError(err).Message)
		return
	}

	if h.redirects.SuccessURL == "" {
		response.OK(c, "Login successful", tokenPayload(output))
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", output.AccessToken)
	fragment.Set("refresh_token", output.RefreshToken)
	fragment.Set("token_type", "Bearer")
	c.Redirect(http.StatusFound, h.redirects.SuccessURL+"#"+fragment.Encode())
}

func (h *AuthHandler) oauthFailure(c *gin.Context, msg string) {
	if h.redirects.ErrorURL == "" {
		response.Unauthorized(c, msg)
		return
	}

	target, err := url.Parse(h.redirects.ErrorURL)
	if err != nil {
		response.Unauthorized(c, msg)
		return
	}
	q := target.Query()
	q.Set("error", msg)
	target.RawQuery = q.Encode()
	c.Redirect(http.StatusFound, target.String())
}
