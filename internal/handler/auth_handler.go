package handler

import (
	"net/http"

	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefreshCookie describes the cookie carrying the refresh token
type RefreshCookie struct {
	Name   string
	Path   string
	Domain string
	Secure bool
}

// DefaultRefreshCookieName is the cookie the refresh endpoint reads
const DefaultRefreshCookieName = "refreshToken"

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	cookie      RefreshCookie
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookie RefreshCookie, logger *zap.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultRefreshCookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}

	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register handles brand-owner registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles user login. The refresh token is returned in the body and in an HTTP-only cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.ExpiresIn)

	response := *result.AuthResponse
	response.RefreshToken = result.RefreshToken
	c.JSON(http.StatusOK, response)
}

// Refresh rotates the refresh token carried by the cookie
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cookie.Name)
	if err != nil || refreshToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "No refresh token found",
		})
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, result.ExpiresIn)

	c.JSON(http.StatusOK, result.AuthResponse)
}

// Logout ends the caller's session and clears the refresh cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identity.ID); err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.setRefreshCookie(c, "", -1)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}

// GetProfile returns the caller's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the caller's own profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	h.updateProfile(c, identity.ID)
}

// AdminUpdateUser changes the profile of the user in the path
func (h *AuthHandler) AdminUpdateUser(c *gin.Context) {
	h.updateProfile(c, c.Param("id"))
}

func (h *AuthHandler) updateProfile(c *gin.Context, targetID string) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, err)
		return
	}

	if err := h.authService.UpdateProfile(c.Request.Context(), identity, targetID, req.ToDomain()); err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Profile updated successfully",
	})
}

// AdminListUsers returns a page of users
func (h *AuthHandler) AdminListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortValidation(c, err)
		return
	}

	users, err := h.authService.ListUsers(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// AdminDeleteUser soft-deletes the user in the path
func (h *AuthHandler) AdminDeleteUser(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), identity, c.Param("id")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "User deleted successfully",
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}
