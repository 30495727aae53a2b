package handler

import (
	"errors"
	"net/http"

	"github.com/Mithilesh71320/nextera-code/internal/middleware"
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles admin authentication. A caller that already holds a valid access
// token gets its current session back instead of a new one.
func (h *AuthHandler) Login(c *gin.Context) {
	if token, ok := utils.BearerToken(c.GetHeader("Authorization")); ok {
		if claims, err := utils.ValidateAccessToken(token); err == nil {
			if user, err := h.authService.Session(c.Request.Context(), claims.UserID); err == nil {
				utils.SuccessResponse(c, gin.H{
					"already_signed_in": true,
					"user":              user,
				})
				return
			}
		}
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, response.RefreshToken, int(utils.GetRefreshTokenExpiry().Seconds()))

	utils.SuccessResponse(c, gin.H{
		"access_token": response.AccessToken,
		"user":         response.User,
	})
}

// Refresh generates a new access token from the refresh cookie
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"access_token": accessToken,
	})
}

// Logout revokes the refresh token and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookie); err == nil {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to logout")
			return
		}
	}

	h.setRefreshCookie(c, "", -1)
	utils.MessageResponse(c, "Logged out successfully")
}

// Session returns the signed-in admin
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		respondError(c, service.SessionMissing())
		return
	}

	user, err := h.authService.Session(c.Request.Context(), userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, value, maxAge, "/", "", h.secureCookie, true)
}
