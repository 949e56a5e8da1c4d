package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
)

// GoogleAuthHandler handles Google sign-in requests.
type GoogleAuthHandler struct {
	googleService portssvc.GoogleAuthSvcFacade
	userService   portssvc.UserSvcFacade
	authHandler   *AuthHandler
}

// ExchangeCodeRequest defines the expected JSON body for the exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginURLResponse carries the Google consent URL and the state the frontend
// must send back.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// registerGoogleAuthRoutes registers the Google sign-in routes under the auth group.
func registerGoogleAuthRoutes(auth *gin.RouterGroup, limitMiddleware gin.HandlerFunc, services *portssvc.ServiceContainer, authHandler *AuthHandler) {
	h := &GoogleAuthHandler{
		googleService: services.GoogleAuth,
		userService:   services.User,
		authHandler:   authHandler,
	}
	google := auth.Group("/google")
	{
		google.GET("/login-url", h.LoginURL)
		google.POST("/exchange-code", limitMiddleware, h.ExchangeCode)
		google.POST("/token", limitMiddleware, h.TokenSignIn)
	}
}

// LoginURL godoc
// @Summary Get Google consent URL
// @Description Returns the Google OAuth consent-screen URL plus a state string.
// @Tags oauth
// @Produce json
// @Success 200 {object} LoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *GoogleAuthHandler) LoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleService.GenerateStateString(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate state"})
		return
	}
	c.JSON(http.StatusOK, LoginURLResponse{
		URL:   h.googleService.GetLoginURL(ctx, state),
		State: state,
	})
}

// ExchangeCode godoc
// @Summary Exchange authorization code
// @Description Exchanges a Google authorization code for an application session.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleAuthHandler) ExchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	oauth2Token, err := h.googleService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	h.signInWithIDToken(c, idTokenString)
}

// TokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google ID token obtained client-side and issues an application session.
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *GoogleAuthHandler) TokenSignIn(c *gin.Context) {
	var req dto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	h.signInWithIDToken(c, req.IDToken)
}

func (h *GoogleAuthHandler) signInWithIDToken(c *gin.Context, idTokenString string) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := h.googleService.ValidateIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, name, providerUserID := claimsFromPayload(payload)
	if email == "" || providerUserID == "" {
		logger.Error("Essential claims missing from Google ID token payload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	user, err := h.userService.FindOrProvisionByProvider(ctx, domain.ProviderGoogle, providerUserID, domain.IdentityMetadata{
		Email: email,
		Name:  name,
	})
	if err != nil {
		logger.Error("Failed to find or provision Google user", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to process user authentication")
		return
	}

	h.authHandler.issueTokens(c, user)
}

func claimsFromPayload(payload *idtoken.Payload) (email, name, subject string) {
	email, _ = payload.Claims["email"].(string)
	name, _ = payload.Claims["name"].(string)
	return email, name, payload.Subject
}
