package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login) // Apply rate limiting middleware here
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.Logout)
	}

	registerGoogleAuthRoutes(auth, limitMiddleware, services, h)
}

// Register godoc
// @Summary Register new user
// @Description Creates a new local account with a household role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (email exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user, returns an access token and sets the refresh token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	h.issueTokens(c, user)
}

// Refresh godoc
// @Summary Refresh session
// @Description Exchanges the refresh token cookie for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Token owner"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Missing refresh token"})
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired refresh token"})
		return
	}

	// Rotation: every successful refresh replaces the stored token.
	h.issueTokens(c, user)
}

// Logout godoc
// @Summary User logout
// @Description Invalidates the stored refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to clear refresh token", slog.String("error", err.Error()))
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// issueTokens generates the access/refresh pair, persists the refresh hash
// and writes both to the response.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	if err := h.userService.StoreRefreshToken(ctx, user.UserID, refreshToken, refreshExpiry.Unix()); err != nil {
		logger.Error("Failed to store refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store token"})
		return
	}

	h.setRefreshCookie(c, refreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))
	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}
