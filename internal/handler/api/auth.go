package api

import (
	"errors"
	"net/http"

	reqdto "spotstay/internal/handler/dto/request"
	resdto "spotstay/internal/handler/dto/response"
	"spotstay/internal/handler/httperr"
	"spotstay/internal/handler/middleware"
	"spotstay/internal/pkg/config"
	"spotstay/internal/pkg/cookie"
	"spotstay/internal/pkg/errs"
	"spotstay/internal/pkg/jwt"
	"spotstay/internal/usecase/commands"
	"spotstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// Routes behind RequireAuth always carry an identity; hitting this
// means the middleware chain is miswired.
var errMissingIdentity = errs.New("authenticated route without user identity")

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtService   *jwt.Service
	cookieConfig config.CookieConfig
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	jwtService *jwt.Service,
	cookieConfig config.CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtService:   jwtService,
		cookieConfig: cookieConfig,
	}
}

// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid request format")
		return
	}

	token, view, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, "unauthorized", err, "Invalid email or password")
		case errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Account is inactive")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieConfig, token, h.jwtService.TokenDuration())

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: token,
		User:        resdto.FromUserView(view),
	})
}

// @Summary Signup
// @Description Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignupRequest true "Signup payload"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req reqdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid request format")
		return
	}

	view, err := h.authCommands.Signup(c.Request.Context(), commands.SignupParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			httperr.AbortWithError(c, http.StatusConflict, "conflict", err, "Email is already registered")
		case errors.Is(err, commands.ErrInvalidRole):
			httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid role")
		case errors.Is(err, commands.ErrWeakPassword):
			httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Password does not meet requirements")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromUserView(view))
}

// @Summary Logout
// @Description Clear the access token cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieConfig)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	view, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, "not_found", err, "User not found")
		case errors.Is(err, queries.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Account is inactive")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserView(view))
}
