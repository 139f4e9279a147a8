package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// AuthController serves the /auth routes.
type AuthController struct {
	registerUseCase     *auth.RegisterUserUseCase
	loginUseCase        *auth.LoginUserUseCase
	refreshTokenUseCase *auth.RefreshTokenUseCase
	logoutUseCase       *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:     registerUseCase,
		loginUseCase:        loginUseCase,
		refreshTokenUseCase: refreshTokenUseCase,
		logoutUseCase:       logoutUseCase,
	}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindAuth(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	out, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		InsightDigest: req.InsightDigest,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, authResponse(out.Session, dto.ToUserResponse(out.User)))
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindAuth(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	out, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, authResponse(out.Session, dto.ToUserResponse(out.User)))
}

// RefreshToken handles POST /auth/refresh.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindAuth(ctx, &req, domainerror.ErrCodeMissingToken) {
		return
	}

	out, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		NeedsSetup:   out.NeedsSetup,
	})
}

// Logout handles POST /auth/logout. It answers 200 even without a body.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	_ = ctx.ShouldBindJSON(&req)

	out, _ := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken})
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

func bindAuth(ctx *gin.Context, req any, code domainerror.AuthErrorCode) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(code),
			Details: err.Error(),
		})
		return false
	}
	return true
}

func authResponse(s auth.Session, user dto.UserResponse) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         user,
		NeedsSetup:   s.NeedsSetup,
	}
}
