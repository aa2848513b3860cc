package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/auth"
	"user-registry-api/internal/interface/api/rest/dto/auth"
	"user-registry-api/internal/interface/api/rest/dto/user"
	"user-registry-api/internal/interface/api/rest/middleware"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
	now         func() time.Time
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		now:         time.Now,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.GET(RouteMe, ac.MeHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	u, err := ac.authService.Register(c.Request.Context(), user.ToDomainInput(req))
	if err != nil {
		writeError(c, ac.logger, "Register()", err)
		return
	}

	c.JSON(http.StatusCreated, auth.RegisterResponse{
		Message: auth.MessageRegistered,
		User:    user.ToResponseUser(*u),
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	s, err := ac.authService.Login(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, ac.logger, "Login()", err)
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresIn:   int64(s.ExpiresAt.Sub(ac.now()).Round(time.Second).Seconds()),
		User:        user.ToResponseUser(*s.User),
	})
}

// MeHandler hands the raw bearer token to the service, which verifies it.
func (ac *AuthController) MeHandler(c *gin.Context) {
	token, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	u, err := ac.authService.GetUser(c.Request.Context(), token)
	if err != nil {
		writeError(c, ac.logger, "GetUser()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}
