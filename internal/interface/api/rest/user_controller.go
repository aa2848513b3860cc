package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/user"
	"user-registry-api/internal/interface/api/rest/middleware"
	"user-registry-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	tokens ports.TokenIssuer,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	authMW := middleware.AuthMiddleware(tokens)
	r.GET(RouteUsers, authMW, uc.GetUsersHandler)
	r.GET(RouteGroupUsers, authMW, uc.GetGroupUsersHandler)
	r.GET(RouteUser, authMW, uc.GetUserHandler)
	r.POST(RouteUsers, authMW, uc.CreateUserHandler)
	r.PUT(RouteUser, authMW, uc.UpdateUserHandler)
	r.DELETE(RouteUser, authMW, uc.DeleteUserHandler)

	return uc
}

// GetUsersHandler lists every user, or only those holding one of the
// roles in ?role_ids=1,2.
func (uc *UserController) GetUsersHandler(c *gin.Context) {
	roleIDs, err := validator.ParseRoleIDs(c.Query("role_ids"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "role_ids must be a comma separated list of positive integers"},
		)
		return
	}

	ctx := c.Request.Context()
	var us domain.Users
	if _, filtered := c.GetQuery("role_ids"); filtered {
		us, err = uc.userService.FindUsersByRoles(ctx, roleIDs)
	} else {
		us, err = uc.userService.FindUsers(ctx)
	}
	if err != nil {
		writeError(c, uc.logger, "FindUsers()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(us))
}

func (uc *UserController) GetGroupUsersHandler(c *gin.Context) {
	us, err := uc.userService.FindUsersByGroup(c.Request.Context(), c.Param("group"))
	if err != nil {
		writeError(c, uc.logger, "FindUsersByGroup()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(us))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := uc.userID(c)
	if !ok {
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, uc.logger, "FindUserByID()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	u, err := uc.userService.CreateUser(c.Request.Context(), user.ToDomainInput(req))
	if err != nil {
		writeError(c, uc.logger, "CreateUser()", err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := uc.userID(c)
	if !ok {
		return
	}

	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err)
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), id, user.ToDomainInput(req))
	if err != nil {
		writeError(c, uc.logger, "UpdateUser()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := uc.userID(c)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, uc.logger, "DeleteUser()", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) userID(c *gin.Context) (domain.ID, bool) {
	id, err := validator.ParseID(c.Param("user_id"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a positive integer"},
		)
		return 0, false
	}
	return id, true
}
